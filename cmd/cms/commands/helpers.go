package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

const defaultJSONIndent = 2

// outputFormat returns the configured format. Without one, a terminal gets a
// table and anything else gets JSON.
func outputFormat(w io.Writer) (string, error) {
	format := strings.ToLower(strings.TrimSpace(viper.GetString("output")))

	switch format {
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		return format, nil
	case "":
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return constants.FormatTable, nil
		}

		return constants.FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, format)
	}
}

// writeOutput encodes data as JSON or YAML, or calls table for table output.
func writeOutput(w io.Writer, data interface{}, table func(*tablewriter.Table)) error {
	format, err := outputFormat(w)
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	default:
		t := tablewriter.NewWriter(w)
		table(t)

		if err := t.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// addQueryFlags registers the query flags shared by list commands.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "maximum number of records")
	cmd.Flags().Int("offset", 0, "number of records to skip")
	cmd.Flags().String("orders", "", "sort order, e.g. -publishedAt")
	cmd.Flags().String("filters", "", "CMS filter expression")
	cmd.Flags().StringP("query", "q", "", "full-text search")
	cmd.Flags().StringSlice("fields", nil, "fields to return")
	cmd.Flags().StringSlice("ids", nil, "restrict to these content IDs")
	cmd.Flags().Int("depth", 0, "depth for expanding references")
}

// queryFromFlags builds a Query from the flags that were set.
func queryFromFlags(cmd *cobra.Command) (*cms.Query, error) {
	query := cms.NewQuery()
	flags := cmd.Flags()

	if flags.Changed("limit") {
		limit, _ := flags.GetInt("limit")
		if limit < 0 {
			return nil, constants.ErrInvalidLimit
		}

		query.WithLimit(limit)
	}

	if flags.Changed("offset") {
		offset, _ := flags.GetInt("offset")
		query.WithOffset(offset)
	}

	if flags.Lookup("orders") != nil {
		query.Orders, _ = flags.GetString("orders")
		query.Filters, _ = flags.GetString("filters")
		query.Q, _ = flags.GetString("query")
		query.IDs, _ = flags.GetStringSlice("ids")
	}

	if flags.Lookup("fields") != nil {
		query.Fields, _ = flags.GetStringSlice("fields")
	}

	if flags.Lookup("depth") != nil {
		query.Depth, _ = flags.GetInt("depth")
	}

	if flags.Changed("draft-key") {
		draftKey, _ := flags.GetString("draft-key")
		query.WithDraftKey(draftKey)
	}

	return query, nil
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= constants.StringTruncationLimit {
		return s
	}

	return string(runes[:constants.StringTruncationLimit-3]) + "..."
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

func orNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}
