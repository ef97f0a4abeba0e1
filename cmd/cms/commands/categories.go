package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// NewCategoriesCommand creates the categories command group
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Read news categories",
		Long:    "Fetch and export the categories news items belong to",
	}

	cmd.AddCommand(newCategoriesGetCommand())
	cmd.AddCommand(newCategoriesAllCommand())

	return cmd
}

func newCategoriesGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get CATEGORY_ID",
		Short: "Get category details",
		Long:  "Display one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryFromFlags(cmd)
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			category, err := rt.service.GetCategoryDetail(cmd.Context(), args[0], query)
			if err != nil {
				return describeDetailError("category", args[0], err)
			}

			return writeOutput(cmd.OutOrStdout(), category, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", category.ID)
				_ = table.Append("Name", category.Name)
				_ = table.Append("Published", formatTime(category.PublishedAt))
				_ = table.Append("Updated", formatTime(&category.UpdatedAt))
			})
		},
	}

	cmd.Flags().StringSlice("fields", nil, "fields to return")

	return cmd
}

func newCategoriesAllCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "List all categories",
		Long:  "Fetch every category, paging through the CMS. Prints an empty list on failure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryFromFlags(cmd)
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			all := rt.service.GetAllCategories(cmd.Context(), query)

			return writeOutput(cmd.OutOrStdout(), all, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Published")

				for _, category := range all {
					_ = table.Append(category.ID, category.Name, formatTime(category.PublishedAt))
				}
			})
		},
	}

	addQueryFlags(cmd)

	return cmd
}

// describeDetailError turns a detail failure into a message for the terminal.
func describeDetailError(kind, id string, err error) error {
	switch {
	case cms.IsUnavailable(err):
		return fmt.Errorf("%s %s: CMS credentials are not configured: %w", kind, id, err)
	case cms.IsNotFound(err):
		return fmt.Errorf("%s %s not found: %w", kind, id, err)
	case cms.IsUnauthorized(err), cms.IsForbidden(err):
		return fmt.Errorf("%s %s: API key rejected: %w", kind, id, err)
	default:
		return fmt.Errorf("getting %s %s: %w", kind, id, err)
	}
}
