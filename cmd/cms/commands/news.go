package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

// NewNewsCommand creates the news command group
func NewNewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Read news",
		Long:  "List, fetch and export news items published in the CMS",
	}

	cmd.AddCommand(newNewsListCommand())
	cmd.AddCommand(newNewsGetCommand())
	cmd.AddCommand(newNewsAllCommand())

	return cmd
}

func newsTable(items []cms.News) func(*tablewriter.Table) {
	return func(table *tablewriter.Table) {
		table.Header("ID", "Title", "Category", "Published")

		for _, item := range items {
			_ = table.Append(item.ID, truncate(item.Title), orNA(item.Category.Name), formatTime(item.PublishedAt))
		}
	}
}

func newNewsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List news",
		Long:  "List one page of news. Prints an empty list when the CMS is unavailable",
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

			result := rt.service.ListNews(cmd.Context(), query)

			return writeOutput(cmd.OutOrStdout(), result, newsTable(result.Contents))
		},
	}

	addQueryFlags(cmd)

	return cmd
}

func newNewsGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get NEWS_ID",
		Short: "Get news details",
		Long:  "Display one news item. Use --draft-key to preview unpublished content",
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

			news, err := rt.service.GetNewsDetail(cmd.Context(), args[0], query)
			if err != nil {
				return describeDetailError("news", args[0], err)
			}

			return writeOutput(cmd.OutOrStdout(), news, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", news.ID)
				_ = table.Append("Title", news.Title)
				_ = table.Append("Description", orNA(truncate(news.Description)))
				_ = table.Append("Category", orNA(news.Category.Name))

				thumbnail := constants.NotAvailable
				if news.Thumbnail != nil {
					thumbnail = news.Thumbnail.URL
				}

				_ = table.Append("Thumbnail", thumbnail)
				_ = table.Append("Published", formatTime(news.PublishedAt))
				_ = table.Append("Updated", formatTime(&news.UpdatedAt))
			})
		},
	}

	cmd.Flags().String("draft-key", "", "draft key for previewing unpublished content")
	cmd.Flags().StringSlice("fields", nil, "fields to return")
	cmd.Flags().Int("depth", 0, "depth for expanding references")

	return cmd
}

func newNewsAllCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "List all news",
		Long:  "Fetch every news item, paging through the CMS. Prints an empty list on failure",
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

			all := rt.service.GetAllNews(cmd.Context(), query)

			return writeOutput(cmd.OutOrStdout(), all, newsTable(all))
		},
	}

	addQueryFlags(cmd)

	return cmd
}
