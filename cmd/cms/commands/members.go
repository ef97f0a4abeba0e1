package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewMembersCommand creates the members command group
func NewMembersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Read members",
		Long:    "List member profiles published in the CMS",
	}

	cmd.AddCommand(newMembersListCommand())

	return cmd
}

func newMembersListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		Long:  "List one page of members. Prints an empty list when the CMS is unavailable",
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

			result := rt.service.ListMembers(cmd.Context(), query)

			return writeOutput(cmd.OutOrStdout(), result, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Position", "Image", "Published")

				for _, member := range result.Contents {
					_ = table.Append(member.ID, member.Name, orNA(member.Position), orNA(member.Image.URL), formatTime(member.PublishedAt))
				}
			})
		},
	}

	addQueryFlags(cmd)

	return cmd
}
