package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the status indicator and session counts",
		Long: `Show the aggregate status indicator with per-category session counts.

The total counts working, question, plan ready and waiting sessions.
Errored sessions are reported separately and never part of the total.

Examples:
  homespun summary
  homespun summary --project proj-1 -o json | jq '.counts'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := o.newService()
			if err != nil {
				return err
			}
			out, err := o.formatter(cmd)
			if err != nil {
				return err
			}
			summary, err := svc.Summary(cmd.Context(), o.project)
			if err != nil {
				return err
			}
			return out.FormatSummary(summary)
		},
	}
}

func newGroupsCmd(o *rootOptions) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List sessions grouped by project or status",
		Long: `List sessions grouped by project (default) or by status.

Project groups are ordered by name, and sessions within a group by status
priority then title. Status groups are ordered by priority, most urgent
first, and sessions within a group by most recent activity.

Examples:
  homespun groups
  homespun groups --by status
  homespun groups --by status -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if by != "project" && by != "status" {
				return fmt.Errorf("--by must be \"project\" or \"status\", got %q", by)
			}
			svc, err := o.newService()
			if err != nil {
				return err
			}
			out, err := o.formatter(cmd)
			if err != nil {
				return err
			}

			if by == "status" {
				groups, err := svc.StatusGroups(cmd.Context(), o.project)
				if err != nil {
					return err
				}
				return out.FormatStatusGroups(groups)
			}
			groups, err := svc.ProjectGroups(cmd.Context(), o.project)
			if err != nil {
				return err
			}
			return out.FormatProjectGroups(groups)
		},
	}
	cmd.Flags().StringVar(&by, "by", "project", "group by \"project\" or \"status\"")
	return cmd
}

func newContainersCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "containers",
		Short: "List containers grouped by project",
		Long: `List containers grouped by project id, ordered by issue title.

Containers without a project fall under "Unknown Project". An uptime
column is shown when the container-uptime flag is enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := o.newService()
			if err != nil {
				return err
			}
			out, err := o.formatter(cmd)
			if err != nil {
				return err
			}
			groups, err := svc.ContainerGroups(cmd.Context(), o.project)
			if err != nil {
				return err
			}
			return out.FormatContainerGroups(groups)
		},
	}
}
