package cmd

import (
	"github.com/spf13/cobra"

	"github.com/homespun/homespun/internal/snapshot"
)

func newImportCmd(o *rootOptions) *cobra.Command {
	var opts snapshot.Options

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load sessions, containers and entities from a snapshot file",
		Long: `Load a YAML or JSON snapshot into the store.

The file holds "sessions", "containers" and "entities" arrays. Records
without an id get a generated UUID and existing ids are overwritten.
Statuses the dashboard does not know are kept verbatim unless --strict is
given, in which case the whole file is rejected and nothing is written.

Examples:
  homespun import snapshot.yaml
  homespun import --strict snapshot.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}
			if _, err := o.startTracing(); err != nil {
				return err
			}
			db, err := o.openStore()
			if err != nil {
				return err
			}
			out, err := o.formatter(cmd)
			if err != nil {
				return err
			}

			res, err := snapshot.Import(cmd.Context(), snap, snapshot.Repositories{
				Sessions:   db.SessionRepository(),
				Containers: db.ContainerRepository(),
				Entities:   db.EntityRepository(),
			}, opts)
			if err != nil {
				return err
			}
			return out.FormatImportResult(res)
		},
	}
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject the file if any status is unknown")
	return cmd
}
