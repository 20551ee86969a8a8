package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/homespun/homespun/internal/config"
	"github.com/homespun/homespun/internal/sessions/domain"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the homespun configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(o), newConfigSetColorCmd(o))
	return cmd
}

func newConfigInitCmd(o *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write the default configuration to --config, or .homespun/config.yaml
when no path is given. An existing file is left alone unless --force.`,
		Args: cobra.NoArgs,
		// Loading config here would create the very file being initialised.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := o.cfgFile
			if path == "" {
				path = localConfigPath
			}
			if fileExists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigSetColorCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-color <label> <hex>",
		Short: "Set the colour of a status label",
		Long: fmt.Sprintf(`Set the colour used for a status label in tables and the live view.

Labels: %s.

Example:
  homespun config set-color "Plan Ready" "#B48EAD"`, strings.Join(statusLabels(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, color := canonicalLabel(args[0]), args[1]
			if label == "" {
				return fmt.Errorf("unknown status label %q", args[0])
			}

			theme := config.ThemeConfig{Colors: o.cfg.Theme.StatusColors()}
			theme.Colors[label] = color
			if err := config.ValidateTheme(theme); err != nil {
				return err
			}

			path := o.configFileUsed()
			if err := config.SaveTheme(path, theme); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s in %s\n", label, color, path)
			return err
		},
	}
}

func statusLabels() []string {
	labels := make([]string, 0, len(domain.KnownStatuses())+1)
	for _, s := range domain.KnownStatuses() {
		labels = append(labels, s.Label())
	}
	return append(labels, domain.UnknownLabel)
}

// canonicalLabel matches raw against the status labels case-insensitively.
func canonicalLabel(raw string) string {
	for _, l := range statusLabels() {
		if strings.EqualFold(strings.TrimSpace(raw), l) {
			return l
		}
	}
	return ""
}
