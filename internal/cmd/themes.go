package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewThemesCmd lists the configured themes.
func NewThemesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the configured color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range cfg.ThemeNames() {
				marker := " "
				if name == cfg.Preferences.SelectedTheme {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}
