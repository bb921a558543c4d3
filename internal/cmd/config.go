package cmd

import (
	"fmt"
	"os"

	"musicshell/internal/config"
	"musicshell/internal/errors"

	"github.com/spf13/cobra"
)

// NewConfigCmd groups the configuration file commands.
func NewConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long:  `Write the default configuration to the config path. The format is TOML when the file name ends in .toml, YAML otherwise.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return errors.NewConfigError("config file already exists (use --force to overwrite)", path, errors.InvalidConfig, nil)
			}
			if err := config.SaveConfig(config.New(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), opts.configPath())
		},
	}

	configCmd.AddCommand(initCmd, pathCmd)
	return configCmd
}
