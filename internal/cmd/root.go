// Package cmd holds the musicshell command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"musicshell/internal/app"
	"musicshell/internal/config"
	"musicshell/internal/errors"
	"musicshell/internal/log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type rootOptions struct {
	cfgFile string
	dir     string
	logFile string
	debug   bool
}

func (o *rootOptions) configPath() string {
	if o.cfgFile != "" {
		return o.cfgFile
	}
	return config.DefaultPath()
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadConfigFile(o.configPath())
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "musicshell",
		Short: "A terminal music player",
		Long: `musicshell plays local audio files from a terminal.

Browse directories, build a queue, save it as a playlist and
control playback with configurable key bindings.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayer(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/musicshell/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "directory to start browsing in (overrides preferences.start_directory)")
	rootCmd.Flags().StringVar(&opts.logFile, "log-file", "", "log destination while the player runs (overrides preferences.log_file)")

	rootCmd.AddCommand(NewThemesCmd(opts))
	rootCmd.AddCommand(NewPlaylistsCmd(opts))
	rootCmd.AddCommand(NewConfigCmd(opts))

	return rootCmd
}

// Execute runs the command line and reports errors on stderr.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func runPlayer(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logFile := cfg.Preferences.LogFile
	if opts.logFile != "" {
		logFile = opts.logFile
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return errors.FromOS("could not create log directory", filepath.Dir(logFile), err)
	}
	// The terminal belongs to the UI from here on
	log.Configure(log.WithFile(logFile))
	defer log.Close()
	log.LogWithFields(log.F("config", opts.configPath()), log.F("version", Version)).Info("Starting musicshell")

	player, err := app.New(cfg, app.Options{
		StartDir: opts.dir,
		// Interrupts arrive through ctx instead
		ProgramOptions: []tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()},
	})
	if err != nil {
		log.LogWithError(err).Error("Startup failed")
		return err
	}
	defer player.Close()

	if err := player.Run(ctx); err != nil {
		log.LogWithError(err).Error("Player stopped with an error")
		return err
	}
	log.Info("musicshell exited")
	return nil
}
