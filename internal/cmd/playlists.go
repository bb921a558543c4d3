package cmd

import (
	"fmt"

	"musicshell/internal/persist"

	"github.com/spf13/cobra"
)

// NewPlaylistsCmd lists saved playlists, or the tracks of one playlist.
func NewPlaylistsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "playlists [name]",
		Short: "List saved playlists or the tracks in one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			store := persist.NewPlaylistStore(cfg.Preferences.PlaylistsFolder)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				tracks, err := store.Load(args[0])
				if err != nil {
					return err
				}
				for _, t := range tracks {
					fmt.Fprintln(out, t)
				}
				return nil
			}

			names, err := store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintf(out, "No playlists in %s\n", store.Dir())
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
