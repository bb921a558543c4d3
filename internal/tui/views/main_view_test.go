package views

import (
	"strings"
	"testing"
	"time"

	"musicshell/internal/player"
	"musicshell/internal/tui/components"
	"musicshell/internal/workspace"
	"musicshell/pkg/testutils"
	"musicshell/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func testKeyMap() types.KeyMap {
	return types.KeyMap{
		{Token: "q"}:     {Kind: types.ActionExit},
		{Token: "j"}:     {Kind: types.ActionDown},
		{Token: "SPACE"}: {Kind: types.ActionTogglePause},
	}
}

func baseSnapshot() workspace.Snapshot {
	return workspace.Snapshot{
		Running: true,
		Dir:     "/music",
		Mode:    types.NavFiles,
		Entries: []types.Entry{
			{Path: "/music/Albums", IsDir: true},
			{Path: "/music/intro.mp3"},
			{Path: "/music/outro.flac"},
		},
		Playlists:  []string{"morning", "road"},
		Window:     types.NormalWindow(),
		ThemeName:  "dark",
		Theme:      types.Theme{Text: types.RGB{220, 220, 220}},
		ThemeNames: []string{"dark", "light"},
	}
}

func TestRenderMainView(t *testing.T) {
	queue := []string{"/music/intro.mp3", "/music/outro.flac"}

	tests := []struct {
		name     string
		modify   func(*workspace.Snapshot, *player.Status)
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:     "files listing",
			contains: []string{"musicshell", "Files", "/music", "Albums/", "intro.mp3", "outro.flac", "Nothing playing", "q quit"},
			excludes: []string{"▶ intro.mp3", "morning"},
		},
		{
			name: "queue highlights now playing slot",
			modify: func(s *workspace.Snapshot, st *player.Status) {
				s.Mode = types.NavQueue
				st.Playing = true
				st.NowPlaying = "outro.flac"
				st.Queue = queue
				st.NowPlayingSlot = 1
				st.Total = time.Minute
			},
			contains: []string{"  intro.mp3", "▶ outro.flac", "0:00 / 1:00"},
		},
		{
			name: "empty queue has no highlight",
			modify: func(s *workspace.Snapshot, st *player.Status) {
				s.Mode = types.NavQueue
			},
			excludes: []string{"▶ ", "intro.mp3"},
		},
		{
			name: "playlists",
			modify: func(s *workspace.Snapshot, st *player.Status) {
				s.Mode = types.NavPlaylists
			},
			contains: []string{"morning", "road"},
			excludes: []string{"intro.mp3"},
		},
		{
			name: "theme picker marks the active theme",
			modify: func(s *workspace.Snapshot, st *player.Status) {
				s.Window = types.WindowMode{Kind: types.WindowThemeSelect}
				s.ThemeCursor = 1
			},
			contains: []string{"Select theme", "▶ dark", "light"},
			excludes: []string{"intro.mp3"},
		},
		{
			name: "playlist name entry",
			modify: func(s *workspace.Snapshot, st *player.Status) {
				s.Window = types.WindowMode{Kind: types.WindowPlaylistNameEntry}
				s.Input = "night drive"
			},
			contains: []string{"Save queue as playlist", "night drive▏"},
		},
		{
			name: "error window",
			modify: func(s *workspace.Snapshot, st *player.Status) {
				s.Window = types.ErrorWindow("permission denied")
			},
			contains: []string{"Error", "permission denied", "esc to dismiss"},
			excludes: []string{"outro.flac"},
		},
	}

	help := components.NewHelp(testKeyMap())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := baseSnapshot()
			status := player.Status{Volume: 1}
			if tt.modify != nil {
				tt.modify(&snap, &status)
			}

			output := testutils.StripANSI(RenderMainView(Frame{
				Snap:   snap,
				Status: status,
				Help:   help,
				Width:  100,
				Height: 30,
			}))

			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestRenderMainViewFitsTerminal(t *testing.T) {
	snap := baseSnapshot()
	for i := 0; i < 100; i++ {
		snap.Entries = append(snap.Entries, types.Entry{Path: "/music/track" + strings.Repeat("x", i%40) + ".mp3"})
	}
	snap.Selected = 60

	out := RenderMainView(Frame{Snap: snap, Status: player.Status{Volume: 0.5}, Width: 70, Height: 20})
	assert.Equal(t, 20, lipgloss.Height(out))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 70)
	}
}

func TestRenderMainViewDefaultsSize(t *testing.T) {
	out := RenderMainView(Frame{Snap: baseSnapshot()})
	assert.LessOrEqual(t, lipgloss.Width(out), DefaultWidth)
}
