package workspace

import "musicshell/pkg/types"

// Snapshot is a consistent copy of the workspace for one rendered frame.
type Snapshot struct {
	Running     bool
	Dir         string
	Mode        types.NavMode
	Entries     []types.Entry
	Playlists   []string
	Selected    int
	Window      types.WindowMode
	Input       string
	ThemeName   string
	Theme       types.Theme
	ThemeNames  []string
	ThemeCursor int
}

// Snapshot reads everything under a single read lock, so a frame never
// pairs a new listing with a stale selection.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return Snapshot{
		Running:     w.running,
		Dir:         w.tree.dir,
		Mode:        w.tree.mode,
		Entries:     w.tree.entries,
		Playlists:   w.tree.playlists,
		Selected:    w.tree.selected,
		Window:      w.window,
		Input:       string(w.input),
		ThemeName:   w.activeTheme,
		Theme:       w.themes[w.activeTheme],
		ThemeNames:  w.themeNames,
		ThemeCursor: w.themeCursor,
	}
}
