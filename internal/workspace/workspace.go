// Package workspace holds the shared, lock-guarded UI state: navigation,
// window mode, text input, themes, the key map and the running flag.
//
// Every method takes the lock for a single step. Filesystem calls happen
// before the lock is acquired, never while it is held.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"musicshell/internal/errors"
	"musicshell/pkg/types"
)

// Options configure a new Workspace.
type Options struct {
	StartDir    string
	Themes      map[string]types.Theme
	ActiveTheme string
	KeyMap      types.KeyMap
	Playlists   []string
}

// Workspace is the single source of truth for UI state.
type Workspace struct {
	mu sync.RWMutex

	tree    *Tree
	window  types.WindowMode
	input   []rune
	running bool

	themes      map[string]types.Theme
	themeNames  []string
	themeCursor int
	activeTheme string

	keymap types.KeyMap
}

// New lists the start directory and returns a running workspace.
func New(opts Options) (*Workspace, error) {
	dir := opts.StartDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.FromOS("cannot resolve working directory", ".", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.NewFileError("invalid start directory", dir, errors.InvalidPath, err)
	}

	entries, err := ListDirectory(dir)
	if err != nil {
		return nil, err
	}

	if _, ok := opts.Themes[opts.ActiveTheme]; !ok {
		return nil, errors.NewConfigError("unknown theme "+opts.ActiveTheme, "selected_theme", errors.InvalidConfig, nil)
	}

	names := make([]string, 0, len(opts.Themes))
	for name := range opts.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	tree := NewTree(dir, entries)
	tree.SetPlaylists(sortedCopy(opts.Playlists), 0)

	keymap := opts.KeyMap
	if keymap == nil {
		keymap = types.KeyMap{}
	}

	return &Workspace{
		tree:        tree,
		window:      types.NormalWindow(),
		running:     true,
		themes:      opts.Themes,
		themeNames:  names,
		activeTheme: opts.ActiveTheme,
		keymap:      keymap,
	}, nil
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

// Running reports whether the application should keep going.
func (w *Workspace) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Stop clears the running flag. All loops observe it and exit.
func (w *Workspace) Stop() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// Lookup resolves a key through the read-only key map.
func (w *Workspace) Lookup(k types.Key) (types.Action, bool) {
	return w.keymap.Lookup(k)
}

// KeyMap returns the key map. Callers must not modify it.
func (w *Workspace) KeyMap() types.KeyMap {
	return w.keymap
}

// Window modes

func (w *Workspace) Window() types.WindowMode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.window
}

// ShowError switches to the error window. Any pending text input is dropped.
func (w *Workspace) ShowError(msg string) {
	w.mu.Lock()
	w.window = types.ErrorWindow(msg)
	w.input = nil
	w.mu.Unlock()
}

// OpenThemePicker switches to the theme picker with the cursor on the first name.
func (w *Workspace) OpenThemePicker() {
	w.mu.Lock()
	w.window = types.WindowMode{Kind: types.WindowThemeSelect}
	w.themeCursor = 0
	w.mu.Unlock()
}

// OpenPlaylistEntry switches to playlist name entry with an empty buffer.
func (w *Workspace) OpenPlaylistEntry() {
	w.mu.Lock()
	w.window = types.WindowMode{Kind: types.WindowPlaylistNameEntry}
	w.input = nil
	w.mu.Unlock()
}

// CloseWindow returns to Normal, discarding any error message or input.
func (w *Workspace) CloseWindow() {
	w.mu.Lock()
	w.window = types.NormalWindow()
	w.input = nil
	w.mu.Unlock()
}

// Text input

func (w *Workspace) AppendInput(r rune) {
	w.mu.Lock()
	w.input = append(w.input, r)
	w.mu.Unlock()
}

// Backspace removes the last rune, if any.
func (w *Workspace) Backspace() {
	w.mu.Lock()
	if n := len(w.input); n > 0 {
		w.input = w.input[:n-1]
	}
	w.mu.Unlock()
}

func (w *Workspace) Input() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return string(w.input)
}

// Navigation

func (w *Workspace) NavMode() types.NavMode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Mode()
}

func (w *Workspace) Selected() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Selected()
}

func (w *Workspace) CurrentDir() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Dir()
}

// Entries returns the current listing. The slice is replaced on every
// directory change and never modified in place.
func (w *Workspace) Entries() []types.Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Entries()
}

func (w *Workspace) Playlists() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Playlists()
}

func (w *Workspace) SelectedEntry() (types.Entry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.SelectedEntry()
}

func (w *Workspace) SelectedPlaylist() (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.SelectedPlaylist()
}

func (w *Workspace) MoveSelection(delta int, queueLen int) {
	w.mu.Lock()
	w.tree.MoveSelection(delta, queueLen)
	w.mu.Unlock()
}

func (w *Workspace) CycleMode(forward bool) {
	w.mu.Lock()
	w.tree.CycleMode(forward)
	w.mu.Unlock()
}

// ClampSelection re-establishes the selection bound after the queue shrank.
func (w *Workspace) ClampSelection(queueLen int) {
	w.mu.Lock()
	w.tree.Clamp(queueLen)
	w.mu.Unlock()
}

// EnterDirectory lists dir and, on success, makes it current with the
// selection reset, both under one write lock.
func (w *Workspace) EnterDirectory(dir string) error {
	entries, err := ListDirectory(dir)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.tree.SetListing(dir, entries)
	w.mu.Unlock()
	return nil
}

// GoToParent moves to the parent directory. It is a no-op at the root.
func (w *Workspace) GoToParent() error {
	dir := w.CurrentDir()
	parent := filepath.Dir(dir)
	if parent == dir {
		return nil
	}
	return w.EnterDirectory(parent)
}

// SetPlaylists replaces the playlist names, sorted.
func (w *Workspace) SetPlaylists(names []string, queueLen int) {
	sorted := sortedCopy(names)
	w.mu.Lock()
	w.tree.SetPlaylists(sorted, queueLen)
	w.mu.Unlock()
}

// AddPlaylist appends name unless it is already listed.
func (w *Workspace) AddPlaylist(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.tree.playlists {
		if existing == name {
			return
		}
	}
	names := make([]string, len(w.tree.playlists), len(w.tree.playlists)+1)
	copy(names, w.tree.playlists)
	w.tree.playlists = append(names, name)
}

// Themes

// ThemeNames returns the configured theme names sorted by name.
func (w *Workspace) ThemeNames() []string {
	return w.themeNames
}

func (w *Workspace) ThemeCursor() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.themeCursor
}

// MoveThemeCursor moves the picker cursor, saturating at both ends.
func (w *Workspace) MoveThemeCursor(delta int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.themeCursor + delta
	if next < 0 {
		next = 0
	}
	if n := len(w.themeNames); next > n-1 {
		next = n - 1
	}
	if next < 0 {
		next = 0
	}
	w.themeCursor = next
}

// CommitTheme activates the theme under the picker cursor. The picker stays open.
func (w *Workspace) CommitTheme() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.themeCursor >= len(w.themeNames) {
		return "", false
	}
	w.activeTheme = w.themeNames[w.themeCursor]
	return w.activeTheme, true
}

// SetActiveTheme activates a theme by name.
func (w *Workspace) SetActiveTheme(name string) bool {
	if _, ok := w.themes[name]; !ok {
		return false
	}
	w.mu.Lock()
	w.activeTheme = name
	w.mu.Unlock()
	return true
}

// ActiveTheme returns the name and colors of the active theme.
func (w *Workspace) ActiveTheme() (string, types.Theme) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.activeTheme, w.themes[w.activeTheme]
}
