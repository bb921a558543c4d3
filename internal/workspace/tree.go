package workspace

import (
	"os"
	"path/filepath"

	"musicshell/internal/errors"
	"musicshell/pkg/types"
)

// Tree is the navigation state: one directory listing, the playlist names
// and a selection index into whichever list the mode exposes. The queue is
// owned by the playback engine, so operations that depend on its length take
// it as an argument.
//
// Tree has no locking of its own; Workspace guards it.
type Tree struct {
	dir       string
	entries   []types.Entry
	playlists []string
	selected  int
	mode      types.NavMode
}

// NewTree builds a tree rooted at dir with the given listing.
func NewTree(dir string, entries []types.Entry) *Tree {
	return &Tree{dir: dir, entries: entries, mode: types.NavFiles}
}

func (t *Tree) listLen(queueLen int) int {
	switch t.mode {
	case types.NavQueue:
		return queueLen
	case types.NavPlaylists:
		return len(t.playlists)
	default:
		return len(t.entries)
	}
}

// MoveSelection moves the selection by delta, saturating at both ends.
func (t *Tree) MoveSelection(delta int, queueLen int) {
	n := t.listLen(queueLen)
	if n == 0 {
		t.selected = 0
		return
	}
	next := t.selected + delta
	if next < 0 {
		next = 0
	}
	if next > n-1 {
		next = n - 1
	}
	t.selected = next
}

// CycleMode switches to the next or previous mode. Selection is mode-local.
func (t *Tree) CycleMode(forward bool) {
	if forward {
		t.mode = t.mode.Next()
	} else {
		t.mode = t.mode.Prev()
	}
	t.selected = 0
}

// Clamp restores the selection invariant after the active list shrank.
func (t *Tree) Clamp(queueLen int) {
	n := t.listLen(queueLen)
	if n == 0 {
		t.selected = 0
	} else if t.selected > n-1 {
		t.selected = n - 1
	}
}

// SetListing replaces the directory listing and resets the selection.
func (t *Tree) SetListing(dir string, entries []types.Entry) {
	t.dir = dir
	t.entries = entries
	t.selected = 0
}

// SetPlaylists replaces the playlist names.
func (t *Tree) SetPlaylists(names []string, queueLen int) {
	t.playlists = names
	t.Clamp(queueLen)
}

// SelectedEntry returns the highlighted directory entry in Files mode.
func (t *Tree) SelectedEntry() (types.Entry, bool) {
	if t.mode != types.NavFiles || t.selected >= len(t.entries) {
		return types.Entry{}, false
	}
	return t.entries[t.selected], true
}

// SelectedPlaylist returns the highlighted playlist name in Playlists mode.
func (t *Tree) SelectedPlaylist() (string, bool) {
	if t.mode != types.NavPlaylists || t.selected >= len(t.playlists) {
		return "", false
	}
	return t.playlists[t.selected], true
}

func (t *Tree) Dir() string            { return t.dir }
func (t *Tree) Mode() types.NavMode    { return t.mode }
func (t *Tree) Selected() int          { return t.selected }
func (t *Tree) Entries() []types.Entry { return t.entries }
func (t *Tree) Playlists() []string    { return t.playlists }

// ListDirectory reads dir and returns its entries, directories first.
// Symlinks are classified by their target.
func ListDirectory(dir string) ([]types.Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FromOS("cannot list directory", dir, err)
	}

	entries := make([]types.Entry, 0, len(items))
	for _, item := range items {
		path := filepath.Join(dir, item.Name())
		isDir := item.IsDir()
		if item.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, types.Entry{Path: path, IsDir: isDir})
	}
	types.SortEntries(entries)
	return entries, nil
}
