package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{Path: "b.mp3"},
		{Path: "A", IsDir: true},
		{Path: "a.txt"},
	}
	SortEntries(entries)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Path
	}
	assert.Equal(t, []string{"A", "a.txt", "b.mp3"}, names)
}

func TestSortEntriesDirectoriesFirst(t *testing.T) {
	entries := []Entry{
		{Path: "/m/z.flac"},
		{Path: "/m/b", IsDir: true},
		{Path: "/m/a.mp3"},
		{Path: "/m/B", IsDir: true},
	}
	SortEntries(entries)

	assert.Equal(t, "/m/B", entries[0].Path)
	assert.Equal(t, "/m/b", entries[1].Path)
	assert.Equal(t, "/m/a.mp3", entries[2].Path)
	assert.Equal(t, "/m/z.flac", entries[3].Path)
}

func TestNavModeCycle(t *testing.T) {
	m := NavFiles
	m = m.Next()
	assert.Equal(t, NavQueue, m)
	m = m.Next()
	assert.Equal(t, NavPlaylists, m)
	m = m.Next()
	assert.Equal(t, NavFiles, m)

	assert.Equal(t, NavPlaylists, NavFiles.Prev())
	assert.Equal(t, NavFiles, NavQueue.Prev())
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		arg     int
		want    Action
		wantErr bool
	}{
		{"Up", 0, Action{Kind: ActionUp}, false},
		{"Up", 3, Action{Kind: ActionUp}, false},
		{"VolumeIncrease", 10, Action{Kind: ActionVolumeIncrease, Arg: 10}, false},
		{"RewindBack", 0, Action{Kind: ActionRewindBack, Arg: 5}, false},
		{"RewindBack", -1, Action{}, true},
		{"Teleport", 0, Action{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.name, tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsGlobal(t *testing.T) {
	for _, k := range []ActionKind{ActionTogglePause, ActionQueueNext, ActionClearQueue, ActionDelete} {
		assert.True(t, k.IsGlobal(), k.String())
	}
	for _, k := range []ActionKind{ActionUp, ActionPlay, ActionNextMode, ActionSelectTheme, ActionSavePlaylist} {
		assert.False(t, k.IsGlobal(), k.String())
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("enter", nil)
	require.NoError(t, err)
	assert.Equal(t, Key{Token: "ENTER"}, k)

	k, err = ParseKey("c", []string{"ctrl"})
	require.NoError(t, err)
	assert.Equal(t, Key{Token: "c", Mods: ModCtrl}, k)
	assert.Equal(t, "ctrl+c", k.String())

	_, err = ParseKey("enterr", nil)
	assert.Error(t, err)

	_, err = ParseKey("x", []string{"HYPER"})
	assert.Error(t, err)
}

func TestKeyRune(t *testing.T) {
	r, ok := Key{Token: "q"}.Rune()
	assert.True(t, ok)
	assert.Equal(t, 'q', r)

	r, ok = Key{Token: "SPACE"}.Rune()
	assert.True(t, ok)
	assert.Equal(t, ' ', r)

	_, ok = Key{Token: "ENTER"}.Rune()
	assert.False(t, ok)
}

func TestKeyMapBindingsOrdered(t *testing.T) {
	km := KeyMap{
		{Token: "q"}:        {Kind: ActionExit},
		{Token: "ARROW_UP"}: {Kind: ActionUp},
		{Token: "k"}:        {Kind: ActionUp},
	}

	b := km.Bindings()
	require.Len(t, b, 3)
	assert.Equal(t, "ARROW_UP", b[0].Key.Token)
	assert.Equal(t, "k", b[1].Key.Token)
	assert.Equal(t, ActionExit, b[2].Action.Kind)

	a, ok := km.Lookup(Key{Token: "k"})
	assert.True(t, ok)
	assert.Equal(t, ActionUp, a.Kind)
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#ff0080", RGB{255, 0, 128}.Hex())
	assert.Equal(t, "#00ff00", RGB{-4, 300, 0}.Hex())
}
