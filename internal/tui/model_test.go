package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"musicshell/internal/dispatch"
	"musicshell/internal/player"
	"musicshell/internal/player/playertest"
	"musicshell/internal/workspace"
	"musicshell/pkg/testutils"
	"musicshell/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	model  *Model
	ws     *workspace.Workspace
	engine *player.Engine
	events chan dispatch.Event
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"first.mp3":  "x",
		"second.mp3": "x",
	})

	ws, err := workspace.New(workspace.Options{
		StartDir:    dir,
		Themes:      map[string]types.Theme{"dark": {}},
		ActiveTheme: "dark",
		KeyMap:      types.KeyMap{{Token: "q"}: {Kind: types.ActionExit}},
	})
	require.NoError(t, err)

	engine, err := player.NewEngine(playertest.NewFakeOutput(), []string{"mp3"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := make(chan dispatch.Event, 4)
	model := New(ctx, ws, engine, events, 10*time.Millisecond)
	model.Init()
	return &harness{
		model:  model,
		ws:     ws,
		engine: engine,
		events: events,
		dir:    dir,
	}
}

func (h *harness) next(t *testing.T) dispatch.Event {
	t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("key was not forwarded")
		return nil
	}
}

func TestKeysFromMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []types.Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, []types.Key{{Token: "j"}}},
		{"upper rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A")}, []types.Key{{Token: "A"}}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-"), Alt: true}, []types.Key{{Token: "-", Mods: types.ModAlt}}},
		{"space type", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, []types.Key{{Token: "SPACE"}}},
		{"space rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")}, []types.Key{{Token: "SPACE"}}},
		{"rune burst", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a q")}, []types.Key{{Token: "a"}, {Token: "SPACE"}, {Token: "q"}}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []types.Key{{Token: "ENTER"}}},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, []types.Key{{Token: "ESC"}}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []types.Key{{Token: "TAB"}}},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, []types.Key{{Token: "BACKTAB"}}},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, []types.Key{{Token: "ARROW_UP"}}},
		{"function", tea.KeyMsg{Type: tea.KeyF5}, []types.Key{{Token: "F5"}}},
		{"ctrl c", tea.KeyMsg{Type: tea.KeyCtrlC}, []types.Key{{Token: "c", Mods: types.ModCtrl}}},
		{"ctrl z", tea.KeyMsg{Type: tea.KeyCtrlZ}, []types.Key{{Token: "z", Mods: types.ModCtrl}}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Paste: true}, nil},
		{"unmapped", tea.KeyMsg{Type: tea.KeyHome}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeysFromMsg(tt.msg))
		})
	}
}

func TestModelForwardsKeys(t *testing.T) {
	h := newHarness(t)

	_, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Nil(t, cmd)
	assert.Equal(t, dispatch.KeyEvent{Key: types.Key{Token: "j"}}, h.next(t))

	// The model never interprets keys itself
	assert.Equal(t, 0, h.ws.Selected())
	assert.Equal(t, types.NavFiles, h.ws.NavMode())
}

func TestModelForwardsBurstInOrder(t *testing.T) {
	h := newHarness(t)
	h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("jk")})
	h.model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, dispatch.KeyEvent{Key: types.Key{Token: "j"}}, h.next(t))
	assert.Equal(t, dispatch.KeyEvent{Key: types.Key{Token: "k"}}, h.next(t))
	assert.Equal(t, dispatch.KeyEvent{Key: types.Key{Token: "ENTER"}}, h.next(t))
}

func TestModelDropsKeysAfterStop(t *testing.T) {
	h := newHarness(t)
	h.ws.Stop()

	h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Never(t, func() bool { return len(h.events) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestModelUpdateNeverBlocksOnBusyDispatcher(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan dispatch.Event)
	m := New(ctx, h.ws, h.engine, events, 0)
	m.Init()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		}
		m.Update(frameMsg(time.Now()))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Update blocked while nobody read events")
	}

	// Keys are still delivered once the dispatcher catches up
	for i := 0; i < 100; i++ {
		select {
		case ev := <-events:
			assert.Equal(t, dispatch.KeyEvent{Key: types.Key{Token: "ENTER"}}, ev)
		case <-time.After(time.Second):
			t.Fatalf("key %d was not delivered", i)
		}
	}
}

func TestModelTicksUntilStopped(t *testing.T) {
	h := newHarness(t)
	require.NotNil(t, h.model.Init())

	_, cmd := h.model.Update(frameMsg(time.Now()))
	require.NotNil(t, cmd)
	_, isFrame := cmd().(frameMsg)
	assert.True(t, isFrame)

	h.ws.Stop()
	_, cmd = h.model.Update(frameMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelView(t *testing.T) {
	h := newHarness(t)
	h.model.Update(tea.WindowSizeMsg{Width: 90, Height: 20})

	out := testutils.StripANSI(h.model.View())
	assert.Contains(t, out, "first.mp3")
	assert.Contains(t, out, "second.mp3")
	assert.Contains(t, out, h.dir)
	assert.Contains(t, out, "q quit")

	h.engine.EnqueueBack(filepath.Join(h.dir, "second.mp3"))
	h.ws.CycleMode(true)
	out = testutils.StripANSI(h.model.View())
	assert.Contains(t, out, "second.mp3")
	assert.NotContains(t, out, "first.mp3")

	h.ws.Stop()
	assert.Equal(t, "", h.model.View())
}
