// Package tui is the render loop. It draws the workspace and playback state
// on a fixed cadence and forwards key presses to the dispatcher. It never
// changes state itself.
package tui

import (
	"context"
	"sync"
	"time"

	"musicshell/internal/dispatch"
	"musicshell/internal/player"
	"musicshell/internal/tui/components"
	"musicshell/internal/tui/views"
	"musicshell/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameInterval is the render cadence when none is configured.
const DefaultFrameInterval = 32 * time.Millisecond

type frameMsg time.Time

// Model is the bubbletea model of the render loop.
type Model struct {
	ctx    context.Context
	ws     *workspace.Workspace
	engine *player.Engine
	events chan<- dispatch.Event
	frame  time.Duration
	help   *components.Help

	keys     *keyQueue
	pumpOnce sync.Once

	width  int
	height int
}

// New creates the render model. Key presses are sent on events.
func New(ctx context.Context, ws *workspace.Workspace, engine *player.Engine, events chan<- dispatch.Event, frame time.Duration) *Model {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &Model{
		ctx:    ctx,
		ws:     ws,
		engine: engine,
		events: events,
		frame:  frame,
		help:   components.NewHelp(ws.KeyMap()),
		keys:   newKeyQueue(),
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init implements tea.Model. It also starts the goroutine that forwards
// keys to the dispatcher; it runs until the model's context is done.
func (m *Model) Init() tea.Cmd {
	m.pumpOnce.Do(func() {
		go m.keys.run(m.ctx, m.ws.Running, m.events)
	})
	return m.tick()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.forward(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case frameMsg:
		if !m.ws.Running() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// forward queues the keys of msg. A busy dispatcher delays them but never
// stalls rendering.
func (m *Model) forward(msg tea.KeyMsg) {
	if !m.ws.Running() {
		return
	}
	m.keys.push(KeysFromMsg(msg))
}

// View implements tea.Model
func (m *Model) View() string {
	snap := m.ws.Snapshot()
	if !snap.Running {
		return ""
	}
	return views.RenderMainView(views.Frame{
		Snap:   snap,
		Status: m.engine.Status(),
		Help:   m.help,
		Width:  m.width,
		Height: m.height,
	})
}
