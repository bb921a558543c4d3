// Package dispatch turns key presses into state transitions. It is the only
// writer of the window mode.
package dispatch

import (
	"context"
	"strings"
	"time"

	"musicshell/internal/errors"
	"musicshell/internal/log"
	"musicshell/internal/persist"
	"musicshell/internal/player"
	"musicshell/internal/workspace"
	"musicshell/pkg/types"
)

// TickInterval bounds how long the dispatcher waits without an event.
const TickInterval = 100 * time.Millisecond

// PlaylistStore is where named playlists are kept.
type PlaylistStore interface {
	Save(name string, tracks []string) error
	Load(name string) ([]string, error)
	Delete(name string) error
	List() ([]string, error)
}

// SessionSaver persists the session on exit.
type SessionSaver interface {
	Save(sess persist.Session) error
}

// Dispatcher applies actions to the workspace and the engine.
type Dispatcher struct {
	ws        *workspace.Workspace
	engine    *player.Engine
	playlists PlaylistStore
	session   SessionSaver
}

// New creates a dispatcher. session may be nil.
func New(ws *workspace.Workspace, engine *player.Engine, playlists PlaylistStore, session SessionSaver) *Dispatcher {
	return &Dispatcher{ws: ws, engine: engine, playlists: playlists, session: session}
}

// Run handles events until the running flag clears, events closes or ctx
// is done. The tick keeps the queue selection in range while the scheduler
// drops tracks.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for d.ws.Running() {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.Handle(ev)
		case <-ticker.C:
			if d.ws.NavMode() == types.NavQueue {
				d.ws.ClampSelection(d.engine.Len())
			}
		}
	}
	return nil
}

// Handle applies a single event.
func (d *Dispatcher) Handle(ev Event) {
	switch e := ev.(type) {
	case KeyEvent:
		d.HandleKey(e.Key)
	case NoticeEvent:
		d.ws.ShowError(e.Message)
	case RefreshPlaylistsEvent:
		d.refreshPlaylists()
	}
}

// HandleKey routes a key press. While a playlist name is being typed,
// plain keys edit the buffer and only CTRL or ALT chords reach the key map.
func (d *Dispatcher) HandleKey(k types.Key) {
	if d.ws.Window().Kind == types.WindowPlaylistNameEntry && !k.Has(types.ModCtrl) && !k.Has(types.ModAlt) {
		d.handleTextKey(k)
		return
	}

	action, ok := d.ws.Lookup(k)
	if !ok {
		return
	}
	log.Debugf("key %s -> %s", k, action)
	d.Apply(action)
}

func (d *Dispatcher) handleTextKey(k types.Key) {
	switch k.Token {
	case "ESC":
		d.ws.CloseWindow()
	case "ENTER":
		d.confirmPlaylist()
	case "BACKSPACE":
		d.ws.Backspace()
	default:
		if r, ok := k.Rune(); ok {
			d.ws.AppendInput(r)
		}
	}
}

// Apply runs an action against the current window.
func (d *Dispatcher) Apply(a types.Action) {
	if a.Kind == types.ActionExit {
		d.exit()
		return
	}

	switch d.ws.Window().Kind {
	case types.WindowError:
		if a.Kind == types.ActionEscape {
			d.ws.CloseWindow()
		}
	case types.WindowPlaylistNameEntry:
		if a.Kind == types.ActionEscape {
			d.ws.CloseWindow()
			return
		}
		d.applyGlobal(a)
	case types.WindowThemeSelect:
		d.applyThemeSelect(a)
	default:
		d.applyNormal(a)
	}
}

func (d *Dispatcher) applyThemeSelect(a types.Action) {
	switch a.Kind {
	case types.ActionUp:
		d.ws.MoveThemeCursor(-1)
	case types.ActionDown:
		d.ws.MoveThemeCursor(1)
	case types.ActionChildDir, types.ActionPlay:
		if name, ok := d.ws.CommitTheme(); ok {
			log.LogWithFields(log.F("theme", name)).Debug("Theme selected")
		}
	case types.ActionEscape:
		d.ws.CloseWindow()
	default:
		d.applyGlobal(a)
	}
}

func (d *Dispatcher) applyNormal(a types.Action) {
	switch a.Kind {
	case types.ActionUp:
		d.ws.MoveSelection(-1, d.engine.Len())
	case types.ActionDown:
		d.ws.MoveSelection(1, d.engine.Len())
	case types.ActionChildDir, types.ActionPlay:
		d.enterSelected()
	case types.ActionParentDir:
		if d.ws.NavMode() == types.NavFiles {
			if err := d.ws.GoToParent(); err != nil {
				d.fail(err)
			}
		}
	case types.ActionNextMode:
		d.ws.CycleMode(true)
	case types.ActionPrevMode:
		d.ws.CycleMode(false)
	case types.ActionAddToQueue:
		if e, ok := d.ws.SelectedEntry(); ok && !e.IsDir {
			d.engine.EnqueueBack(e.Path)
		}
	case types.ActionAddAllToQueue:
		if d.ws.NavMode() == types.NavFiles {
			d.enqueueListing()
		}
	case types.ActionSelectTheme:
		d.ws.OpenThemePicker()
	case types.ActionSavePlaylist:
		d.ws.OpenPlaylistEntry()
	default:
		d.applyGlobal(a)
	}
}

// applyGlobal handles the actions that work in any window but Error.
func (d *Dispatcher) applyGlobal(a types.Action) {
	if !a.Kind.IsGlobal() {
		return
	}
	switch a.Kind {
	case types.ActionTogglePause:
		d.engine.TogglePause()
	case types.ActionToggleRepeat:
		d.engine.ToggleRepeat()
	case types.ActionQueueNext:
		d.engine.SkipNext()
	case types.ActionQueuePrev:
		d.engine.SkipPrev()
	case types.ActionRewindForward:
		d.engine.SeekForward(a.Arg)
	case types.ActionRewindBack:
		d.engine.SeekBack(a.Arg)
	case types.ActionVolumeIncrease:
		d.engine.SetVolumeDelta(a.Arg, true)
	case types.ActionVolumeDecrease:
		d.engine.SetVolumeDelta(a.Arg, false)
	case types.ActionClearQueue:
		d.engine.ClearQueue()
		d.ws.ClampSelection(0)
	case types.ActionDelete:
		d.delete()
	}
}

func (d *Dispatcher) enterSelected() {
	switch d.ws.NavMode() {
	case types.NavFiles:
		e, ok := d.ws.SelectedEntry()
		if !ok {
			return
		}
		if e.IsDir {
			if err := d.ws.EnterDirectory(e.Path); err != nil {
				d.fail(err)
			}
			return
		}
		d.engine.PlayNow(e.Path)

	case types.NavPlaylists:
		name, ok := d.ws.SelectedPlaylist()
		if !ok {
			return
		}
		tracks, err := d.playlists.Load(name)
		if err != nil {
			d.fail(err)
			return
		}
		d.engine.ReplaceQueue(tracks)

	case types.NavQueue:
		if sel := d.ws.Selected(); sel < d.engine.Len() {
			d.engine.RequestRestartAt(sel)
		}
	}
}

func (d *Dispatcher) enqueueListing() {
	entries := d.ws.Entries()
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir {
			paths = append(paths, e.Path)
		}
	}
	d.engine.EnqueueAll(paths)
}

func (d *Dispatcher) delete() {
	switch d.ws.NavMode() {
	case types.NavQueue:
		d.engine.RemoveAt(d.ws.Selected())
		d.ws.ClampSelection(d.engine.Len())
	case types.NavPlaylists:
		name, ok := d.ws.SelectedPlaylist()
		if !ok {
			return
		}
		if err := d.playlists.Delete(name); err != nil {
			d.fail(err)
			return
		}
		d.refreshPlaylists()
	}
}

func (d *Dispatcher) confirmPlaylist() {
	name := d.ws.Input()
	if strings.TrimSpace(name) == "" {
		return
	}
	if err := d.playlists.Save(name, d.engine.Queue()); err != nil {
		if errors.IsInvalidInputError(err) {
			log.LogWithError(err).Debug("Rejected playlist name")
			return
		}
		d.fail(err)
		return
	}
	log.LogWithFields(log.F("playlist", name)).Info("Playlist saved")
	d.ws.CloseWindow()
	d.ws.AddPlaylist(name)
	d.refreshPlaylists()
}

func (d *Dispatcher) refreshPlaylists() {
	names, err := d.playlists.List()
	if err != nil {
		d.fail(err)
		return
	}
	d.ws.SetPlaylists(names, d.engine.Len())
}

func (d *Dispatcher) exit() {
	if d.session != nil {
		theme, _ := d.ws.ActiveTheme()
		sess := persist.Session{
			Queue:         d.engine.Queue(),
			Index:         d.engine.NowPlayingIndex(),
			Volume:        d.engine.Volume(),
			SelectedTheme: theme,
		}
		if err := d.session.Save(sess); err != nil {
			log.LogWithError(err).Warn("Could not save session")
		}
	}
	d.ws.Stop()
}

// fail shows err in the error window.
func (d *Dispatcher) fail(err error) {
	log.LogWithError(err).Debug("Action failed")
	d.ws.ShowError(err.Error())
}
