// Package app wires the workspace, the playback engine and the three loops
// together and supervises them.
package app

import (
	"context"
	"time"

	"musicshell/internal/audio"
	"musicshell/internal/config"
	"musicshell/internal/dispatch"
	"musicshell/internal/errors"
	"musicshell/internal/log"
	"musicshell/internal/persist"
	"musicshell/internal/player"
	"musicshell/internal/scheduler"
	"musicshell/internal/tui"
	"musicshell/internal/watch"
	"musicshell/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const (
	// eventBuffer is the capacity of the dispatcher's event channel
	eventBuffer = 64
	// refreshQuiet is how long the playlists folder must be still before a
	// rescan is requested
	refreshQuiet = 200 * time.Millisecond
)

// Options configure an App.
type Options struct {
	// StartDir overrides preferences.start_directory when set
	StartDir string
	// Output replaces the audio device, mainly for tests
	Output player.Output
	// ProgramOptions are passed to the bubbletea program
	ProgramOptions []tea.ProgramOption
}

// App is a fully wired player, ready to Run.
type App struct {
	cfg       *config.Config
	ws        *workspace.Workspace
	engine    *player.Engine
	device    *audio.Device
	session   *persist.SessionStore
	playlists *persist.PlaylistStore
	watcher   *watch.Watcher
	events    chan dispatch.Event
	progOpts  []tea.ProgramOption
}

// New builds every component. Opening the audio device happens first, so a
// missing device fails before anything else is touched.
func New(cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prefs := cfg.Preferences

	a := &App{
		cfg:      cfg,
		events:   make(chan dispatch.Event, eventBuffer),
		progOpts: opts.ProgramOptions,
	}
	ready := false
	defer func() {
		if !ready {
			a.Close()
		}
	}()
	var err error

	out := opts.Output
	if out == nil {
		dev, err := audio.Open(audio.DefaultSampleRate, audio.DefaultBuffer)
		if err != nil {
			return nil, err
		}
		a.device = dev
		out = dev
	}

	a.engine, err = player.NewEngine(out, prefs.PlayableExtensions)
	if err != nil {
		return nil, err
	}

	a.playlists = persist.NewPlaylistStore(prefs.PlaylistsFolder)
	names, err := a.playlists.List()
	if err != nil {
		log.LogWithError(err).Warn("Could not list playlists")
	}

	keymap, err := cfg.KeyMap()
	if err != nil {
		return nil, err
	}
	startDir := prefs.StartDirectory
	if opts.StartDir != "" {
		startDir = opts.StartDir
	}
	a.ws, err = workspace.New(workspace.Options{
		StartDir:    startDir,
		Themes:      cfg.Themes,
		ActiveTheme: prefs.SelectedTheme,
		KeyMap:      keymap,
		Playlists:   names,
	})
	if err != nil {
		return nil, err
	}

	a.session, err = persist.OpenSessionStore(prefs.SessionFile)
	if err != nil {
		return nil, err
	}
	a.restore()

	a.watcher, err = watch.New(watch.WithPattern("*" + persist.PlaylistExt))
	if err != nil {
		return nil, err
	}
	if err := a.watcher.AddDirectory(prefs.PlaylistsFolder); err != nil {
		return nil, err
	}
	ready = true
	return a, nil
}

// restore applies the saved session. Problems only cost the saved state.
func (a *App) restore() {
	sess, ok, err := a.session.Load()
	if err != nil {
		log.LogWithError(err).Warn("Could not load session")
		return
	}
	if !ok {
		return
	}
	a.engine.Restore(sess.Queue, sess.Index, sess.Volume)
	if sess.SelectedTheme != "" && !a.ws.SetActiveTheme(sess.SelectedTheme) {
		log.LogWithFields(log.F("theme", sess.SelectedTheme)).Debug("Saved theme no longer configured")
	}
	log.LogWithFields(log.F("tracks", len(sess.Queue)), log.F("index", sess.Index)).Info("Session restored")
}

// Workspace returns the shared UI state.
func (a *App) Workspace() *workspace.Workspace {
	return a.ws
}

// Engine returns the playback engine.
func (a *App) Engine() *player.Engine {
	return a.engine
}

// Run starts the dispatcher, the scheduler, the playlist watcher and the
// render loop, and blocks until the user exits, ctx is cancelled or a loop
// fails.
func (a *App) Run(ctx context.Context) error {
	prefs := a.cfg.Preferences
	poll := time.Duration(prefs.PollIntervalMs) * time.Millisecond
	frame := time.Duration(prefs.FrameIntervalMs) * time.Millisecond

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	disp := dispatch.New(a.ws, a.engine, a.playlists, a.session)
	sched := scheduler.New(a.engine, a.ws.Running,
		scheduler.WithInterval(poll),
		scheduler.WithAbortOnDecodeError(prefs.AbortOnDecodeError),
		scheduler.WithNotifier(func(msg string) { a.send(ctx, dispatch.NoticeEvent{Message: msg}) }),
	)
	if err := a.watcher.Start(); err != nil {
		return err
	}
	log.LogWithFields(log.F("directories", a.watcher.GetDirectories())).Debug("Watching playlists")

	g.Go(func() error {
		return disp.Run(ctx, a.events)
	})
	g.Go(func() error {
		return sched.Run(ctx)
	})
	g.Go(func() error {
		return a.watcher.Forward(ctx, refreshQuiet, func() {
			a.send(ctx, dispatch.RefreshPlaylistsEvent{})
		})
	})
	g.Go(func() error {
		// The UI ending for any reason ends every loop
		defer cancel()
		defer a.ws.Stop()

		model := tui.New(ctx, a.ws, a.engine, a.events, frame)
		opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.progOpts...)
		_, err := tea.NewProgram(model, opts...).Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return errors.Wrap(err, "terminal UI failed")
		}
		return nil
	})

	err := g.Wait()
	if a.watcher.IsRunning() {
		a.watcher.Stop()
	}
	return err
}

func (a *App) send(ctx context.Context, ev dispatch.Event) {
	select {
	case a.events <- ev:
	case <-ctx.Done():
	}
}

// Close releases the session database and the audio device.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			log.LogWithError(err).Warn("Error closing session store")
		}
	}
	if a.device != nil {
		a.device.Close()
	}
}
