// Package scheduler advances the play queue in the background.
package scheduler

import (
	"context"
	"os"
	"time"

	"musicshell/internal/errors"
	"musicshell/internal/log"
	"musicshell/internal/player"
)

// DefaultInterval is the poll period between scheduling decisions.
const DefaultInterval = 100 * time.Millisecond

// Notifier receives messages meant for the user.
type Notifier func(msg string)

// Scheduler polls the engine and starts the next track when the output is idle.
type Scheduler struct {
	engine   *player.Engine
	running  func() bool
	notify   Notifier
	interval time.Duration
	// abortOnDecode turns a decode failure into a fatal error.
	abortOnDecode bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the poll period.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithAbortOnDecodeError makes Run return when a track cannot be decoded.
func WithAbortOnDecodeError(abort bool) Option {
	return func(s *Scheduler) {
		s.abortOnDecode = abort
	}
}

// WithNotifier sets where skip notices go.
func WithNotifier(n Notifier) Option {
	return func(s *Scheduler) {
		s.notify = n
	}
}

// New creates a scheduler that runs while running() is true.
func New(engine *player.Engine, running func() bool, opts ...Option) *Scheduler {
	s := &Scheduler{
		engine:   engine,
		running:  running,
		notify:   func(string) {},
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step makes one scheduling decision. again is true when the next decision
// should follow immediately instead of waiting for the next tick.
func (s *Scheduler) Step() (again bool, err error) {
	step := s.engine.NextStep()
	switch step.Kind {
	case player.StepIdle:
		return false, nil
	case player.StepCleared:
		return true, nil
	}

	if _, statErr := os.Stat(step.Track); statErr != nil {
		if s.engine.RemoveTrack(step.Slot, step.Track) {
			log.LogWithFields(log.F("path", step.Track), log.F("slot", step.Slot)).Debug("Removed missing track from queue")
		}
		return true, nil
	}

	total, playErr := s.engine.Start(step.Track)
	if playErr != nil {
		if s.abortOnDecode {
			return false, errors.NewPlaybackError("cannot play track", step.Track, errors.DecodeFailed, playErr)
		}
		s.engine.RemoveTrack(step.Slot, step.Track)
		log.LogWithError(playErr).Warn("Skipping unplayable track")
		s.notify(playErr.Error())
		return true, nil
	}

	s.engine.Started(step.Track, total)
	log.LogWithFields(log.F("track", step.Track), log.F("slot", step.Slot)).Debug("Track started")
	return false, nil
}

// Run loops until the running flag clears or ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for s.running() {
		again, err := s.Step()
		if err != nil {
			return err
		}
		if again {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
