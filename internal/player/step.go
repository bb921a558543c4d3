package player

import (
	"path/filepath"
	"time"
)

// StepKind tells the scheduler what the current cycle decided.
type StepKind int

const (
	// StepIdle means nothing to do until the next tick.
	StepIdle StepKind = iota
	// StepCleared means a pending restart stopped the output; run again.
	StepCleared
	// StepStart means Track at Slot should be started now.
	StepStart
)

// Step is the outcome of one scheduling decision.
type Step struct {
	Kind  StepKind
	Track string
	Slot  int
}

// NextStep makes one scheduling decision under the write lock and advances
// the play index when a track is picked. It never starts playback itself.
func (e *Engine) NextStep() Step {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.queue) == 0 || !e.out.Idle() {
		if !e.restart {
			return Step{Kind: StepIdle}
		}
		e.out.Clear()
		e.nowPlaying = ""
		e.total = 0
		e.index = e.restartAt
		e.restartAt = 0
		e.restart = false
		e.replay = false
		return Step{Kind: StepCleared}
	}

	if e.restart {
		e.index = e.restartAt
		e.restartAt = 0
		e.restart = false
	} else if e.repeat && e.replay && e.index > 0 {
		e.index--
	}
	e.replay = false
	if e.index > len(e.queue)-1 {
		e.index = 0
	}

	slot := e.index
	e.index++
	return Step{Kind: StepStart, Track: e.queue[slot], Slot: slot}
}

// Started records the track the output just began playing.
func (e *Engine) Started(track string, total time.Duration) {
	e.mu.Lock()
	e.nowPlaying = track
	e.total = total
	e.replay = true
	e.mu.Unlock()
}

// Start plays track on the output. It takes no lock, so the scheduler can
// call it while the dispatcher and render loop keep using the engine.
func (e *Engine) Start(track string) (time.Duration, error) {
	return e.out.Play(track)
}

// Status is a read-only view of the engine for one frame.
type Status struct {
	Playing    bool
	Paused     bool
	Position   time.Duration
	Total      time.Duration
	Volume     float64
	Repeat     bool
	NowPlaying string
	Queue      []string
	// NowPlayingSlot is only meaningful when Queue is non-empty.
	NowPlayingSlot int
}

// Status reads the engine and its output under one read lock.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := Status{
		Playing:        e.nowPlaying != "" && !e.out.Idle(),
		Paused:         e.out.Paused(),
		Total:          e.total,
		Volume:         e.volume,
		Repeat:         e.repeat,
		Queue:          append([]string(nil), e.queue...),
		NowPlayingSlot: nowPlayingIndex(e.index),
	}
	if s.Playing {
		s.NowPlaying = filepath.Base(e.nowPlaying)
		s.Position = e.out.Position()
		if s.Position > s.Total && s.Total > 0 {
			s.Position = s.Total
		}
	}
	return s
}
