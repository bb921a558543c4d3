// Package playertest provides an in-memory player.Output for tests.
package playertest

import (
	"sync"
	"time"
)

// FakeOutput records calls and lets tests finish tracks by hand.
type FakeOutput struct {
	mu sync.Mutex

	// Durations maps a path to the length Play reports. Unknown paths get 3 minutes.
	Durations map[string]time.Duration
	// Fail maps a path to the error Play returns for it.
	Fail map[string]error

	Played   []string
	Clears   int
	Seeks    []time.Duration
	SeekErr  error
	current  string
	paused   bool
	position time.Duration
	volume   float64
}

// NewFakeOutput returns an idle fake output.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{
		Durations: map[string]time.Duration{},
		Fail:      map[string]error{},
	}
}

func (f *FakeOutput) Play(path string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.Fail[path]; ok {
		return 0, err
	}
	f.Played = append(f.Played, path)
	f.current = path
	f.position = 0
	if d, ok := f.Durations[path]; ok {
		return d, nil
	}
	return 3 * time.Minute, nil
}

func (f *FakeOutput) Clear() {
	f.mu.Lock()
	f.Clears++
	f.current = ""
	f.position = 0
	f.mu.Unlock()
}

func (f *FakeOutput) SetPaused(paused bool) {
	f.mu.Lock()
	f.paused = paused
	f.mu.Unlock()
}

func (f *FakeOutput) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func (f *FakeOutput) Position() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *FakeOutput) Seek(d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SeekErr != nil {
		return f.SeekErr
	}
	f.Seeks = append(f.Seeks, d)
	f.position = d
	return nil
}

func (f *FakeOutput) SetVolume(v float64) {
	f.mu.Lock()
	f.volume = v
	f.mu.Unlock()
}

func (f *FakeOutput) Idle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current == ""
}

// Finish ends the current track as if it played to the end.
func (f *FakeOutput) Finish() {
	f.mu.Lock()
	f.current = ""
	f.mu.Unlock()
}

// SetPosition moves the playhead without recording a seek.
func (f *FakeOutput) SetPosition(d time.Duration) {
	f.mu.Lock()
	f.position = d
	f.mu.Unlock()
}

// Current returns the path being played, or "" when idle.
func (f *FakeOutput) Current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Volume returns the last volume set.
func (f *FakeOutput) Volume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}

// PlayedTracks returns a copy of every path passed to a successful Play.
func (f *FakeOutput) PlayedTracks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Played...)
}
