// Package player owns the play queue and drives an Output.
package player

import (
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"musicshell/internal/errors"
	"musicshell/internal/log"

	"github.com/gobwas/glob"
)

const defaultVolume = 1.0

// Engine is the playback aggregate: queue, play index, repeat and the
// pending restart, guarded by one RWMutex.
//
// index is the slot the scheduler starts next. Once a track has started,
// index is one past it; NowPlayingIndex hides that offset from callers.
type Engine struct {
	mu sync.RWMutex

	out      Output
	playable glob.Glob

	queue     []string
	index     int
	repeat    bool
	restart   bool
	restartAt int
	// replay is set once a picked track actually started; repeat only steps
	// back over a track that played.
	replay bool

	volume     float64
	nowPlaying string
	total      time.Duration
}

// NewEngine creates an engine that accepts files with the given extensions.
func NewEngine(out Output, extensions []string) (*Engine, error) {
	if len(extensions) == 0 {
		return nil, errors.NewConfigError("no playable extensions", "preferences.playable_extensions", errors.InvalidConfig, nil)
	}
	exts := make([]string, len(extensions))
	for i, ext := range extensions {
		exts[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	pattern := "*.{" + strings.Join(exts, ",") + "}"
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.NewConfigError("invalid playable extensions", "preferences.playable_extensions", errors.InvalidConfig, err)
	}

	out.SetVolume(defaultVolume)
	return &Engine{out: out, playable: g, volume: defaultVolume}, nil
}

// IsPlayable reports whether path has one of the configured extensions.
func (e *Engine) IsPlayable(path string) bool {
	return e.playable.Match(strings.ToLower(filepath.Base(path)))
}

// EnqueueBack appends path to the queue. Unplayable paths are ignored.
func (e *Engine) EnqueueBack(path string) bool {
	if !e.IsPlayable(path) {
		return false
	}
	e.mu.Lock()
	e.queue = append(e.queue, path)
	e.mu.Unlock()
	return true
}

// EnqueueAll appends every playable path in order and returns how many were added.
func (e *Engine) EnqueueAll(paths []string) int {
	accepted := make([]string, 0, len(paths))
	for _, p := range paths {
		if e.IsPlayable(p) {
			accepted = append(accepted, p)
		}
	}
	if len(accepted) == 0 {
		return 0
	}
	e.mu.Lock()
	e.queue = append(e.queue, accepted...)
	e.mu.Unlock()
	return len(accepted)
}

// PlayNow puts path at the front of the queue and restarts playback there.
func (e *Engine) PlayNow(path string) bool {
	if !e.IsPlayable(path) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	queue := make([]string, 0, len(e.queue)+1)
	queue = append(queue, path)
	e.queue = append(queue, e.queue...)
	e.requestRestartLocked(0)
	return true
}

// ReplaceQueue swaps in paths and restarts from the first slot.
func (e *Engine) ReplaceQueue(paths []string) {
	queue := make([]string, len(paths))
	copy(queue, paths)
	e.mu.Lock()
	e.queue = queue
	e.index = 0
	e.requestRestartLocked(0)
	e.mu.Unlock()
}

// ClearQueue empties the queue and stops playback on the next scheduler cycle.
func (e *Engine) ClearQueue() {
	e.mu.Lock()
	e.queue = nil
	e.index = 0
	e.requestRestartLocked(0)
	e.mu.Unlock()
}

// RemoveAt deletes slot i, keeping index pointed at the same next track.
func (e *Engine) RemoveAt(i int) {
	e.mu.Lock()
	e.removeAtLocked(i)
	e.mu.Unlock()
}

func (e *Engine) removeAtLocked(i int) {
	if i < 0 || i >= len(e.queue) {
		return
	}
	e.queue = append(e.queue[:i:i], e.queue[i+1:]...)
	if i == e.index-1 {
		e.replay = false
	}
	if i < e.index {
		e.index--
	}
	if len(e.queue) == 0 {
		e.index = 0
	}
	if e.restartAt > len(e.queue) {
		e.restartAt = 0
	}
}

// RemoveTrack deletes slot only if it still holds path. The scheduler uses it
// for tracks that vanished or failed to decode, since the queue may have
// changed since the track was picked.
func (e *Engine) RemoveTrack(slot int, path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if slot < 0 || slot >= len(e.queue) || e.queue[slot] != path {
		return false
	}
	e.removeAtLocked(slot)
	return true
}

func (e *Engine) TogglePause() {
	e.mu.Lock()
	e.out.SetPaused(!e.out.Paused())
	e.mu.Unlock()
}

// SetVolumeDelta moves the volume by step percentage points, clamped to 0..100.
func (e *Engine) SetVolumeDelta(step int, increase bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pct := int(math.Round(e.volume * 100))
	if increase {
		pct += step
	} else {
		pct -= step
	}
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	e.volume = float64(pct) / 100
	e.out.SetVolume(e.volume)
}

// SeekForward jumps ahead by seconds, stopping at the end of the track.
func (e *Engine) SeekForward(seconds int) {
	e.seekBy(time.Duration(seconds) * time.Second)
}

// SeekBack jumps back by seconds, stopping at the start of the track.
func (e *Engine) SeekBack(seconds int) {
	e.seekBy(-time.Duration(seconds) * time.Second)
}

func (e *Engine) seekBy(delta time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nowPlaying == "" || e.out.Idle() {
		return
	}
	target := e.out.Position() + delta
	if target < 0 {
		target = 0
	}
	if e.total > 0 && target > e.total {
		target = e.total
	}
	if err := e.out.Seek(target); err != nil {
		log.LogWithError(err).Debug("Seek failed")
	}
}

// RequestRestart asks the scheduler to stop the current track and start again from slot 0.
func (e *Engine) RequestRestart() {
	e.RequestRestartAt(0)
}

// RequestRestartAt asks the scheduler to stop the current track and start from slot i.
func (e *Engine) RequestRestartAt(i int) {
	e.mu.Lock()
	e.requestRestartLocked(i)
	e.mu.Unlock()
}

func (e *Engine) requestRestartLocked(i int) {
	if i < 0 {
		i = 0
	}
	e.restart = true
	e.restartAt = i
	e.replay = false
}

func (e *Engine) ToggleRepeat() {
	e.mu.Lock()
	e.repeat = !e.repeat
	e.mu.Unlock()
}

// SkipNext restarts at the slot after the one playing.
func (e *Engine) SkipNext() {
	e.mu.Lock()
	e.requestRestartLocked(e.index)
	e.mu.Unlock()
}

// SkipPrev restarts at the slot before the one playing.
func (e *Engine) SkipPrev() {
	e.mu.Lock()
	e.requestRestartLocked(e.index - 2)
	e.mu.Unlock()
}

// NowPlayingIndex is the queue slot of the current track.
func (e *Engine) NowPlayingIndex() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return nowPlayingIndex(e.index)
}

func nowPlayingIndex(index int) int {
	if index > 0 {
		return index - 1
	}
	return 0
}

// Len returns the queue length.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.queue)
}

// Queue returns a copy of the queue.
func (e *Engine) Queue() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.queue...)
}

// Volume returns the linear volume in [0, 1].
func (e *Engine) Volume() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.volume
}

// Restore applies a saved session. index is the slot that was playing, so
// playback resumes with that track.
func (e *Engine) Restore(queue []string, index int, volume float64) {
	if volume < 0 || volume > 1 || math.IsNaN(volume) {
		volume = defaultVolume
	}
	q := make([]string, len(queue))
	copy(q, queue)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue = q
	if index < 0 || index >= len(q) {
		index = 0
	}
	e.index = index
	e.volume = volume
	e.out.SetVolume(volume)
}
