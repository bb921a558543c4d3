package player

import "time"

// Output is the audio device the engine drives.
//
// Play decodes and starts a track and may block on file I/O; it is only
// called without the engine lock held. The other methods must return
// promptly because the engine calls them while holding its lock.
type Output interface {
	// Play replaces whatever is playing with path and reports its length.
	Play(path string) (time.Duration, error)
	// Clear stops and drops the current track.
	Clear()
	SetPaused(paused bool)
	Paused() bool
	// Position is the elapsed time of the current track.
	Position() time.Duration
	Seek(d time.Duration) error
	// SetVolume takes a linear volume in [0, 1].
	SetVolume(v float64)
	// Idle reports that no track is loaded or the last one finished.
	Idle() bool
}
