// Package audio plays tracks through the system speaker using beep.
package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"musicshell/internal/errors"
	"musicshell/internal/log"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

const (
	// DefaultSampleRate is the speaker rate; tracks at other rates are resampled.
	DefaultSampleRate = 44100
	// DefaultBuffer is the speaker buffer length.
	DefaultBuffer = 100 * time.Millisecond

	resampleQuality = 4
)

// Device is a speaker-backed player.Output.
//
// Lock order is d.mu before the speaker lock. The end-of-track callback runs
// inside the speaker lock and only touches atomics.
type Device struct {
	sampleRate beep.SampleRate

	mu     sync.Mutex
	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	vol    *effects.Volume
	volume float64
	paused bool

	gen  atomic.Uint64
	idle atomic.Bool
}

// Open initializes the speaker. A missing or busy audio device is reported
// as a DeviceUnavailable playback error.
func Open(sampleRate int, buffer time.Duration) (*Device, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, errors.NewPlaybackError("audio device unavailable", "", errors.DeviceUnavailable, err)
	}
	log.LogWithFields(log.F("sample_rate", sampleRate), log.F("buffer", buffer.String())).Debug("Speaker initialized")
	return newDevice(sr), nil
}

func newDevice(sr beep.SampleRate) *Device {
	d := &Device{sampleRate: sr, volume: 1}
	d.idle.Store(true)
	return d
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	}
	return nil, beep.Format{}, errors.Newf("unsupported format %q", filepath.Ext(path))
}

// Play decodes path and replaces the current track with it. New tracks
// always start unpaused.
func (d *Device) Play(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.FromOS("cannot open track", path, err)
	}
	stream, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return 0, errors.NewPlaybackError("cannot decode track", path, errors.DecodeFailed, err)
	}
	total := format.SampleRate.D(stream.Len())

	var s beep.Streamer = stream
	if format.SampleRate != d.sampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, d.sampleRate, stream)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	g := d.gen.Add(1)
	ctrl := &beep.Ctrl{Streamer: s}
	vol := &effects.Volume{Streamer: ctrl, Base: 2}
	applyVolume(vol, d.volume)

	speaker.Clear()
	d.closeStreamLocked()
	d.stream, d.format, d.ctrl, d.vol = stream, format, ctrl, vol
	d.paused = false
	d.idle.Store(false)

	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		if d.gen.Load() == g {
			d.idle.Store(true)
		}
	})))

	log.LogWithFields(log.F("track", path), log.F("duration", total.String())).Debug("Playing")
	return total, nil
}

func (d *Device) closeStreamLocked() {
	if d.stream == nil {
		return
	}
	if err := d.stream.Close(); err != nil {
		log.LogWithError(err).Debug("Closing stream failed")
	}
	d.stream, d.ctrl, d.vol = nil, nil, nil
}

// Clear stops playback and releases the current track.
func (d *Device) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen.Add(1)
	speaker.Clear()
	d.closeStreamLocked()
	d.idle.Store(true)
}

func (d *Device) SetPaused(paused bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paused = paused
	if d.ctrl != nil {
		speaker.Lock()
		d.ctrl.Paused = paused
		speaker.Unlock()
	}
}

func (d *Device) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

func (d *Device) Position() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil {
		return 0
	}
	speaker.Lock()
	pos := d.stream.Position()
	speaker.Unlock()
	return d.format.SampleRate.D(pos)
}

// Seek moves the playhead of the current track, clamped to its length.
func (d *Device) Seek(to time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream == nil {
		return nil
	}
	n := d.format.SampleRate.N(to)
	if n < 0 {
		n = 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	if length := d.stream.Len(); n > length {
		n = length
	}
	if err := d.stream.Seek(n); err != nil {
		return errors.NewPlaybackError("seek failed", "", errors.DecodeFailed, err)
	}
	return nil
}

// SetVolume takes a linear volume in [0, 1] and maps it onto the
// logarithmic base-2 scale of effects.Volume.
func (d *Device) SetVolume(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = v
	if d.vol != nil {
		speaker.Lock()
		applyVolume(d.vol, v)
		speaker.Unlock()
	}
}

func applyVolume(vol *effects.Volume, v float64) {
	if v <= 0 {
		vol.Silent = true
		vol.Volume = 0
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(math.Min(v, 1))
}

// Idle reports that nothing is loaded or the last track reached its end.
func (d *Device) Idle() bool {
	return d.idle.Load()
}

// Close stops playback and shuts the speaker down.
func (d *Device) Close() {
	d.Clear()
	speaker.Close()
}
