package player_test

import (
	"testing"
	"time"

	"musicshell/internal/player"
	"musicshell/internal/player/playertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) (*player.Engine, *playertest.FakeOutput) {
	t.Helper()
	out := playertest.NewFakeOutput()
	e, err := player.NewEngine(out, []string{"mp3", "flac", "ogg", "wav"})
	require.NoError(t, err)
	return e, out
}

// advance runs one scheduling decision and starts the picked track.
func advance(t *testing.T, e *player.Engine) player.Step {
	t.Helper()
	step := e.NextStep()
	if step.Kind == player.StepStart {
		total, err := e.Start(step.Track)
		require.NoError(t, err)
		e.Started(step.Track, total)
	}
	return step
}

func TestNewEngineRequiresExtensions(t *testing.T) {
	_, err := player.NewEngine(playertest.NewFakeOutput(), nil)
	assert.Error(t, err)
}

func TestEnqueueBackFiltersExtensions(t *testing.T) {
	e, _ := newEngine(t)

	assert.False(t, e.EnqueueBack("/music/notes.txt"))
	assert.Equal(t, 0, e.Len())

	assert.True(t, e.EnqueueBack("/music/a.mp3"))
	assert.True(t, e.EnqueueBack("/music/B.FLAC"))
	assert.False(t, e.EnqueueBack("/music/mp3"))
	assert.Equal(t, []string{"/music/a.mp3", "/music/B.FLAC"}, e.Queue())
}

func TestEnqueueAll(t *testing.T) {
	e, _ := newEngine(t)
	n := e.EnqueueAll([]string{"/m/a.mp3", "/m/cover.jpg", "/m/b.ogg"})
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"/m/a.mp3", "/m/b.ogg"}, e.Queue())
	assert.Equal(t, 0, e.EnqueueAll([]string{"/m/readme.md"}))
}

func TestRemoveAt(t *testing.T) {
	t.Run("empty queue", func(t *testing.T) {
		e, _ := newEngine(t)
		e.RemoveAt(0)
		assert.Equal(t, 0, e.Len())
	})

	t.Run("out of range", func(t *testing.T) {
		e, _ := newEngine(t)
		e.EnqueueBack("/m/a.mp3")
		e.RemoveAt(3)
		e.RemoveAt(-1)
		assert.Equal(t, 1, e.Len())
	})

	t.Run("before index keeps the playing slot", func(t *testing.T) {
		e, _ := newEngine(t)
		e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"})
		e.RequestRestartAt(1)
		advance(t, e)
		require.Equal(t, 1, e.NowPlayingIndex())

		e.RemoveAt(0)
		assert.Equal(t, []string{"/m/b.mp3", "/m/c.mp3"}, e.Queue())
		assert.Equal(t, 0, e.NowPlayingIndex())
	})

	t.Run("last slot resets index", func(t *testing.T) {
		e, _ := newEngine(t)
		e.EnqueueBack("/m/a.mp3")
		advance(t, e)
		e.RemoveAt(0)
		assert.Equal(t, 0, e.Len())
		assert.Equal(t, 0, e.NowPlayingIndex())
	})
}

func TestRemoveTrackChecksPath(t *testing.T) {
	e, _ := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3"})

	assert.False(t, e.RemoveTrack(0, "/m/b.mp3"))
	assert.False(t, e.RemoveTrack(5, "/m/a.mp3"))
	assert.True(t, e.RemoveTrack(1, "/m/b.mp3"))
	assert.Equal(t, []string{"/m/a.mp3"}, e.Queue())
}

func TestSetVolumeDeltaClamps(t *testing.T) {
	e, out := newEngine(t)

	e.SetVolumeDelta(150, true)
	assert.InDelta(t, 1.0, e.Volume(), 1e-9)

	e.SetVolumeDelta(150, false)
	assert.InDelta(t, 0.0, e.Volume(), 1e-9)
	assert.InDelta(t, 0.0, out.Volume(), 1e-9)

	e.SetVolumeDelta(5, true)
	e.SetVolumeDelta(5, true)
	assert.InDelta(t, 0.10, e.Volume(), 1e-9)
	assert.InDelta(t, 0.10, out.Volume(), 1e-9)
}

func TestTogglePause(t *testing.T) {
	e, out := newEngine(t)
	e.TogglePause()
	assert.True(t, out.Paused())
	e.TogglePause()
	assert.False(t, out.Paused())
}

func TestSchedulingOrder(t *testing.T) {
	e, out := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3"})

	step := advance(t, e)
	assert.Equal(t, player.Step{Kind: player.StepStart, Track: "/m/a.mp3", Slot: 0}, step)
	assert.Equal(t, 0, e.NowPlayingIndex())

	assert.Equal(t, player.StepIdle, e.NextStep().Kind, "busy output idles")

	out.Finish()
	step = advance(t, e)
	assert.Equal(t, "/m/b.mp3", step.Track)
	assert.Equal(t, 1, e.NowPlayingIndex())

	out.Finish()
	step = advance(t, e)
	assert.Equal(t, "/m/a.mp3", step.Track, "index wraps to the first slot")
	assert.Equal(t, 0, step.Slot)

	assert.Equal(t, []string{"/m/a.mp3", "/m/b.mp3", "/m/a.mp3"}, out.PlayedTracks())
}

func TestRepeatReplaysTrack(t *testing.T) {
	e, out := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3"})
	e.ToggleRepeat()

	advance(t, e)
	out.Finish()
	step := advance(t, e)
	assert.Equal(t, "/m/a.mp3", step.Track)
	assert.True(t, e.Status().Repeat)
}

func TestRepeatHonoursRestartTarget(t *testing.T) {
	e, out := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3", "/m/d.mp3"})
	advance(t, e)
	e.ToggleRepeat()

	e.RequestRestartAt(3)
	assert.Equal(t, player.StepCleared, e.NextStep().Kind)
	assert.Equal(t, "/m/d.mp3", advance(t, e).Track)
	assert.Equal(t, 3, e.NowPlayingIndex())

	out.Finish()
	assert.Equal(t, "/m/d.mp3", advance(t, e).Track, "a finished track repeats")
}

func TestRepeatSkipNextMovesOn(t *testing.T) {
	e, _ := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"})
	e.ToggleRepeat()
	advance(t, e)

	e.SkipNext()
	e.NextStep()
	assert.Equal(t, "/m/b.mp3", advance(t, e).Track)

	e.SkipPrev()
	e.NextStep()
	assert.Equal(t, "/m/a.mp3", advance(t, e).Track)
}

func TestRepeatAfterRemovingPlayingSlot(t *testing.T) {
	e, out := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"})
	e.ToggleRepeat()
	advance(t, e)

	e.RemoveAt(2)
	out.Finish()
	assert.Equal(t, "/m/a.mp3", advance(t, e).Track, "removing another slot keeps the repeat")

	e.RemoveAt(0)
	out.Finish()
	assert.Equal(t, "/m/b.mp3", advance(t, e).Track, "nothing left to replay")
	assert.Equal(t, []string{"/m/b.mp3"}, e.Queue())
}

func TestPlayNowRestartsAtFront(t *testing.T) {
	e, out := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3"})
	advance(t, e)

	assert.False(t, e.PlayNow("/m/cover.png"))
	assert.True(t, e.PlayNow("/m/z.mp3"))

	assert.Equal(t, player.StepCleared, e.NextStep().Kind)
	assert.Equal(t, 1, out.Clears)
	assert.True(t, out.Idle())

	step := advance(t, e)
	assert.Equal(t, player.Step{Kind: player.StepStart, Track: "/m/z.mp3", Slot: 0}, step)
	assert.Equal(t, []string{"/m/z.mp3", "/m/a.mp3", "/m/b.mp3"}, e.Queue())
}

func TestRestartWhileIdleStartsAtTarget(t *testing.T) {
	e, _ := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"})
	e.RequestRestartAt(2)

	step := advance(t, e)
	assert.Equal(t, "/m/c.mp3", step.Track)
}

func TestClearQueueStopsPlayback(t *testing.T) {
	e, out := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3"})
	advance(t, e)

	e.ClearQueue()
	assert.Equal(t, player.StepCleared, e.NextStep().Kind)
	assert.Equal(t, player.StepIdle, e.NextStep().Kind)
	assert.True(t, out.Idle())
	assert.False(t, e.Status().Playing)
}

func TestReplaceQueue(t *testing.T) {
	e, _ := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3"})
	advance(t, e)
	advance(t, e)

	e.ReplaceQueue([]string{"/p/x.mp3", "/p/y.mp3"})
	e.NextStep()
	step := advance(t, e)
	assert.Equal(t, player.Step{Kind: player.StepStart, Track: "/p/x.mp3", Slot: 0}, step)
}

func TestSkipNextAndPrev(t *testing.T) {
	e, out := newEngine(t)
	e.EnqueueAll([]string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"})
	advance(t, e)

	e.SkipNext()
	e.NextStep()
	assert.Equal(t, "/m/b.mp3", advance(t, e).Track)

	e.SkipNext()
	e.NextStep()
	assert.Equal(t, "/m/c.mp3", advance(t, e).Track)

	e.SkipPrev()
	e.NextStep()
	assert.Equal(t, "/m/b.mp3", advance(t, e).Track)

	e.SkipPrev()
	e.NextStep()
	assert.Equal(t, "/m/a.mp3", advance(t, e).Track)

	e.SkipPrev()
	e.NextStep()
	assert.Equal(t, "/m/a.mp3", advance(t, e).Track, "previous saturates at the first slot")

	e.SkipNext()
	e.SkipNext()
	e.NextStep()
	out.Finish()
	assert.Equal(t, "/m/b.mp3", advance(t, e).Track)
}

func TestSeekClamps(t *testing.T) {
	e, out := newEngine(t)
	out.Durations["/m/a.mp3"] = 90 * time.Second
	e.EnqueueBack("/m/a.mp3")

	e.SeekForward(5)
	assert.Empty(t, out.Seeks, "seeking with nothing playing is a no-op")

	advance(t, e)
	out.SetPosition(80 * time.Second)
	e.SeekForward(30)
	e.SeekBack(200)
	out.SetPosition(20 * time.Second)
	e.SeekBack(5)
	assert.Equal(t, []time.Duration{90 * time.Second, 0, 15 * time.Second}, out.Seeks)
}

func TestSeekErrorIsSwallowed(t *testing.T) {
	e, out := newEngine(t)
	e.EnqueueBack("/m/a.mp3")
	advance(t, e)
	out.SeekErr = assert.AnError

	assert.NotPanics(t, func() { e.SeekForward(5) })
}

func TestStatus(t *testing.T) {
	e, out := newEngine(t)
	out.Durations["/m/song.mp3"] = 2 * time.Minute
	e.EnqueueAll([]string{"/m/intro.mp3", "/m/song.mp3"})
	e.RequestRestartAt(1)
	advance(t, e)
	out.SetPosition(30 * time.Second)

	s := e.Status()
	assert.True(t, s.Playing)
	assert.Equal(t, "song.mp3", s.NowPlaying)
	assert.Equal(t, 30*time.Second, s.Position)
	assert.Equal(t, 2*time.Minute, s.Total)
	assert.Equal(t, 1, s.NowPlayingSlot)
	assert.Equal(t, []string{"/m/intro.mp3", "/m/song.mp3"}, s.Queue)

	out.Finish()
	s = e.Status()
	assert.False(t, s.Playing)
	assert.Empty(t, s.NowPlaying)
}

func TestRestore(t *testing.T) {
	e, out := newEngine(t)
	e.Restore([]string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"}, 2, 0.4)

	assert.InDelta(t, 0.4, out.Volume(), 1e-9)
	assert.Equal(t, 2, e.NowPlayingIndex()+1, "restored index points at the saved slot")
	assert.Equal(t, "/m/c.mp3", advance(t, e).Track)
	assert.Equal(t, 2, e.NowPlayingIndex())

	e2, _ := newEngine(t)
	e2.Restore([]string{"/m/a.mp3"}, 9, 7)
	assert.InDelta(t, 1.0, e2.Volume(), 1e-9)
	assert.Equal(t, "/m/a.mp3", advance(t, e2).Track)
}
