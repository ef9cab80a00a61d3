package playback_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/stepwise/playback"
	"github.com/katalvlaran/stepwise/trace"
)

// makeTrace records n array snapshots whose Current field equals the index.
func makeTrace(t *testing.T, name string, n int) *trace.Trace {
	t.Helper()
	rec := trace.NewRecorder(name, n)
	for i := 0; i < n; i++ {
		rec.Emit(trace.KindCompare, trace.ArrayState{Current: i, Popped: trace.None}, "step %d", i)
	}
	tr, err := rec.Finish()
	require.NoError(t, err)

	return tr
}

// leakyScheduler never cancels: stopped timers still fire on Advance, as a
// wall-clock timer can when Stop races with an expiring timer.
type leakyScheduler struct {
	*playback.ManualScheduler
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (s leakyScheduler) AfterFunc(d time.Duration, f func()) playback.Timer {
	s.ManualScheduler.AfterFunc(d, f)
	return leakyTimer{}
}

type event struct {
	state playback.State
	snap  *trace.Snapshot
}

type ControllerSuite struct {
	suite.Suite
	clock  *playback.ManualScheduler
	ctl    *playback.Controller
	mu     sync.Mutex
	events []event
}

func (s *ControllerSuite) SetupTest() {
	s.clock = playback.NewManualScheduler()
	s.events = nil
	s.ctl = playback.New(
		playback.WithScheduler(s.clock),
		playback.WithDelay(100*time.Millisecond),
		playback.WithListener(func(st playback.State, snap *trace.Snapshot) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.events = append(s.events, event{st, snap})
		}),
	)
}

func (s *ControllerSuite) lastEvent() event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().NotEmpty(s.events)
	return s.events[len(s.events)-1]
}

func (s *ControllerSuite) TestIdleRejectsEverything() {
	s.ErrorIs(s.ctl.Play(), playback.ErrNoTrace)
	s.ErrorIs(s.ctl.Step(), playback.ErrNoTrace)
	s.ErrorIs(s.ctl.StepBack(), playback.ErrNoTrace)
	s.ErrorIs(s.ctl.Reset(), playback.ErrNoTrace)
	s.ErrorIs(s.ctl.Seek(1), playback.ErrNoTrace)
	_, err := s.ctl.Snapshot()
	s.ErrorIs(err, playback.ErrNoTrace)
	s.ErrorIs(s.ctl.Load(nil), playback.ErrNoTrace)
	s.Equal(playback.Idle, s.ctl.State().Mode)
}

func (s *ControllerSuite) TestLoadIsReadyAtZero() {
	tr := makeTrace(s.T(), "a", 3)
	s.Require().NoError(s.ctl.Load(tr))

	st := s.ctl.State()
	s.Equal(playback.State{Index: 0, Len: 3, Mode: playback.Ready, Delay: 100 * time.Millisecond}, st)
	s.Same(tr.First(), s.lastEvent().snap)
	s.Same(tr, s.ctl.Trace())
}

func (s *ControllerSuite) TestStepThenStepBackReturnsSameSnapshot() {
	tr := makeTrace(s.T(), "a", 4)
	s.Require().NoError(s.ctl.Load(tr))
	s.Require().NoError(s.ctl.Step())
	s.Require().NoError(s.ctl.Step())

	before, err := s.ctl.Snapshot()
	s.Require().NoError(err)
	s.Require().NoError(s.ctl.Step())
	s.Require().NoError(s.ctl.StepBack())
	after, err := s.ctl.Snapshot()
	s.Require().NoError(err)

	s.Same(before, after)
	s.Equal(2, s.ctl.State().Index)
	s.Equal(playback.Paused, s.ctl.State().Mode)
}

func (s *ControllerSuite) TestStepClampsAndCompletes() {
	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "a", 3)))

	s.Require().NoError(s.ctl.StepBack())
	s.Equal(playback.State{Index: 0, Len: 3, Mode: playback.Ready, Delay: 100 * time.Millisecond}, s.ctl.State())

	s.Require().NoError(s.ctl.Step())
	s.Equal(playback.Paused, s.ctl.State().Mode)
	s.Require().NoError(s.ctl.Step())
	s.Equal(playback.Complete, s.ctl.State().Mode)
	s.Require().NoError(s.ctl.Step())
	s.Equal(2, s.ctl.State().Index)
	s.Equal(playback.Complete, s.ctl.State().Mode)

	s.Require().NoError(s.ctl.StepBack())
	s.Equal(1, s.ctl.State().Index)
	s.Equal(playback.Paused, s.ctl.State().Mode)
}

func (s *ControllerSuite) TestSeek() {
	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "a", 5)))
	s.Require().NoError(s.ctl.Seek(3))
	s.Equal(3, s.ctl.State().Index)
	s.Equal(playback.Paused, s.ctl.State().Mode)

	s.Require().NoError(s.ctl.Seek(99))
	s.Equal(4, s.ctl.State().Index)
	s.Equal(playback.Complete, s.ctl.State().Mode)

	s.Require().NoError(s.ctl.Seek(-5))
	s.Equal(0, s.ctl.State().Index)
	s.Equal(playback.Paused, s.ctl.State().Mode)
}

func (s *ControllerSuite) TestPlayAdvancesUntilComplete() {
	tr := makeTrace(s.T(), "a", 4)
	s.Require().NoError(s.ctl.Load(tr))
	s.Require().NoError(s.ctl.Play())
	s.Equal(playback.Playing, s.ctl.State().Mode)
	s.ErrorIs(s.ctl.Step(), playback.ErrPlaying)
	s.ErrorIs(s.ctl.StepBack(), playback.ErrPlaying)

	s.clock.Advance(99 * time.Millisecond)
	s.Equal(0, s.ctl.State().Index)
	s.clock.Advance(time.Millisecond)
	s.Equal(1, s.ctl.State().Index)
	s.Equal(1, s.lastEvent().snap.State.(trace.ArrayState).Current)

	s.clock.Advance(time.Second)
	s.Equal(playback.State{Index: 3, Len: 4, Mode: playback.Complete, Delay: 100 * time.Millisecond}, s.ctl.State())
	s.Same(tr.Last(), s.lastEvent().snap)
	s.Zero(s.clock.Pending())
}

func (s *ControllerSuite) TestPauseAndResume() {
	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "a", 5)))
	s.Require().NoError(s.ctl.Play())
	s.clock.Advance(100 * time.Millisecond)
	s.Require().NoError(s.ctl.Pause())
	s.Equal(playback.Paused, s.ctl.State().Mode)
	s.Zero(s.clock.Pending())

	s.clock.Advance(time.Second)
	s.Equal(1, s.ctl.State().Index)

	s.Require().NoError(s.ctl.Pause()) // no-op
	s.Require().NoError(s.ctl.Play())
	s.Require().NoError(s.ctl.Play()) // no-op, still one pending tick
	s.Equal(1, s.clock.Pending())
	s.clock.Advance(100 * time.Millisecond)
	s.Equal(2, s.ctl.State().Index)
}

func (s *ControllerSuite) TestPlayFromCompleteRestarts() {
	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "a", 2)))
	s.Require().NoError(s.ctl.Seek(1))
	s.Require().Equal(playback.Complete, s.ctl.State().Mode)

	s.Require().NoError(s.ctl.Play())
	s.Equal(0, s.ctl.State().Index)
	s.Equal(playback.Playing, s.ctl.State().Mode)
	s.clock.Advance(100 * time.Millisecond)
	s.Equal(playback.Complete, s.ctl.State().Mode)
}

func (s *ControllerSuite) TestSingleSnapshotTraceCompletesOnPlay() {
	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "a", 1)))
	s.Require().NoError(s.ctl.Play())
	s.Equal(playback.Complete, s.ctl.State().Mode)
	s.Zero(s.clock.Pending())
}

func (s *ControllerSuite) TestResetFromPlaying() {
	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "a", 5)))
	s.Require().NoError(s.ctl.Play())
	s.clock.Advance(200 * time.Millisecond)
	s.Require().NoError(s.ctl.Reset())
	s.Equal(playback.State{Index: 0, Len: 5, Mode: playback.Ready, Delay: 100 * time.Millisecond}, s.ctl.State())
	s.clock.Advance(time.Second)
	s.Equal(0, s.ctl.State().Index)
}

func (s *ControllerSuite) TestLoadCancelsPendingTick() {
	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "old", 5)))
	s.Require().NoError(s.ctl.Play())

	next := makeTrace(s.T(), "new", 5)
	s.Require().NoError(s.ctl.Load(next))
	s.Zero(s.clock.Pending())
	s.clock.Advance(time.Second)
	s.Equal(playback.State{Index: 0, Len: 5, Mode: playback.Ready, Delay: 100 * time.Millisecond}, s.ctl.State())
	s.Same(next, s.ctl.Trace())
}

func (s *ControllerSuite) TestUnloadAndClose() {
	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "a", 5)))
	s.Require().NoError(s.ctl.Play())
	s.ctl.Unload()
	s.Equal(playback.Idle, s.ctl.State().Mode)
	s.Nil(s.lastEvent().snap)
	s.Zero(s.clock.Pending())

	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "b", 5)))
	s.Require().NoError(s.ctl.Play())
	s.ctl.Close()
	s.Zero(s.clock.Pending())
	s.ErrorIs(s.ctl.Play(), playback.ErrClosed)
	s.ErrorIs(s.ctl.Load(makeTrace(s.T(), "c", 2)), playback.ErrClosed)
	s.ErrorIs(s.ctl.SetDelay(time.Second), playback.ErrClosed)
}

func (s *ControllerSuite) TestSetDelay() {
	s.ErrorIs(s.ctl.SetDelay(time.Millisecond), playback.ErrBadDelay)

	s.Require().NoError(s.ctl.Load(makeTrace(s.T(), "a", 5)))
	s.Require().NoError(s.ctl.SetDelay(time.Second))
	s.Require().NoError(s.ctl.Play())
	s.clock.Advance(999 * time.Millisecond)
	s.Equal(0, s.ctl.State().Index)
	s.clock.Advance(time.Millisecond)
	s.Equal(1, s.ctl.State().Index)
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

// TestStaleTickNeverApplies lets a cancelled timer fire anyway and checks
// that it has no effect on the newly loaded trace.
func TestStaleTickNeverApplies(t *testing.T) {
	clock := leakyScheduler{playback.NewManualScheduler()}
	ctl := playback.New(playback.WithScheduler(clock), playback.WithDelay(50*time.Millisecond))

	require.NoError(t, ctl.Load(makeTrace(t, "old", 5)))
	require.NoError(t, ctl.Play())
	require.NoError(t, ctl.Load(makeTrace(t, "new", 5)))
	require.Equal(t, 1, clock.Pending(), "stale tick still queued")

	clock.Advance(time.Second)
	st := ctl.State()
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, playback.Ready, st.Mode)
	assert.Equal(t, "new", ctl.Trace().Algorithm)

	// Stale ticks from an earlier play session are dropped as well.
	require.NoError(t, ctl.Play())
	require.NoError(t, ctl.Pause())
	require.NoError(t, ctl.Play())
	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, ctl.State().Index)
}

func TestListenerMayReenter(t *testing.T) {
	clock := playback.NewManualScheduler()
	var ctl *playback.Controller
	ctl = playback.New(
		playback.WithScheduler(clock),
		playback.WithListener(func(st playback.State, _ *trace.Snapshot) {
			if st.Mode == playback.Playing && st.Index == 2 {
				require.NoError(t, ctl.Pause())
			}
		}),
	)
	require.NoError(t, ctl.Load(makeTrace(t, "a", 6)))
	require.NoError(t, ctl.Play())
	clock.Advance(time.Minute)

	assert.Equal(t, 2, ctl.State().Index)
	assert.Equal(t, playback.Paused, ctl.State().Mode)
}

func TestWallClockPlayback(t *testing.T) {
	ctl := playback.New(playback.WithDelay(playback.MinDelay))
	defer ctl.Close()

	require.NoError(t, ctl.Load(makeTrace(t, "a", 3)))
	require.NoError(t, ctl.Play())
	require.Eventually(t, func() bool {
		return ctl.State().Mode == playback.Complete
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, ctl.State().Index)
}

func TestSlowListenerKeepsOrder(t *testing.T) {
	var (
		mu       sync.Mutex
		applied  []int
		inFlight int
		peak     int
	)
	ctl := playback.New(
		playback.WithDelay(playback.MinDelay),
		playback.WithListener(func(st playback.State, _ *trace.Snapshot) {
			mu.Lock()
			inFlight++
			peak = max(peak, inFlight)
			applied = append(applied, st.Index)
			mu.Unlock()

			if st.Mode != playback.Ready {
				time.Sleep(3 * playback.MinDelay)
			}

			mu.Lock()
			inFlight--
			mu.Unlock()
		}),
	)
	defer ctl.Close()

	require.NoError(t, ctl.Load(makeTrace(t, "a", 6)))
	require.NoError(t, ctl.Play())
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(applied) == 7 && inFlight == 0
	}, 5*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 0, 1, 2, 3, 4, 5}, applied)
	assert.Equal(t, 1, peak)
	assert.Equal(t, playback.Complete, ctl.State().Mode)
}

func TestNextTickWaitsForListener(t *testing.T) {
	clock := playback.NewManualScheduler()
	var pendingDuringTick []int
	ctl := playback.New(
		playback.WithScheduler(clock),
		playback.WithListener(func(st playback.State, _ *trace.Snapshot) {
			if st.Index > 0 {
				pendingDuringTick = append(pendingDuringTick, clock.Pending())
			}
		}),
	)
	require.NoError(t, ctl.Load(makeTrace(t, "a", 4)))
	require.NoError(t, ctl.Play())
	clock.Advance(time.Minute)

	assert.Equal(t, []int{0, 0, 0}, pendingDuringTick)
	assert.Equal(t, playback.Complete, ctl.State().Mode)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "playing", playback.Playing.String())
	assert.Equal(t, "Mode(9)", playback.Mode(9).String())
}
