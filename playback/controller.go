// SPDX-License-Identifier: MIT

package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/katalvlaran/stepwise/trace"
)

// Delay bounds.
const (
	DefaultDelay = 600 * time.Millisecond
	MinDelay     = 10 * time.Millisecond
)

// Sentinel errors.
var (
	ErrNoTrace  = errors.New("playback: no trace loaded")
	ErrPlaying  = errors.New("playback: not allowed while playing")
	ErrBadDelay = errors.New("playback: delay below minimum")
	ErrClosed   = errors.New("playback: controller closed")
)

// Mode is the controller state.
type Mode int

// Controller modes.
const (
	Idle Mode = iota
	Ready
	Playing
	Paused
	Complete
)

var modeNames = [...]string{"idle", "ready", "playing", "paused", "complete"}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}

	return modeNames[m]
}

// State is a point-in-time copy of the controller's playback state.
type State struct {
	Index int
	Len   int // snapshots in the loaded trace; 0 when Idle
	Mode  Mode
	Delay time.Duration
}

// Listener receives every committed state change together with the
// snapshot at the new index (nil when Idle). Calls are delivered one at a
// time in commit order. A listener may call back into the Controller; the
// resulting notification is delivered after the listener returns.
type Listener func(State, *trace.Snapshot)

// notice is one committed state change waiting for the listener.
type notice struct {
	state State
	snap  *trace.Snapshot
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the wall clock.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithDelay sets the initial tick delay. Values below MinDelay are raised
// to MinDelay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = max(d, MinDelay) }
}

// WithListener registers the state-change callback.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

// Controller owns one trace and its playback state. Safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	sched    Scheduler
	listener Listener

	tr     *trace.Trace
	index  int
	mode   Mode
	delay  time.Duration
	epoch  uint64
	timer  Timer
	closed bool

	notices   []notice
	notifying bool
}

// New returns an Idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{sched: WallClock{}, delay: DefaultDelay}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load replaces any current trace with tr at index 0 in Ready. Pending
// ticks of the previous trace are cancelled.
func (c *Controller) Load(tr *trace.Trace) error {
	if tr == nil || tr.Len() == 0 {
		return ErrNoTrace
	}

	return c.update(func() error {
		c.cancelLocked()
		c.tr = tr
		c.index = 0
		c.mode = Ready
		return nil
	})
}

// Unload discards the trace and returns to Idle. Used when the structure
// the trace was generated from changes.
func (c *Controller) Unload() {
	_ = c.update(func() error {
		c.cancelLocked()
		c.tr = nil
		c.index = 0
		c.mode = Idle
		return nil
	})
}

// Close cancels playback permanently. Every later call fails with ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.tr = nil
	c.index = 0
	c.mode = Idle
	c.closed = true
}

// Play starts timed advance. From Complete it restarts at index 0. Playing
// an already playing controller is a no-op.
func (c *Controller) Play() error {
	return c.update(func() error {
		if err := c.loadedLocked(); err != nil {
			return err
		}
		switch c.mode {
		case Playing:
			return nil
		case Complete:
			c.index = 0
		}
		if c.index == c.last() {
			c.mode = Complete
			return nil
		}
		c.mode = Playing
		c.scheduleLocked()
		return nil
	})
}

// Pause stops timed advance. It is a no-op unless Playing.
func (c *Controller) Pause() error {
	return c.update(func() error {
		if err := c.loadedLocked(); err != nil {
			return err
		}
		if c.mode != Playing {
			return nil
		}
		c.cancelLocked()
		c.mode = Paused
		return nil
	})
}

// Step moves forward one snapshot, clamped at the last one. Reaching the
// last snapshot completes playback.
func (c *Controller) Step() error {
	return c.update(func() error {
		if err := c.manualLocked(); err != nil {
			return err
		}
		c.moveLocked(c.index + 1)
		return nil
	})
}

// StepBack moves back one snapshot, clamped at 0.
func (c *Controller) StepBack() error {
	return c.update(func() error {
		if err := c.manualLocked(); err != nil {
			return err
		}
		if c.index == 0 && c.mode == Ready {
			return nil
		}
		c.moveLocked(c.index - 1)
		return nil
	})
}

// Seek jumps to index i, clamped to the trace bounds.
func (c *Controller) Seek(i int) error {
	return c.update(func() error {
		if err := c.manualLocked(); err != nil {
			return err
		}
		c.moveLocked(i)
		return nil
	})
}

// Reset returns to Ready at index 0 from any loaded state.
func (c *Controller) Reset() error {
	return c.update(func() error {
		if err := c.loadedLocked(); err != nil {
			return err
		}
		c.cancelLocked()
		c.index = 0
		c.mode = Ready
		return nil
	})
}

// SetDelay changes the delay used for subsequently scheduled ticks.
func (c *Controller) SetDelay(d time.Duration) error {
	if d < MinDelay {
		return fmt.Errorf("%w: %v < %v", ErrBadDelay, d, MinDelay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.delay = d

	return nil
}

// State returns a copy of the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stateLocked()
}

// Snapshot returns the snapshot at the current index.
func (c *Controller) Snapshot() (*trace.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadedLocked(); err != nil {
		return nil, err
	}

	return c.tr.At(c.index)
}

// Trace returns the loaded trace, nil when Idle.
func (c *Controller) Trace() *trace.Trace {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tr
}

// update runs fn under the lock and, on success, notifies the listener
// after unlocking.
func (c *Controller) update(fn func() error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err := fn(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.queueLocked()
	c.mu.Unlock()
	c.drain()

	return nil
}

// tick is the scheduled callback. Stale epochs are ignored. The next tick
// is scheduled only once the snapshot has been applied, so a listener slower
// than the delay stretches playback instead of overlapping it.
func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	if c.closed || epoch != c.epoch || c.mode != Playing || c.tr == nil {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.index++
	if c.index >= c.last() {
		c.index = c.last()
		c.mode = Complete
	}
	c.queueLocked()
	c.mu.Unlock()
	c.drain()
}

// queueLocked records the current state for the listener.
func (c *Controller) queueLocked() {
	if c.listener == nil {
		return
	}
	c.notices = append(c.notices, notice{state: c.stateLocked(), snap: c.currentLocked()})
}

// drain delivers queued notices in order. Only one goroutine delivers at a
// time; any other caller leaves its notice to the active one and returns.
// A tick consumed the pending timer, so once the queue is empty the
// delivering goroutine schedules the next tick if playback continues.
func (c *Controller) drain() {
	c.mu.Lock()
	if c.notifying {
		c.mu.Unlock()
		return
	}
	c.notifying = true
	for len(c.notices) > 0 {
		n := c.notices[0]
		c.notices = c.notices[1:]
		c.mu.Unlock()
		c.listener(n.state, n.snap)
		c.mu.Lock()
	}
	c.notifying = false
	if !c.closed && c.mode == Playing && c.timer == nil {
		c.scheduleLocked()
	}
	c.mu.Unlock()
}

func (c *Controller) scheduleLocked() {
	epoch := c.epoch
	c.timer = c.sched.AfterFunc(c.delay, func() { c.tick(epoch) })
}

// cancelLocked invalidates any scheduled tick.
func (c *Controller) cancelLocked() {
	c.epoch++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// moveLocked sets the index (clamped) after a manual move and derives the
// mode: Complete on arriving at the last snapshot going forward, Paused
// otherwise.
func (c *Controller) moveLocked(i int) {
	forward := i > c.index
	c.index = min(max(i, 0), c.last())
	if c.index == c.last() && (forward || c.mode == Complete) {
		c.mode = Complete
		return
	}
	c.mode = Paused
}

func (c *Controller) loadedLocked() error {
	if c.tr == nil {
		return ErrNoTrace
	}

	return nil
}

func (c *Controller) manualLocked() error {
	if err := c.loadedLocked(); err != nil {
		return err
	}
	if c.mode == Playing {
		return ErrPlaying
	}

	return nil
}

func (c *Controller) last() int { return c.tr.Len() - 1 }

func (c *Controller) stateLocked() State {
	st := State{Index: c.index, Mode: c.mode, Delay: c.delay}
	if c.tr != nil {
		st.Len = c.tr.Len()
	}

	return st
}

func (c *Controller) currentLocked() *trace.Snapshot {
	if c.tr == nil {
		return nil
	}
	s, _ := c.tr.At(c.index)

	return s
}
