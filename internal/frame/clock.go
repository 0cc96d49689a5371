package frame

import "time"

// DefaultMaxDelta caps a single step so a stalled frame (window drag, debugger,
// hidden tab) does not integrate a huge jump.
const DefaultMaxDelta = 0.1

// Clock measures wall-clock time between ticks using the monotonic reading of
// time.Time.
type Clock struct {
	// MaxDelta clamps the per-tick delta in seconds; 0 disables the clamp.
	MaxDelta float64

	started bool
	last    time.Time
	delta   float64
	elapsed float64
	ticks   uint64
}

func NewClock(maxDelta float64) *Clock {
	return &Clock{MaxDelta: maxDelta}
}

// Advance records a tick at now and returns the delta since the previous one.
// The first tick returns 0.
func (c *Clock) Advance(now time.Time) float64 {
	c.ticks++
	if !c.started {
		c.started = true
		c.last = now
		c.delta = 0
		return 0
	}
	d := now.Sub(c.last).Seconds()
	c.last = now
	if d < 0 {
		d = 0
	}
	if c.MaxDelta > 0 && d > c.MaxDelta {
		d = c.MaxDelta
	}
	c.delta = d
	c.elapsed += d
	return d
}

func (c *Clock) Delta() float64 { return c.delta }

// Elapsed is the sum of all clamped deltas.
func (c *Clock) Elapsed() float64 { return c.elapsed }

func (c *Clock) Ticks() uint64 { return c.ticks }
