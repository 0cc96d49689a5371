package game

import (
	"time"

	"scene-viewer/internal/config"
)

// idleFPS caps the frame rate while the pointer is free and nobody is navigating.
const idleFPS = 60

// spinWindow is how long before the deadline sleeping stops and spinning starts.
const spinWindow = 200 * time.Microsecond

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	next time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// effectiveLimit is the cap in frames per second, 0 meaning unlimited.
func effectiveLimit(limit int, idle bool) int {
	if idle && (limit <= 0 || limit > idleFPS) {
		return idleFPS
	}
	return max(limit, 0)
}

// nextDeadline schedules the frame after prev. A zero prev, or one already more
// than a frame behind now, restarts the schedule from now to avoid a burst of
// catch-up frames.
func nextDeadline(prev, now time.Time, target time.Duration) time.Time {
	if prev.IsZero() || now.Sub(prev) > target {
		return now.Add(target)
	}
	return prev.Add(target)
}

// Wait blocks until the next frame is due under the configured limit.
// Uses a hybrid sleep/spin approach for better precision on high FPS caps.
func (f *FPSLimiter) Wait(idle bool) {
	limit := effectiveLimit(config.GetFPSLimit(), idle)
	if limit == 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	f.next = nextDeadline(f.next, time.Now(), target)

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
		// busy-wait for the final few microseconds
		if time.Until(f.next) <= 0 {
			break
		}
	}
}
