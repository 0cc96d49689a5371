package profiling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTopN(t *testing.T) {
	ResetFrame()
	record("frame.Submit", 4*time.Millisecond)
	record("frame.Animation", 300*time.Microsecond)
	record("physics.Raycast", time.Millisecond)

	assert.Equal(t, "frame.Submit:4.0ms, physics.Raycast:1.0ms", TopN(2))
	assert.Len(t, strings.Split(TopN(10), ", "), 3)

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(3))
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("x")
	stop()
	stop = Track("x")
	stop()

	snap := Snapshot()
	assert.Contains(t, snap, "x")
	assert.GreaterOrEqual(t, snap["x"], time.Duration(0))
}
