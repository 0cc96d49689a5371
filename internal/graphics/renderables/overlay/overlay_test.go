package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFPSCounter(t *testing.T) {
	var c fpsCounter
	for i := 1; i <= 60; i++ {
		c.add(float64(i) / 60)
	}
	assert.Equal(t, 60, c.current)
	assert.Equal(t, 0, c.frames)

	// half a window later nothing is reported yet
	for i := 1; i <= 15; i++ {
		c.add(1 + float64(i)/30)
	}
	assert.Equal(t, 60, c.current)
	for i := 16; i <= 30; i++ {
		c.add(1 + float64(i)/30)
	}
	assert.Equal(t, 30, c.current)
}

func TestRectVertices(t *testing.T) {
	v := rectVertices(10, 20, 30, 40)
	assert.Len(t, v, 12)
	assert.Equal(t, []float32{10, 20}, v[0:2])
	assert.Equal(t, []float32{40, 60}, v[4:6])
	assert.Equal(t, []float32{10, 60}, v[10:12])
}
