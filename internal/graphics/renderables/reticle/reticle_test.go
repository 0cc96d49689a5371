package reticle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossVertices(t *testing.T) {
	v := crossVertices(800, 600)
	assert.Equal(t, []float32{392, 300, 408, 300, 400, 292, 400, 308}, v)
}

func TestDisposeBeforeInit(t *testing.T) {
	r := NewReticle(func() bool { return true })
	assert.NotPanics(t, r.Dispose)
}
