package models

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"scene-viewer/internal/scene"
)

func TestIndexed(t *testing.T) {
	assert.Equal(t, "pointColor[0]", indexed("pointColor", 0))
	assert.Equal(t, "spotDecay[3]", indexed("spotDecay", 3))
}

func TestSpotDirection(t *testing.T) {
	s := scene.SpotLight{Position: mgl32.Vec3{0, 10, 0}, Target: mgl32.Vec3{0, 10, -5}}
	assert.True(t, spotDirection(s).ApproxEqual(mgl32.Vec3{0, 0, -1}))

	s.Target = s.Position
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, spotDirection(s))
}

func TestSpotCone(t *testing.T) {
	tests := []struct {
		name     string
		angle    float32
		penumbra float32
		inner    float32
		outer    float32
	}{
		{"hard edge", math.Pi / 3, 0, 0.5, 0.5},
		{"half penumbra", math.Pi / 3, 0.5, float32(math.Cos(math.Pi / 6)), 0.5},
		{"full penumbra", math.Pi / 3, 1, 1, 0.5},
		{"penumbra clamped", math.Pi / 3, 2, 1, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, outer := spotCone(scene.SpotLight{Angle: tt.angle, Penumbra: tt.penumbra})
			assert.InDelta(t, tt.inner, inner, 1e-5)
			assert.InDelta(t, tt.outer, outer, 1e-5)
			assert.GreaterOrEqual(t, inner, outer)
		})
	}
}
