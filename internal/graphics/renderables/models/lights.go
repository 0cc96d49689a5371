package models

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"scene-viewer/internal/scene"
)

// indexed builds a uniform array element name such as "pointColor[2]".
func indexed(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// spotDirection points from the light towards its target; a light sitting on its
// target shines straight down.
func spotDirection(s scene.SpotLight) mgl32.Vec3 {
	d := s.Target.Sub(s.Position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

// spotCone returns the cosines bounding the penumbra: full intensity inside
// inner, none outside outer.
func spotCone(s scene.SpotLight) (inner, outer float32) {
	penumbra := mgl32.Clamp(s.Penumbra, 0, 1)
	outer = float32(math.Cos(float64(s.Angle)))
	inner = float32(math.Cos(float64(s.Angle * (1 - penumbra))))
	return inner, outer
}
