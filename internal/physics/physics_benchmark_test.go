package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// makeBoxGrid lays out n*n unit boxes on the ground plane, one metre apart.
func makeBoxGrid(n int) []Collider {
	boxes := make([]Collider, 0, n*n)
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			lo := mgl32.Vec3{float32(x * 2), 0, float32(z * 2)}
			boxes = append(boxes, AABB{Min: lo, Max: lo.Add(mgl32.Vec3{1, 1, 1})})
		}
	}
	return boxes
}

func BenchmarkIntersectRay(b *testing.B) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	origin := mgl32.Vec3{0, 5, 0}
	dir := mgl32.Vec3{0.1, -1, 0.05}.Normalize()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = box.IntersectRay(origin, dir)
	}
}

func BenchmarkIntersectObjects(b *testing.B) {
	boxes := makeBoxGrid(16)
	r := NewDownRaycaster(10)
	origin := mgl32.Vec3{8.5, 4, 8.5}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.IntersectObjects(origin, boxes)
	}
}
