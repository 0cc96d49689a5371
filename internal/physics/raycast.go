package physics

import (
	"math"
	"sort"

	"scene-viewer/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Collider is anything a ray can be tested against.
type Collider interface {
	// IntersectRay returns the distance along dir (unit length) from origin to the
	// first surface hit, and whether there was a hit at all.
	IntersectRay(origin, dir mgl32.Vec3) (float32, bool)
}

// AABB is an axis aligned box collider.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// IntersectRay implements Collider with the slab method. A ray starting inside the
// box hits at distance 0.
func (b AABB) IntersectRay(origin, dir mgl32.Vec3) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		if d == 0 {
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[axis] - o) * inv
		t2 := (b.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// RaycastResult stores a single intersection
type RaycastResult struct {
	Object   Collider
	Point    mgl32.Vec3
	Distance float32
}

// Raycaster casts a fixed-direction ray bounded by [Near, Far].
type Raycaster struct {
	Direction mgl32.Vec3
	Near      float32
	Far       float32
}

// NewDownRaycaster returns a caster pointing straight down, limited to far units.
func NewDownRaycaster(far float32) *Raycaster {
	return &Raycaster{
		Direction: mgl32.Vec3{0, -1, 0},
		Near:      0,
		Far:       far,
	}
}

// IntersectObjects returns every hit within range, nearest first.
func (r *Raycaster) IntersectObjects(origin mgl32.Vec3, objects []Collider) []RaycastResult {
	if len(objects) == 0 {
		return nil
	}
	defer profiling.Track("physics.Raycast")()

	dir := r.Direction
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		return nil
	}

	var hits []RaycastResult
	for _, obj := range objects {
		dist, ok := obj.IntersectRay(origin, dir)
		if !ok || dist < r.Near || dist > r.Far {
			continue
		}
		hits = append(hits, RaycastResult{
			Object:   obj,
			Point:    origin.Add(dir.Mul(dist)),
			Distance: dist,
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
