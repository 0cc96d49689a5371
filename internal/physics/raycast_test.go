package physics_test

import (
	"testing"

	"scene-viewer/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaycast(t *testing.T) {
	floor := physics.AABB{Min: mgl32.Vec3{-5, -1, -5}, Max: mgl32.Vec3{5, 0, 5}}
	r := physics.NewDownRaycaster(10)

	// Test 1: Raycast hitting the top face
	hits := r.IntersectObjects(mgl32.Vec3{0, 4, 0}, []physics.Collider{floor})
	require.Len(t, hits, 1)
	assert.InDelta(t, 4.0, hits[0].Distance, 1e-5)
	assert.InDelta(t, 0.0, hits[0].Point.Y(), 1e-5)

	// Test 2: Raycast missing (beyond far)
	hits = r.IntersectObjects(mgl32.Vec3{0, 12, 0}, []physics.Collider{floor})
	assert.Empty(t, hits)

	// Test 3: Raycast missing (outside footprint)
	hits = r.IntersectObjects(mgl32.Vec3{8, 4, 0}, []physics.Collider{floor})
	assert.Empty(t, hits)

	// Test 4: origin inside the box hits immediately
	hits = r.IntersectObjects(mgl32.Vec3{0, -0.5, 0}, []physics.Collider{floor})
	require.Len(t, hits, 1)
	assert.Zero(t, hits[0].Distance)
}

func TestRaycastOrdersByDistance(t *testing.T) {
	low := physics.AABB{Min: mgl32.Vec3{-1, 0, -1}, Max: mgl32.Vec3{1, 1, 1}}
	high := physics.AABB{Min: mgl32.Vec3{-1, 3, -1}, Max: mgl32.Vec3{1, 4, 1}}
	r := physics.NewDownRaycaster(10)

	hits := r.IntersectObjects(mgl32.Vec3{0, 6, 0}, []physics.Collider{low, high})
	require.Len(t, hits, 2)
	assert.Equal(t, physics.Collider(high), hits[0].Object)
	assert.Equal(t, physics.Collider(low), hits[1].Object)
}

func TestRaycastEmptyObjectSet(t *testing.T) {
	r := physics.NewDownRaycaster(10)
	assert.Empty(t, r.IntersectObjects(mgl32.Vec3{0, 0, 0}, nil))
}

func TestRaycastDegenerateDirection(t *testing.T) {
	box := physics.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	r := &physics.Raycaster{Far: 10}
	assert.Empty(t, r.IntersectObjects(mgl32.Vec3{}, []physics.Collider{box}))
}

func TestAABBParallelRay(t *testing.T) {
	box := physics.AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}

	_, ok := box.IntersectRay(mgl32.Vec3{2, 0.5, 0.5}, mgl32.Vec3{0, -1, 0})
	assert.False(t, ok)

	d, ok := box.IntersectRay(mgl32.Vec3{0.5, 0.5, -2}, mgl32.Vec3{0, 0, 1})
	assert.True(t, ok)
	assert.InDelta(t, 2.0, d, 1e-5)

	_, ok = box.IntersectRay(mgl32.Vec3{0.5, 0.5, 3}, mgl32.Vec3{0, 0, 1})
	assert.False(t, ok, "box behind the ray")
}
