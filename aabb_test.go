package gophys

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABBOverlaps(t *testing.T) {
	a := AABB{LowerBound: Vec3{0, 0, 0}, UpperBound: Vec3{1, 1, 1}}
	b := AABB{LowerBound: Vec3{0.5, 0.5, 0.5}, UpperBound: Vec3{2, 2, 2}}
	c := AABB{LowerBound: Vec3{2, 2, 2}, UpperBound: Vec3{3, 3, 3}}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestAABBTouchingCountsAsOverlap(t *testing.T) {
	a := AABB{LowerBound: Vec3{0, 0, 0}, UpperBound: Vec3{1, 1, 1}}
	b := AABB{LowerBound: Vec3{1, 0, 0}, UpperBound: Vec3{2, 1, 1}}
	assert.True(t, a.Overlaps(b))
}

func TestAABBExtend(t *testing.T) {
	a := AABB{LowerBound: Vec3{0, 0, 0}, UpperBound: Vec3{1, 1, 1}}
	b := AABB{LowerBound: Vec3{-1, 2, 0.5}, UpperBound: Vec3{0.5, 3, 4}}
	a.Extend(b)
	assert.Equal(t, Vec3{-1, 0, 0}, a.LowerBound)
	assert.Equal(t, Vec3{1, 3, 4}, a.UpperBound)
}

func TestAABBSetFromPoints(t *testing.T) {
	var a AABB
	points := []Vec3{{-1, -1, -1}, {1, 1, 1}, {0, 2, -0.5}}
	a.SetFromPoints(points, Vec3{10, 0, 0}, IdentityQuaternion(), 0)
	assert.Equal(t, Vec3{9, -1, -1}, a.LowerBound)
	assert.Equal(t, Vec3{11, 2, 1}, a.UpperBound)
}

func TestAABBSetFromPointsWithSkin(t *testing.T) {
	var a AABB
	points := []Vec3{{0, 0, 0}}
	a.SetFromPoints(points, Vec3Zero, IdentityQuaternion(), 0.1)
	assert.InDelta(t, -0.1, a.LowerBound.X, 1e-6)
	assert.InDelta(t, 0.1, a.UpperBound.X, 1e-6)
}

func TestAABBContains(t *testing.T) {
	outer := AABB{LowerBound: Vec3{-10, -10, -10}, UpperBound: Vec3{10, 10, 10}}
	inner := AABB{LowerBound: Vec3{-1, -1, -1}, UpperBound: Vec3{1, 1, 1}}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestAABBOverlapsRayHitsSlab(t *testing.T) {
	box := AABB{LowerBound: Vec3{-1, -1, -1}, UpperBound: Vec3{1, 1, 1}}
	ray := NewRay(Vec3{-5, 0, 0}, Vec3{5, 0, 0})
	assert.True(t, box.OverlapsRay(ray))
}

func TestAABBOverlapsRayMisses(t *testing.T) {
	box := AABB{LowerBound: Vec3{-1, -1, -1}, UpperBound: Vec3{1, 1, 1}}
	ray := NewRay(Vec3{-5, 5, 0}, Vec3{5, 5, 0})
	assert.False(t, box.OverlapsRay(ray))
}

func TestAABBOverlapsRayBehindOrigin(t *testing.T) {
	box := AABB{LowerBound: Vec3{-1, -1, -1}, UpperBound: Vec3{1, 1, 1}}
	ray := NewRay(Vec3{5, 0, 0}, Vec3{10, 0, 0})
	assert.False(t, box.OverlapsRay(ray))
}

func TestAABBVolume(t *testing.T) {
	box := AABB{LowerBound: Vec3{0, 0, 0}, UpperBound: Vec3{2, 3, 4}}
	assert.InDelta(t, float64(24), float64(box.Volume()), 1e-6)
}

func TestAABBGetCornersCount(t *testing.T) {
	box := AABB{LowerBound: Vec3{0, 0, 0}, UpperBound: Vec3{1, 1, 1}}
	corners := box.GetCorners()
	assert.Len(t, corners, 8)
	var maxDist float32
	for _, c := range corners {
		if d := c.Length(); d > maxDist {
			maxDist = d
		}
	}
	assert.InDelta(t, math.Sqrt(3), float64(maxDist), 1e-4)
}
