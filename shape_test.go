package gophys

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSphereRejectsNegativeRadius(t *testing.T) {
	_, err := NewSphere(-1)
	require.Error(t, err)
}

func TestSphereVolumeAndInertia(t *testing.T) {
	s, err := NewSphere(2)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0*math.Pi*8, float64(s.Volume()), 1e-3)
	inertia := s.CalculateLocalInertia(5)
	want := float32(2.0 / 5.0 * 5 * 2 * 2)
	assert.InDelta(t, want, inertia.X, 1e-4)
	assert.Equal(t, inertia.X, inertia.Y)
	assert.Equal(t, inertia.Y, inertia.Z)
}

func TestNewBoxRejectsNegativeExtents(t *testing.T) {
	_, err := NewBox(Vec3{-1, 1, 1})
	require.Error(t, err)
}

func TestBoxForEachWorldCorner(t *testing.T) {
	box, err := NewBox(Vec3{1, 1, 1})
	require.NoError(t, err)

	var corners []Vec3
	box.ForEachWorldCorner(Vec3Zero, IdentityQuaternion(), func(v Vec3) {
		corners = append(corners, v)
	})
	assert.Len(t, corners, 8)
	for _, c := range corners {
		assert.InDelta(t, 1, math.Abs(float64(c.X)), 1e-6)
		assert.InDelta(t, 1, math.Abs(float64(c.Y)), 1e-6)
		assert.InDelta(t, 1, math.Abs(float64(c.Z)), 1e-6)
	}
}

func TestBoxAABBAtOrigin(t *testing.T) {
	box, err := NewBox(Vec3{1, 2, 3})
	require.NoError(t, err)
	aabb := box.CalculateWorldAABB(Vec3Zero, IdentityQuaternion())
	assert.Equal(t, Vec3{-1, -2, -3}, aabb.LowerBound)
	assert.Equal(t, Vec3{1, 2, 3}, aabb.UpperBound)
}

func TestBoxAABBRotated90AroundZ(t *testing.T) {
	box, err := NewBox(Vec3{1, 2, 0.5})
	require.NoError(t, err)
	q := SetFromAxisAngle(Vec3UnitZ, float32(math.Pi/2))
	aabb := box.CalculateWorldAABB(Vec3Zero, q)
	// Rotating 90deg around Z swaps the effective X/Y half extents.
	assert.InDelta(t, 2, aabb.UpperBound.X, 1e-4)
	assert.InDelta(t, 1, aabb.UpperBound.Y, 1e-4)
}

func TestConvexPolyhedronRejectsBadFaceIndex(t *testing.T) {
	vertices := []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	_, err := NewConvexPolyhedron(vertices, [][]int{{0, 1, 5}})
	require.Error(t, err)
}

func TestConvexPolyhedronAABBMatchesBox(t *testing.T) {
	boxRepr := NewBoxConvexPolyhedron(Vec3{2, 3, 4})
	aabb := boxRepr.CalculateWorldAABB(Vec3{1, 1, 1}, IdentityQuaternion())
	assert.Equal(t, Vec3{-1, -2, -3}, aabb.LowerBound)
	assert.Equal(t, Vec3{3, 4, 5}, aabb.UpperBound)
}

func TestConvexPolyhedronVolumeUsesBoundingSphereRadius(t *testing.T) {
	// Preserves the inherited quirk: Volume = 4*pi*r/3, not 4*pi*r^3/3.
	boxRepr := NewBoxConvexPolyhedron(Vec3{1, 1, 1})
	want := float32(4.0 / 3.0 * math.Pi * float64(boxRepr.BoundingSphereRadius()))
	assert.InDelta(t, want, boxRepr.Volume(), 1e-4)
}

func TestPlaneBoundingSphereRadiusIsSentinel(t *testing.T) {
	p := NewPlane()
	assert.Equal(t, float32(math.MaxFloat32), p.BoundingSphereRadius())
}

func TestPlaneWorldNormalFollowsOrientation(t *testing.T) {
	p := NewPlane()
	assert.Equal(t, Vec3UnitZ, p.WorldNormal(IdentityQuaternion()))
	q := SetFromAxisAngle(Vec3UnitX, float32(math.Pi/2))
	n := p.WorldNormal(q)
	assert.InDelta(t, 0, n.X, 1e-4)
	assert.True(t, n.Y < -0.99 || n.Y > 0.99)
}
