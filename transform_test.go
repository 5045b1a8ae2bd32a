package gophys

import (
	"math"
	"testing"
)

func TestTransformLocalWorldRoundTrip(t *testing.T) {
	tr := Transform{Position: Vec3{1, 2, 3}, Quaternion: SetFromAxisAngle(Vec3UnitY, float32(math.Pi/4))}
	p := Vec3{5, -1, 2}

	local := tr.PointToLocal(p)
	back := tr.PointToWorld(local)
	if !back.AlmostEquals(p, 1e-4) {
		t.Errorf("PointToWorld(PointToLocal(p)) = %v, want %v", back, p)
	}
}

func TestTransformVectorRoundTrip(t *testing.T) {
	tr := Transform{Position: Vec3{10, 0, -4}, Quaternion: SetFromAxisAngle(Vec3UnitZ, 1.1)}
	v := Vec3{1, 0, 0}

	local := tr.VectorToLocal(v)
	back := tr.VectorToWorld(local)
	if !back.AlmostEquals(v, 1e-4) {
		t.Errorf("VectorToWorld(VectorToLocal(v)) = %v, want %v", back, v)
	}
}

func TestIdentityTransformIsNoOp(t *testing.T) {
	tr := IdentityTransform()
	p := Vec3{3, 4, 5}
	if got := tr.PointToWorld(p); got != p {
		t.Errorf("identity transform changed a point: %v", got)
	}
	if got := tr.PointToLocal(p); got != p {
		t.Errorf("identity transform changed a point: %v", got)
	}
}
