package gophys

import "testing"

func TestNewRayComputesDirectionAndLength(t *testing.T) {
	r := NewRay(Vec3{0, 0, 0}, Vec3{0, 0, 5})
	if r.Length != 5 {
		t.Errorf("Length = %v, want 5", r.Length)
	}
	if r.Direction != (Vec3{0, 0, 1}) {
		t.Errorf("Direction = %v, want {0,0,1}", r.Direction)
	}
}

func TestNewRayZeroLengthHasZeroDirection(t *testing.T) {
	r := NewRay(Vec3{1, 1, 1}, Vec3{1, 1, 1})
	if r.Length != 0 {
		t.Errorf("Length = %v, want 0", r.Length)
	}
	if r.Direction != Vec3Zero {
		t.Errorf("Direction = %v, want zero vector (degenerate ray)", r.Direction)
	}
}

func TestDefaultRaycastOptionsPassesEverything(t *testing.T) {
	opts := DefaultRaycastOptions()
	if opts.CollisionFilterMask != -1 || opts.CollisionFilterGroup != -1 {
		t.Error("DefaultRaycastOptions should default its filter mask/group to -1 (match everything)")
	}
	if !opts.CheckCollisionResponse {
		t.Error("DefaultRaycastOptions should check CollisionResponse by default")
	}
	if opts.Mode != RayModeClosest {
		t.Errorf("Mode = %v, want RayModeClosest", opts.Mode)
	}
}

func TestRayIsBackfaceRejectsAlignedNormal(t *testing.T) {
	r := NewRay(Vec3{0, 0, 0}, Vec3{0, 0, 1})
	if !r.isBackface(Vec3{0, 0, 1}) {
		t.Error("a normal aligned with the ray direction should count as a backface")
	}
	if r.isBackface(Vec3{0, 0, -1}) {
		t.Error("a normal opposing the ray direction should not count as a backface")
	}
}
