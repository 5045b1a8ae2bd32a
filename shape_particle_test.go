package gophys

import "testing"

func TestParticleHasNoVolumeOrInertia(t *testing.T) {
	p := NewParticle()
	if p.Volume() != 0 {
		t.Errorf("Volume() = %v, want 0", p.Volume())
	}
	if p.BoundingSphereRadius() != 0 {
		t.Errorf("BoundingSphereRadius() = %v, want 0", p.BoundingSphereRadius())
	}
	if p.CalculateLocalInertia(5) != Vec3Zero {
		t.Error("a particle should have zero local inertia at any mass")
	}
}

func TestParticleWorldAABBIsAPoint(t *testing.T) {
	p := NewParticle()
	aabb := p.CalculateWorldAABB(Vec3{3, 4, 5}, Quaternion{})
	if aabb.LowerBound != aabb.UpperBound || aabb.LowerBound != (Vec3{3, 4, 5}) {
		t.Errorf("AABB = %v, want a degenerate box at (3,4,5)", aabb)
	}
}
