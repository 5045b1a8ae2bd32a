package gophys

import "testing"

func TestJacobianElementDot(t *testing.T) {
	a := JacobianElement{Spatial: Vec3{1, 2, 3}, Rotational: Vec3{4, 5, 6}}
	b := JacobianElement{Spatial: Vec3{1, 0, 0}, Rotational: Vec3{0, 1, 0}}

	got := a.Dot(b)
	want := float32(1*1) + float32(5*1)
	if got != want {
		t.Errorf("Dot = %v, want %v", got, want)
	}
}

func TestJacobianElementDotZeroForOrthogonal(t *testing.T) {
	a := JacobianElement{Spatial: Vec3{1, 0, 0}, Rotational: Vec3Zero}
	b := JacobianElement{Spatial: Vec3{0, 1, 0}, Rotational: Vec3Zero}
	if a.Dot(b) != 0 {
		t.Errorf("Dot of orthogonal spatial vectors = %v, want 0", a.Dot(b))
	}
}
