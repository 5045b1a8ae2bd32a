package gophys

import (
	"math"
	"testing"
)

func TestVec3AddSubScale(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -1, 2}
	if got := a.Add(b); got != (Vec3{5, 1, 5}) {
		t.Errorf("Add = %v, want {5 1 5}", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 3, 1}) {
		t.Errorf("Sub = %v, want {-3 3 1}", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v, want {2 4 6}", got)
	}
}

func TestVec3DotCross(t *testing.T) {
	x, y, z := Vec3UnitX, Vec3UnitY, Vec3UnitZ
	if got := x.Cross(y); got != z {
		t.Errorf("X cross Y = %v, want Z", got)
	}
	if got := x.Dot(x); got != 1 {
		t.Errorf("X dot X = %v, want 1", got)
	}
	if got := x.Dot(y); got != 0 {
		t.Errorf("X dot Y = %v, want 0", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	l := v.Normalize()
	if l != 5 {
		t.Errorf("Normalize returned length %v, want 5", l)
	}
	if !v.AlmostEquals(Vec3{0.6, 0, 0.8}, 1e-6) {
		t.Errorf("Normalize result = %v", v)
	}

	zero := Vec3Zero
	if l := zero.Normalize(); l != 0 {
		t.Errorf("Normalize of zero vector returned %v, want 0", l)
	}
	if zero != Vec3Zero {
		t.Errorf("Normalize mutated the zero vector: %v", zero)
	}
}

func TestVec3CrossMatrixMatchesCross(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-2, 0.5, 4}
	m := a.CrossMatrix()
	if got, want := m.Vmult(b), a.Cross(b); !got.AlmostEquals(want, 1e-5) {
		t.Errorf("CrossMatrix.Vmult(b) = %v, want a.Cross(b) = %v", got, want)
	}
}

func TestVec3TangentsOrthogonal(t *testing.T) {
	cases := []Vec3{{0, 0, 1}, {1, 0, 0}, {1, 1, 1}, Vec3Zero}
	for _, n := range cases {
		t1, t2 := n.Tangents()
		if n != Vec3Zero {
			if math.Abs(float64(t1.Dot(n))) > 1e-4 {
				t.Errorf("Tangents(%v): t1 not orthogonal to n (dot=%v)", n, t1.Dot(n))
			}
			if math.Abs(float64(t2.Dot(n))) > 1e-4 {
				t.Errorf("Tangents(%v): t2 not orthogonal to n (dot=%v)", n, t2.Dot(n))
			}
		}
		if math.Abs(float64(t1.Dot(t2))) > 1e-4 {
			t.Errorf("Tangents(%v): t1 not orthogonal to t2 (dot=%v)", n, t1.Dot(t2))
		}
	}
}

func TestVec3IsAntiparallel(t *testing.T) {
	if !Vec3UnitX.IsAntiparallel(Vec3UnitX.Negate(), 1e-6) {
		t.Error("X and -X should be antiparallel")
	}
	if Vec3UnitX.IsAntiparallel(Vec3UnitY, 1e-6) {
		t.Error("X and Y should not be antiparallel")
	}
}

func TestVec3ComponentMul(t *testing.T) {
	a := Vec3{2, 3, 4}
	b := Vec3{1, 0, -1}
	if got := a.ComponentMul(b); got != (Vec3{2, 0, -4}) {
		t.Errorf("ComponentMul = %v, want {2 0 -4}", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 10, 10}
	if got := a.Lerp(b, 0.5); got != (Vec3{5, 5, 5}) {
		t.Errorf("Lerp(0.5) = %v, want {5 5 5}", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
}
