package gophys

import "testing"

func TestNewEquationDefaults(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1})
	b := NewBody(BodyConfig{Type: BodyStatic})
	eq := NewEquation(a, b, -5, 5)

	if !eq.Enabled {
		t.Error("a freshly built Equation should be Enabled")
	}
	if eq.Stiffness != 1e7 || eq.Relaxation != 3 {
		t.Errorf("Stiffness/Relaxation = %v/%v, want default 1e7/3", eq.Stiffness, eq.Relaxation)
	}
	if eq.MinForce != -5 || eq.MaxForce != 5 {
		t.Errorf("MinForce/MaxForce = %v/%v, want -5/5", eq.MinForce, eq.MaxForce)
	}
}

func TestRefreshSpookParamsMatchesFormula(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1})
	b := NewBody(BodyConfig{Type: BodyStatic})
	eq := NewEquation(a, b, 0, 1e6)
	eq.Stiffness, eq.Relaxation = 1e7, 3

	h := float32(1.0 / 60)
	eq.RefreshSpookParams(h)

	d := eq.Relaxation
	wantA := 4.0 / (h * (1 + 4*d))
	wantB := (4.0 * d) / (1 + 4*d)
	wantEps := 4.0 / (h * h * eq.Stiffness * (1 + 4*d))

	if eq.SpookA != wantA || eq.SpookB != wantB || eq.SpookEps != wantEps {
		t.Errorf("Spook params = (%v, %v, %v), want (%v, %v, %v)",
			eq.SpookA, eq.SpookB, eq.SpookEps, wantA, wantB, wantEps)
	}
}

func TestComputeGiMGtIgnoresStaticBodies(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 2})
	a.InvInertiaWorld = Mat3{}
	b := NewBody(BodyConfig{Type: BodyStatic})
	eq := NewEquation(a, b, 0, 1e6)
	eq.JacobianElementA = JacobianElement{Spatial: Vec3{1, 0, 0}}
	eq.JacobianElementB = JacobianElement{Spatial: Vec3{1, 0, 0}}

	got := eq.ComputeGiMGt()
	want := a.InvMass // 1/2, since b is static and contributes nothing
	if got != want {
		t.Errorf("ComputeGiMGt = %v, want %v (only body A's inverse mass)", got, want)
	}
}

func TestAddToWlambdaSkipsStaticBodies(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1})
	b := NewBody(BodyConfig{Type: BodyStatic})
	eq := NewEquation(a, b, 0, 1e6)
	eq.JacobianElementA = JacobianElement{Spatial: Vec3{1, 0, 0}}
	eq.JacobianElementB = JacobianElement{Spatial: Vec3{1, 0, 0}}

	eq.AddToWlambda(2)
	if a.vlambda == Vec3Zero {
		t.Error("dynamic body A should have received a vlambda contribution")
	}
	if b.vlambda != Vec3Zero {
		t.Error("static body B must never accumulate vlambda")
	}
}
