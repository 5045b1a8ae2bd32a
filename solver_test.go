package gophys

import "testing"

func TestGSSolverContactStopsApproachingBodies(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 0}})
	a.Velocity = Vec3{0, 0, -1}
	b := NewBody(BodyConfig{Type: BodyStatic, Position: Vec3{0, 0, -1}})

	c := NewContactEquation(a, b)
	c.Ni = Vec3{0, 0, 1} // points from a toward b's side, away from penetration
	c.Ri, c.Rj = Vec3Zero, Vec3Zero

	solver := NewGSSolver()
	solver.Solve(1.0/60, []*ContactEquation{c}, nil, nil)

	a.Velocity = a.Velocity.Add(a.vlambda)
	if c.Multiplier < 0 {
		t.Errorf("contact Multiplier (normal impulse) should be >= 0, got %v", c.Multiplier)
	}
}

func TestGSSolverMultiplierRespectsForceImpulseBounds(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 0}})
	a.Velocity = Vec3{0, 0, -100} // large approach speed to try to saturate the bound
	b := NewBody(BodyConfig{Type: BodyStatic, Position: Vec3{0, 0, -1}})

	c := NewContactEquation(a, b)
	c.Ni = Vec3{0, 0, 1}
	c.MaxForce = 10

	h := float32(1.0 / 60)
	solver := NewGSSolver()
	solver.Solve(h, []*ContactEquation{c}, nil, nil)

	if c.Multiplier > c.MaxForce*h+1e-4 {
		t.Errorf("Multiplier = %v, want <= MaxForce*h = %v", c.Multiplier, c.MaxForce*h)
	}
	if c.Multiplier < c.MinForce*h-1e-4 {
		t.Errorf("Multiplier = %v, want >= MinForce*h = %v", c.Multiplier, c.MinForce*h)
	}
}

func TestApplySlipForcesScalesByFrictionOverH(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1})
	b := NewBody(BodyConfig{Type: BodyStatic})
	c := NewContactEquation(a, b)
	c.Friction = 0.5
	c.Multiplier = 2.0 // an impulse, as solved at this h

	f1 := NewFrictionEquation(a, b, 0)
	f2 := NewFrictionEquation(a, b, 0)

	h := float32(0.1)
	ApplySlipForces([]*ContactEquation{c}, []*FrictionEquation{f1, f2}, 2, h)

	wantForce := c.Friction * c.Multiplier / h
	if f1.MaxForce != wantForce || f1.MinForce != -wantForce {
		t.Errorf("f1 bounds = [%v, %v], want [%v, %v]", f1.MinForce, f1.MaxForce, -wantForce, wantForce)
	}
	if f2.MaxForce != wantForce {
		t.Errorf("f2.MaxForce = %v, want %v", f2.MaxForce, wantForce)
	}
}

func TestGSSolverSkipsDisabledEquations(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1})
	b := NewBody(BodyConfig{Type: BodyStatic})
	c := NewContactEquation(a, b)
	c.Ni = Vec3UnitZ
	c.Enabled = false

	solver := NewGSSolver()
	solver.Solve(1.0/60, []*ContactEquation{c}, nil, nil)
	if c.Multiplier != 0 {
		t.Errorf("a disabled equation should never be solved, got Multiplier=%v", c.Multiplier)
	}
}

func TestGSSolverNoRowsIsNoOp(t *testing.T) {
	solver := NewGSSolver()
	solver.Solve(1.0/60, nil, nil, nil) // must not panic
}
