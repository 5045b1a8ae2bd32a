package gophys

import "testing"

func TestPointToPointConstraintSatisfiesWorldConstraint(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{-1, 0, 0}})
	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{1, 0, 0}})
	pc := NewPointToPointConstraint(a, Vec3{0.5, 0, 0}, b, Vec3{-0.5, 0, 0}, 1e6)

	var wc WorldConstraint = pc
	wc.Update()
	if wc.Base() != &pc.Constraint {
		t.Error("Base() should return the embedded Constraint's address")
	}
	if len(wc.Base().Equations) != 3 {
		t.Errorf("PointToPointConstraint should own 3 equations, got %d", len(wc.Base().Equations))
	}
}

func TestPointToPointConstraintPullsBodiesTogether(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{-2, 0, 0}})
	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{2, 0, 0}})
	pc := NewPointToPointConstraint(a, Vec3Zero, b, Vec3Zero, 1e6)

	solver := NewGSSolver()
	h := float32(1.0 / 60)
	for i := 0; i < 20; i++ {
		pc.Update()
		solver.Solve(h, nil, nil, pc.Equations)
		a.Velocity = a.Velocity.Add(a.vlambda)
		b.Velocity = b.Velocity.Add(b.vlambda)
		a.vlambda, b.vlambda = Vec3Zero, Vec3Zero
		a.Position = a.Position.Add(a.Velocity.Scale(h))
		b.Position = b.Position.Add(b.Velocity.Scale(h))
	}

	gap := a.Position.Distance(b.Position)
	if gap >= 4 {
		t.Errorf("constraint should have pulled the bodies closer, gap=%v", gap)
	}
}

func TestDistanceConstraintDefaultsToCurrentSeparation(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3Zero})
	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{5, 0, 0}})
	dc := NewDistanceConstraint(a, b, 0, 1e6)
	if dc.Distance != 5 {
		t.Errorf("Distance = %v, want 5 (initial separation)", dc.Distance)
	}
}

func TestDistanceConstraintKeepsBodiesApart(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3Zero})
	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{1, 0, 0}})
	dc := NewDistanceConstraint(a, b, 3, 1e6)

	solver := NewGSSolver()
	h := float32(1.0 / 60)
	for i := 0; i < 60; i++ {
		dc.Update()
		solver.Solve(h, nil, nil, dc.Equations)
		a.Velocity = a.Velocity.Add(a.vlambda)
		b.Velocity = b.Velocity.Add(b.vlambda)
		a.vlambda, b.vlambda = Vec3Zero, Vec3Zero
		a.Position = a.Position.Add(a.Velocity.Scale(h))
		b.Position = b.Position.Add(b.Velocity.Scale(h))
	}

	gap := a.Position.Distance(b.Position)
	if gap < 2.5 || gap > 3.5 {
		t.Errorf("distance constraint converged to gap=%v, want close to 3", gap)
	}
}

func TestConstraintEnableDisable(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1})
	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{1, 0, 0}})
	dc := NewDistanceConstraint(a, b, 1, 1e6)

	dc.Disable()
	for _, eq := range dc.Equations {
		if eq.Enabled {
			t.Error("Disable() should disable every equation")
		}
	}
	dc.Enable()
	for _, eq := range dc.Equations {
		if !eq.Enabled {
			t.Error("Enable() should re-enable every equation")
		}
	}
}
