package gophys

import "testing"

func TestNewContactEquationForceBoundsOnlyPush(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1})
	b := NewBody(BodyConfig{Type: BodyStatic})
	c := NewContactEquation(a, b)

	if c.MinForce != 0 {
		t.Errorf("MinForce = %v, want 0 (a contact can only push)", c.MinForce)
	}
	if c.MaxForce <= 0 {
		t.Errorf("MaxForce = %v, want > 0", c.MaxForce)
	}
}

func TestContactEquationComputeBPenalizesPenetration(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 0}})
	b := NewBody(BodyConfig{Type: BodyStatic, Position: Vec3{0, 0, -0.5}})

	c := NewContactEquation(a, b)
	c.Ni = Vec3{0, 0, 1}
	c.RefreshSpookParams(1.0 / 60)

	bias := c.ComputeB(1.0 / 60)
	if bias == 0 {
		t.Error("ComputeB should be nonzero when bodies interpenetrate along Ni")
	}
}

func TestGetImpactVelocityAlongNormalMeasuresApproach(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3Zero})
	a.Velocity = Vec3{0, 0, -2}
	b := NewBody(BodyConfig{Type: BodyStatic, Position: Vec3{0, 0, -1}})

	c := NewContactEquation(a, b)
	c.Ni = Vec3{0, 0, -1}

	got := c.GetImpactVelocityAlongNormal()
	if got <= 0 {
		t.Errorf("GetImpactVelocityAlongNormal = %v, want positive (a is closing on b)", got)
	}
}
