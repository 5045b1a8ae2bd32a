package gophys

// FrictionEquation resists relative sliding along a tangent direction T
// at a contact point, up to force bounds set once per step from the
// paired ContactEquation's solved normal force (see ApplySlipForces).
type FrictionEquation struct {
	*Equation

	// Ri, Rj are the contact point relative to BodyA/BodyB's position,
	// in world orientation (shared with the paired ContactEquation).
	Ri, Rj Vec3
	// T is the friction tangent direction, unit length.
	T Vec3
}

// NewFrictionEquation builds a FrictionEquation with symmetric force
// bounds [-slipForce, +slipForce].
func NewFrictionEquation(bi, bj *Body, slipForce float32) *FrictionEquation {
	f := &FrictionEquation{Equation: NewEquation(bi, bj, -slipForce, slipForce)}
	f.computeB = f.ComputeB
	return f
}

// SetSlipForce resets the symmetric force bounds, used each step once
// the paired contact's normal impulse is known.
func (f *FrictionEquation) SetSlipForce(slipForce float32) {
	f.MinForce = -slipForce
	f.MaxForce = slipForce
}

// ComputeB fills in the Jacobian and returns the bias term b. Unlike
// ContactEquation, friction has no position-error term: it only damps
// tangential relative velocity.
func (f *FrictionEquation) ComputeB(h float32) float32 {
	bi, bj := f.BodyA, f.BodyB
	ri, rj, t := f.Ri, f.Rj, f.T

	rixt := ri.Cross(t)
	rjxt := rj.Cross(t)

	ga := f.JacobianElementA
	gb := f.JacobianElementB
	ga.Spatial = t.Negate()
	ga.Rotational = rixt.Negate()
	gb.Spatial = t
	gb.Rotational = rjxt
	f.JacobianElementA = ga
	f.JacobianElementB = gb

	gw := bj.Velocity.Dot(t) - bi.Velocity.Dot(t) + bj.AngularVelocity.Dot(rjxt) - bi.AngularVelocity.Dot(rixt)
	giMf := f.ComputeGiMf()

	return -gw*f.SpookB - h*giMf
}
