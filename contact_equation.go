package gophys

// ContactEquation enforces non-penetration along a single contact point:
// the relative velocity along Ni must not close the gap faster than the
// SPOOK-softened bias allows.
type ContactEquation struct {
	*Equation

	// Ri, Rj are the contact point relative to BodyA/BodyB's position,
	// in world orientation.
	Ri, Rj Vec3
	// Ni is the contact normal, pointing from BodyA towards BodyB.
	Ni          Vec3
	Restitution float32
	// Friction is the combined coefficient used to bound this contact's
	// paired FrictionEquations once the normal force is known; see
	// ApplySlipForces.
	Friction float32
}

// NewContactEquation builds a ContactEquation with force bounds [0, 1e6],
// since a contact can only push, never pull.
func NewContactEquation(bi, bj *Body) *ContactEquation {
	c := &ContactEquation{Equation: NewEquation(bi, bj, 0, 1e6)}
	c.computeB = c.ComputeB
	return c
}

// ComputeB fills in the Jacobian and returns the bias term b for this
// step's timestep h, following the standard SPOOK contact formulation.
func (c *ContactEquation) ComputeB(h float32) float32 {
	bi, bj := c.BodyA, c.BodyB
	ri, rj, n := c.Ri, c.Rj, c.Ni

	rixn := ri.Cross(n)
	rjxn := rj.Cross(n)

	ga := c.JacobianElementA
	gb := c.JacobianElementB
	ga.Spatial = n.Negate()
	ga.Rotational = rixn.Negate()
	gb.Spatial = n
	gb.Rotational = rjxn
	c.JacobianElementA = ga
	c.JacobianElementB = gb

	penetrationVec := bj.Position.Add(rj).Sub(bi.Position).Sub(ri)
	g := n.Dot(penetrationVec)

	ePlusOne := c.Restitution + 1
	gw := ePlusOne*bj.Velocity.Dot(n) - ePlusOne*bi.Velocity.Dot(n) +
		bj.AngularVelocity.Dot(rjxn) - bi.AngularVelocity.Dot(rixn)
	giMf := c.ComputeGiMf()

	return -g*c.SpookA - gw*c.SpookB - h*giMf
}

// GetImpactVelocityAlongNormal returns the closing speed along Ni at
// the moment this contact was generated (positive means approaching).
func (c *ContactEquation) GetImpactVelocityAlongNormal() float32 {
	bi, bj := c.BodyA, c.BodyB
	vi := bi.GetVelocityAtWorldPoint(bi.Position.Add(c.Ri))
	vj := bj.GetVelocityAtWorldPoint(bj.Position.Add(c.Rj))
	return c.Ni.Dot(vi.Sub(vj))
}
