package gophys

// Constraint is a user-level restriction between two bodies, realized
// as one or more Equations added to the solver each step. Unlike a
// contact (generated fresh every step by narrowphase), a Constraint is
// a persistent World member the caller adds once.
type Constraint struct {
	BodyA, BodyB *Body
	Equations    []*Equation
}

// Enable/Disable toggle every equation this constraint owns, letting
// callers turn a constraint on/off without removing it from the World.
func (c *Constraint) Enable() {
	for _, e := range c.Equations {
		e.Enabled = true
	}
}

func (c *Constraint) Disable() {
	for _, e := range c.Equations {
		e.Enabled = false
	}
}

// Base returns c itself, letting embedders of Constraint satisfy
// WorldConstraint without redeclaring Equations access.
func (c *Constraint) Base() *Constraint { return c }

// WorldConstraint is what World.Constraints stores: anything that owns a
// Constraint and knows how to refresh its equations' bias terms before a
// solve.
type WorldConstraint interface {
	Update()
	Base() *Constraint
}

// PointToPointConstraint pins a point on BodyA (PivotA, local frame) to
// coincide with a point on BodyB (PivotB, local frame), removing all
// three translational degrees of freedom between the two points while
// leaving rotation free. It is the rigid-body equivalent of a ball
// socket joint.
type PointToPointConstraint struct {
	Constraint
	PivotA, PivotB Vec3

	equationX, equationY, equationZ *Equation
}

// NewPointToPointConstraint builds a 3-equation (X/Y/Z) point-to-point
// constraint. maxForce bounds each axis equation symmetrically.
func NewPointToPointConstraint(bodyA *Body, pivotA Vec3, bodyB *Body, pivotB Vec3, maxForce float32) *PointToPointConstraint {
	ex := NewEquation(bodyA, bodyB, -maxForce, maxForce)
	ey := NewEquation(bodyA, bodyB, -maxForce, maxForce)
	ez := NewEquation(bodyA, bodyB, -maxForce, maxForce)
	ex.JacobianElementA.Spatial = Vec3UnitX.Negate()
	ex.JacobianElementB.Spatial = Vec3UnitX
	ey.JacobianElementA.Spatial = Vec3UnitY.Negate()
	ey.JacobianElementB.Spatial = Vec3UnitY
	ez.JacobianElementA.Spatial = Vec3UnitZ.Negate()
	ez.JacobianElementB.Spatial = Vec3UnitZ

	pc := &PointToPointConstraint{
		Constraint: Constraint{BodyA: bodyA, BodyB: bodyB, Equations: []*Equation{ex, ey, ez}},
		PivotA:     pivotA,
		PivotB:     pivotB,
		equationX:  ex,
		equationY:  ey,
		equationZ:  ez,
	}
	return pc
}

// Update recomputes the per-step Jacobian rotational terms and position
// error for all three axis equations from the bodies' current
// transforms; call once per step before the solver runs.
func (p *PointToPointConstraint) Update() {
	bodyA, bodyB := p.BodyA, p.BodyB
	rA := bodyA.VectorToWorldFrame(p.PivotA)
	rB := bodyB.VectorToWorldFrame(p.PivotB)

	worldPivotA := bodyA.Position.Add(rA)
	worldPivotB := bodyB.Position.Add(rB)
	gDiff := worldPivotB.Sub(worldPivotA)

	for _, axis := range [...]struct {
		eq   *Equation
		unit Vec3
		g    float32
	}{{p.equationX, Vec3UnitX, gDiff.X}, {p.equationY, Vec3UnitY, gDiff.Y}, {p.equationZ, Vec3UnitZ, gDiff.Z}} {
		axis.eq.JacobianElementA.Rotational = rA.Cross(axis.unit).Negate()
		axis.eq.JacobianElementB.Rotational = rB.Cross(axis.unit)
		g := axis.g
		eq := axis.eq
		eq.computeB = func(h float32) float32 {
			gw := eq.JacobianElementA.Spatial.Dot(bodyA.Velocity) + eq.JacobianElementA.Rotational.Dot(bodyA.AngularVelocity) +
				eq.JacobianElementB.Spatial.Dot(bodyB.Velocity) + eq.JacobianElementB.Rotational.Dot(bodyB.AngularVelocity)
			giMf := eq.ComputeGiMf()
			return -g*eq.SpookA - gw*eq.SpookB - h*giMf
		}
	}
}

// DistanceConstraint keeps the distance between a point on BodyA and a
// point on BodyB fixed at Distance (or, if Distance is zero at
// construction, whatever the initial separation was).
type DistanceConstraint struct {
	Constraint
	Distance float32
	equation *Equation
}

// NewDistanceConstraint builds a single-equation distance constraint.
// If distance is 0, it is computed from the bodies' current positions.
func NewDistanceConstraint(bodyA, bodyB *Body, distance, maxForce float32) *DistanceConstraint {
	if distance == 0 {
		distance = bodyA.Position.Distance(bodyB.Position)
	}
	eq := NewEquation(bodyA, bodyB, -maxForce, maxForce)
	return &DistanceConstraint{
		Constraint: Constraint{BodyA: bodyA, BodyB: bodyB, Equations: []*Equation{eq}},
		Distance:   distance,
		equation:   eq,
	}
}

// Update recomputes the equation's Jacobian and position error from the
// bodies' current separation; call once per step before the solver
// runs.
func (d *DistanceConstraint) Update() {
	bodyA, bodyB := d.BodyA, d.BodyB
	normal := bodyB.Position.Sub(bodyA.Position)
	currentDistance := normal.Normalize()
	if currentDistance == 0 {
		normal = Vec3UnitX
	}

	d.equation.JacobianElementA.Spatial = normal.Negate()
	d.equation.JacobianElementB.Spatial = normal

	g := currentDistance - d.Distance
	eq := d.equation
	eq.computeB = func(h float32) float32 {
		gw := eq.JacobianElementA.Spatial.Dot(bodyA.Velocity) + eq.JacobianElementB.Spatial.Dot(bodyB.Velocity)
		giMf := eq.ComputeGiMf()
		return -g*eq.SpookA - gw*eq.SpookB - h*giMf
	}
}
