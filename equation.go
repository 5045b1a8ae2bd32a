package gophys

// Equation is the base of every constraint/contact row solved by
// GSSolver: a single scalar equation G*v + b = 0 (softened per the
// SPOOK parameters A/B/Eps), expressed as two JacobianElements (one per
// body) plus force bounds.
type Equation struct {
	BodyA, BodyB *Body

	MinForce, MaxForce float32

	// Stiffness, Relaxation parameterize the SPOOK softening; defaults
	// match the library's contact defaults (1e7, 3) and can be
	// overridden per-equation before the first step.
	Stiffness, Relaxation float32

	// SpookA, SpookB, SpookEps are the SPOOK stabilization parameters,
	// derived from Stiffness/Relaxation/timestep by RefreshSpookParams:
	// a = 4/(h(1+4d)), b = 4d/(1+4d), eps = 4/(h^2 k(1+4d)).
	SpookA, SpookB, SpookEps float32

	JacobianElementA JacobianElement
	JacobianElementB JacobianElement

	Enabled bool

	// Multiplier is the constraint force (lambda) computed by the last
	// solve, exposed so callers can read contact normal force etc.
	Multiplier float32

	// computeB is supplied by the concrete equation kind that embeds
	// this Equation (ContactEquation, FrictionEquation, or a
	// constraint's per-axis equation); GSSolver calls it once per step
	// to obtain that equation's velocity bias.
	computeB func(h float32) float32
}

// NewEquation builds an enabled Equation between bi and bj with the
// given force bounds and default SPOOK stiffness/relaxation (1e7, 3).
func NewEquation(bi, bj *Body, minForce, maxForce float32) *Equation {
	return &Equation{
		BodyA: bi, BodyB: bj,
		MinForce: minForce, MaxForce: maxForce,
		Stiffness: 1e7, Relaxation: 3,
		Enabled: true,
	}
}

// RefreshSpookParams recomputes SpookA/SpookB/SpookEps for the current
// step's timestep h, using the equation's (possibly just-overridden)
// Stiffness/Relaxation.
func (e *Equation) RefreshSpookParams(h float32) {
	e.SetSpookParams(e.Stiffness, e.Relaxation, h)
}

// SetSpookParams derives SpookA/SpookB/SpookEps from a stiffness,
// relaxation (d), and the step's timestep h.
func (e *Equation) SetSpookParams(stiffness, relaxation, h float32) {
	d := relaxation
	k := stiffness
	e.SpookA = 4.0 / (h * (1 + 4*d))
	e.SpookB = (4.0 * d) / (1 + 4*d)
	e.SpookEps = 4.0 / (h * h * k * (1 + 4*d))
}

// ComputeGWlambda returns G*Wlambda, the constraint's velocity response
// to the solver's current (in-progress) velocity deltas.
func (e *Equation) ComputeGWlambda() float32 {
	var result float32
	if e.BodyA.Type == BodyDynamic {
		result += e.JacobianElementA.Spatial.Dot(e.BodyA.vlambda) + e.JacobianElementA.Rotational.Dot(e.BodyA.wlambda)
	}
	if e.BodyB.Type == BodyDynamic {
		result += e.JacobianElementB.Spatial.Dot(e.BodyB.vlambda) + e.JacobianElementB.Rotational.Dot(e.BodyB.wlambda)
	}
	return result
}

// ComputeGiMf returns G*Minv*f, the constraint's velocity response to
// the bodies' currently accumulated external force/torque.
func (e *Equation) ComputeGiMf() float32 {
	var result float32
	if e.BodyA.Type == BodyDynamic {
		result += e.JacobianElementA.Spatial.Dot(e.BodyA.Force.Scale(e.BodyA.InvMass))
		result += e.JacobianElementA.Rotational.Dot(e.BodyA.InvInertiaWorld.Vmult(e.BodyA.Torque))
	}
	if e.BodyB.Type == BodyDynamic {
		result += e.JacobianElementB.Spatial.Dot(e.BodyB.Force.Scale(e.BodyB.InvMass))
		result += e.JacobianElementB.Rotational.Dot(e.BodyB.InvInertiaWorld.Vmult(e.BodyB.Torque))
	}
	return result
}

// ComputeGiMGt returns G*Minv*G^T, the constraint's effective inverse
// mass: the denominator of the impulse that would drive G*v to zero in
// a single step.
func (e *Equation) ComputeGiMGt() float32 {
	var result float32
	if e.BodyA.Type == BodyDynamic {
		result += e.JacobianElementA.Spatial.Dot(e.JacobianElementA.Spatial) * e.BodyA.InvMass
		result += e.JacobianElementA.Rotational.Dot(e.BodyA.InvInertiaWorld.Vmult(e.JacobianElementA.Rotational))
	}
	if e.BodyB.Type == BodyDynamic {
		result += e.JacobianElementB.Spatial.Dot(e.JacobianElementB.Spatial) * e.BodyB.InvMass
		result += e.JacobianElementB.Rotational.Dot(e.BodyB.InvInertiaWorld.Vmult(e.JacobianElementB.Rotational))
	}
	return result
}

// AddToWlambda applies a solver impulse magnitude deltalambda to both
// bodies' vlambda/wlambda scratch velocities.
func (e *Equation) AddToWlambda(deltalambda float32) {
	if e.BodyA.Type == BodyDynamic {
		e.BodyA.vlambda = e.BodyA.vlambda.Add(e.JacobianElementA.Spatial.Scale(e.BodyA.InvMass * deltalambda))
		e.BodyA.wlambda = e.BodyA.wlambda.Add(e.BodyA.InvInertiaWorld.Vmult(e.JacobianElementA.Rotational).Scale(deltalambda))
	}
	if e.BodyB.Type == BodyDynamic {
		e.BodyB.vlambda = e.BodyB.vlambda.Add(e.JacobianElementB.Spatial.Scale(e.BodyB.InvMass * deltalambda))
		e.BodyB.wlambda = e.BodyB.wlambda.Add(e.BodyB.InvInertiaWorld.Vmult(e.JacobianElementB.Rotational).Scale(deltalambda))
	}
}
