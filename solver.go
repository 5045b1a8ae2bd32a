package gophys

// GSSolver solves the accumulated contact/friction/constraint equations
// for a step via Projected Gauss-Seidel (sequential impulses): each
// equation's impulse is repeatedly recomputed and clamped to
// [MinForce*h, MaxForce*h] until Iterations is reached or the total
// correction drops below Tolerance.
type GSSolver struct {
	Iterations int
	Tolerance  float32
}

// NewGSSolver returns a GSSolver with the library defaults (10
// iterations, 1e-7 tolerance).
func NewGSSolver() *GSSolver {
	return &GSSolver{Iterations: 10, Tolerance: 1e-7}
}

type solverRow struct {
	eq       *Equation
	b        float32
	invC     float32
	lambda   float32
}

// Solve runs the iterative solve over contacts, their paired friction
// equations (slip-bounded by the contact's previously solved normal
// force), and persistent constraint equations, for a step of size h.
// Solved impulses are written back into each Equation's Multiplier and
// applied to the owning bodies' vlambda/wlambda; World.internalStep
// adds vlambda/wlambda into Velocity/AngularVelocity once, after Solve
// returns.
func (s *GSSolver) Solve(h float32, contacts []*ContactEquation, frictions []*FrictionEquation, constraints []*Constraint) {
	var rows []solverRow

	addRow := func(eq *Equation) *solverRow {
		if !eq.Enabled {
			return nil
		}
		eq.RefreshSpookParams(h)
		giMGt := eq.ComputeGiMGt()
		if giMGt == 0 {
			return nil
		}
		row := solverRow{eq: eq, invC: 1 / (giMGt + eq.SpookEps), b: eq.computeB(h)}
		rows = append(rows, row)
		return &rows[len(rows)-1]
	}

	for _, c := range contacts {
		addRow(c.Equation)
	}
	// Friction rows use the bounds their equations already carry:
	// Narrowphase.addEquations creates them with [0, 0], and
	// World.internalStep sets them with ApplySlipForces from a
	// contact-only Solve before the Solve that includes friction.
	for _, f := range frictions {
		addRow(f.Equation)
	}
	for _, c := range constraints {
		for _, eq := range c.Equations {
			addRow(eq)
		}
	}
	if len(rows) == 0 {
		return
	}

	for iter := 0; iter < s.Iterations; iter++ {
		var deltaSum float32
		for i := range rows {
			row := &rows[i]
			eq := row.eq
			gwlambda := eq.ComputeGWlambda()
			deltalambda := row.invC * (row.b - gwlambda - eq.SpookEps*row.lambda)

			// lambda accumulates an impulse (force integrated over the
			// step), so MinForce/MaxForce bound it scaled by h.
			lo, hi := eq.MinForce*h, eq.MaxForce*h
			newLambda := row.lambda + deltalambda
			if newLambda < lo {
				deltalambda = lo - row.lambda
				newLambda = lo
			} else if newLambda > hi {
				deltalambda = hi - row.lambda
				newLambda = hi
			}
			row.lambda = newLambda
			eq.AddToWlambda(deltalambda)

			if deltalambda < 0 {
				deltaSum += -deltalambda
			} else {
				deltaSum += deltalambda
			}
		}
		if deltaSum*deltaSum < s.Tolerance*s.Tolerance {
			break
		}
	}

	for i := range rows {
		rows[i].eq.Multiplier = rows[i].lambda
	}
}

// ApplySlipForces sets each friction equation's force bounds from its
// paired contact equation's solved normal force times that contact's own
// friction coefficient, called once after an initial contact-only solve
// and before the full solve that includes friction (matching the
// two-pass approach the library uses to avoid circular dependence
// between normal and friction forces within a single iteration set).
// c.Multiplier is an impulse (solved at step size h); dividing by h
// recovers the normal force the resulting slip bound is expressed in,
// consistent with every other equation's MinForce/MaxForce being force,
// not impulse, bounds. Narrowphase.addEquations always emits
// frictionPerContact (2) friction equations per contact, in the same
// order as contacts.
func ApplySlipForces(contacts []*ContactEquation, frictions []*FrictionEquation, frictionPerContact int, h float32) {
	for i, c := range contacts {
		slip := c.Friction * c.Multiplier / h
		for k := 0; k < frictionPerContact; k++ {
			idx := i*frictionPerContact + k
			if idx >= len(frictions) {
				break
			}
			frictions[idx].SetSlipForce(slip)
		}
	}
}
