package gophys

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// World owns every Body, Material, ContactMaterial and Constraint in a
// simulation, plus the broadphase/narrowphase/solver pipeline that
// advances them. Construct one with NewWorld or NewWorldWithConfig and
// drive it with repeated Step calls.
type World struct {
	// DebugID identifies this World instance across log output. When no
	// custom Logger is supplied via WorldConfig, NewWorldWithConfig
	// embeds DebugID's short form in the default logger's prefix, so it
	// appears on every line the world logs.
	DebugID uuid.UUID

	Gravity Vec3

	Bodies      []*Body
	Constraints []WorldConstraint

	Materials        []*Material
	ContactMaterials []*ContactMaterial
	DefaultMaterial  *Material

	Broadphase  *NaiveBroadphase
	Narrowphase *Narrowphase
	Solver      *GSSolver

	QuatNormalizeSkip int
	QuatNormalizeFast bool

	Logger Logger

	bodyByID  map[uint64]*Body
	shapeByID map[uint64]*Shape

	collisionMatrix         *ObjectCollisionMatrix
	previousCollisionMatrix *ObjectCollisionMatrix
	triggerMatrix           *ObjectCollisionMatrix
	previousTriggerMatrix   *ObjectCollisionMatrix

	time        float32
	accumulator float32
	stepCounter int

	addBodyListeners       []func(*Body)
	removeBodyListeners    []func(*Body)
	beginContactListeners  []func(BeginContactEvent)
	endContactListeners    []func(EndContactEvent)
	beginTriggerListeners  []func(BeginTriggerEvent)
	endTriggerListeners    []func(EndTriggerEvent)
}

// NewWorld returns a World configured with the library defaults; see
// DefaultWorldConfig.
func NewWorld() *World {
	return NewWorldWithConfig(DefaultWorldConfig())
}

// NewWorldWithConfig returns a World configured from cfg, applying
// defaults for zero-value fields.
func NewWorldWithConfig(cfg WorldConfig) *World {
	debugID := uuid.New()
	logger := cfg.Logger
	if logger == nil {
		logger = NewDefaultLogger(fmt.Sprintf("gophys:%s", debugID.String()[:8]), false)
	}
	gravity := cfg.Gravity
	solver := NewGSSolver()
	if cfg.SolverIterations > 0 {
		solver.Iterations = cfg.SolverIterations
	}
	if cfg.SolverTolerance > 0 {
		solver.Tolerance = cfg.SolverTolerance
	}

	defaultMaterial := NewMaterial("default")
	if cfg.DefaultFriction > 0 {
		defaultMaterial.Friction = cfg.DefaultFriction
	}
	if cfg.DefaultRestitution > 0 {
		defaultMaterial.Restitution = cfg.DefaultRestitution
	}
	defaultContactMaterial := NewContactMaterial(defaultMaterial, defaultMaterial)

	w := &World{
		DebugID:                 debugID,
		Gravity:                 gravity,
		Materials:                []*Material{defaultMaterial},
		DefaultMaterial:         defaultMaterial,
		ContactMaterials:        []*ContactMaterial{defaultContactMaterial},
		Broadphase:              NewNaiveBroadphase(),
		Narrowphase:             NewNarrowphase(defaultContactMaterial),
		Solver:                  solver,
		QuatNormalizeSkip:       cfg.QuatNormalizeSkip,
		QuatNormalizeFast:       cfg.QuatNormalizeFast,
		Logger:                  logger,
		bodyByID:                make(map[uint64]*Body),
		shapeByID:                make(map[uint64]*Shape),
		collisionMatrix:         NewObjectCollisionMatrix(),
		previousCollisionMatrix: NewObjectCollisionMatrix(),
		triggerMatrix:           NewObjectCollisionMatrix(),
		previousTriggerMatrix:   NewObjectCollisionMatrix(),
	}
	return w
}

// AddBody registers b with the world, indexing its id and every shape id
// it currently carries, and dispatches OnAddBody listeners.
func (w *World) AddBody(b *Body) {
	if _, exists := w.bodyByID[b.ID]; exists {
		return
	}
	b.index = len(w.Bodies)
	w.Bodies = append(w.Bodies, b)
	w.bodyByID[b.ID] = b
	for _, s := range b.Shapes {
		w.shapeByID[s.ID] = s
	}
	for _, fn := range w.addBodyListeners {
		fn(b)
	}
}

// RemoveBody unregisters b, if present, via a swap-with-last removal
// from w.Bodies, and dispatches OnRemoveBody listeners.
func (w *World) RemoveBody(b *Body) {
	if _, exists := w.bodyByID[b.ID]; !exists {
		return
	}
	last := len(w.Bodies) - 1
	idx := b.index
	w.Bodies[idx] = w.Bodies[last]
	w.Bodies[idx].index = idx
	w.Bodies = w.Bodies[:last]
	b.index = -1
	delete(w.bodyByID, b.ID)
	for _, s := range b.Shapes {
		delete(w.shapeByID, s.ID)
	}
	for _, fn := range w.removeBodyListeners {
		fn(b)
	}
}

// GetBodyByID looks up a previously added body by id.
func (w *World) GetBodyByID(id uint64) (*Body, bool) {
	b, ok := w.bodyByID[id]
	return b, ok
}

// GetShapeByID looks up a shape owned by any body currently in the world.
func (w *World) GetShapeByID(id uint64) (*Shape, bool) {
	s, ok := w.shapeByID[id]
	return s, ok
}

// AddConstraint registers a persistent constraint between two bodies.
func (w *World) AddConstraint(c WorldConstraint) {
	w.Constraints = append(w.Constraints, c)
}

// RemoveConstraint unregisters c, if present.
func (w *World) RemoveConstraint(c WorldConstraint) {
	for i, existing := range w.Constraints {
		if existing == c {
			w.Constraints = append(w.Constraints[:i], w.Constraints[i+1:]...)
			return
		}
	}
}

// AddMaterial registers a Material with the world. Materials don't need
// registration to be used on a Shape; this is only bookkeeping for
// callers that want to enumerate them.
func (w *World) AddMaterial(m *Material) {
	w.Materials = append(w.Materials, m)
}

// AddContactMaterial registers cm, making it the resolved material for
// any shape pair whose Materials match MaterialA/MaterialB.
func (w *World) AddContactMaterial(cm *ContactMaterial) {
	w.ContactMaterials = append(w.ContactMaterials, cm)
	w.Narrowphase.ContactMaterialTable.Set(cm.MaterialA.ID, cm.MaterialB.ID, cm)
}

// ClearForces zeroes Force/Torque on every body in the world.
func (w *World) ClearForces() {
	for _, b := range w.Bodies {
		b.ClearForces()
	}
}

// Step advances the simulation by timeSinceLastCalled seconds of real
// time, run as zero or more fixed substeps of size dt (matching the
// library's standard fixed/variable timestep split):
//   - If timeSinceLastCalled is 0, a single fixed substep of size dt runs
//     with no interpolation.
//   - Otherwise, accumulated time is consumed in dt-sized substeps (up to
//     maxSubSteps, which defaults to 10 when <= 0) and every Body's
//     InterpolatedPosition/InterpolatedQuaternion is set by blending
//     PreviousPosition/PreviousQuaternion towards Position/Quaternion by
//     the leftover fractional substep.
func (w *World) Step(dt, timeSinceLastCalled float32, maxSubSteps int) {
	if timeSinceLastCalled == 0 {
		w.internalStep(dt)
		w.time += dt
		for _, b := range w.Bodies {
			b.InterpolatedPosition = b.Position
			b.InterpolatedQuaternion = b.Quaternion
		}
		return
	}

	if maxSubSteps <= 0 {
		maxSubSteps = 10
	}
	w.accumulator += timeSinceLastCalled
	substeps := 0
	for w.accumulator >= dt && substeps < maxSubSteps {
		w.internalStep(dt)
		w.accumulator -= dt
		w.time += dt
		substeps++
	}
	if substeps == 0 {
		w.Logger.Debugf("step: no substep run this call, accumulator=%f dt=%f", w.accumulator, dt)
	}

	fraction := w.accumulator / dt
	for _, b := range w.Bodies {
		b.InterpolatedPosition = b.PreviousPosition.Lerp(b.Position, fraction)
		b.InterpolatedQuaternion = b.PreviousQuaternion.Slerp(b.Quaternion, fraction)
	}
}

// wakeIfTouchedByAwake wakes b when it is sleeping but in contact with
// an other body that is both awake and not static, so a sleeping stack
// doesn't re-wake merely by resting against something immobile.
func wakeIfTouchedByAwake(b, other *Body) {
	if b.AllowSleep && b.Type == BodyDynamic && b.SleepState == BodySleeping &&
		other.SleepState != BodySleeping && other.Type != BodyStatic {
		b.WakeUp()
	}
}

// internalStep runs exactly one fixed-size substep: gravity, broadphase,
// narrowphase, solve, integrate, sleep bookkeeping, and event dispatch,
// in that order.
func (w *World) internalStep(dt float32) {
	for _, b := range w.Bodies {
		b.PreviousPosition = b.Position
		b.PreviousQuaternion = b.Quaternion
	}

	for _, b := range w.Bodies {
		if b.Type == BodyDynamic && b.SleepState != BodySleeping {
			b.Force = b.Force.Add(w.Gravity.Scale(b.Mass))
		}
	}

	pairsA, pairsB := w.Broadphase.CollisionPairs(w.Bodies)
	pairsA, pairsB = MakePairsUnique(pairsA, pairsB)

	w.Narrowphase.Reset()
	w.Narrowphase.Generate(pairsA, pairsB, false)

	for _, c := range w.Narrowphase.Contacts {
		wakeIfTouchedByAwake(c.BodyA, c.BodyB)
		wakeIfTouchedByAwake(c.BodyB, c.BodyA)
		c.BodyA.dispatchCollide(CollideEvent{BodyA: c.BodyA, BodyB: c.BodyB, Contact: c})
		c.BodyB.dispatchCollide(CollideEvent{BodyA: c.BodyB, BodyB: c.BodyA, Contact: c})
	}

	baseConstraints := make([]*Constraint, len(w.Constraints))
	for i, c := range w.Constraints {
		c.Update()
		baseConstraints[i] = c.Base()
	}

	// First pass: contacts and constraints only, to learn each contact's
	// normal impulse. Its vlambda/wlambda contributions are discarded
	// (reset below) since friction wasn't part of this pass.
	w.Solver.Solve(dt, w.Narrowphase.Contacts, nil, baseConstraints)
	ApplySlipForces(w.Narrowphase.Contacts, w.Narrowphase.Frictions, 2, dt)
	for _, b := range w.Bodies {
		b.vlambda = Vec3Zero
		b.wlambda = Vec3Zero
	}
	w.Solver.Solve(dt, w.Narrowphase.Contacts, w.Narrowphase.Frictions, baseConstraints)

	for _, b := range w.Bodies {
		if b.Type != BodyDynamic {
			continue
		}
		b.Velocity = b.Velocity.Add(b.vlambda)
		b.AngularVelocity = b.AngularVelocity.Add(b.wlambda)
		b.vlambda = Vec3Zero
		b.wlambda = Vec3Zero
	}

	w.integrate(dt)

	for _, b := range w.Bodies {
		b.sleepTick(w.time)
	}

	w.collisionMatrixTick()

	for _, b := range w.Bodies {
		b.ClearForces()
	}
}

// integrate advances every dynamic body's Position/Quaternion/Velocity
// by dt using semi-implicit (symplectic) Euler: velocities are updated
// from Force/Torque and damping first, then positions from the updated
// velocities. Quaternions are renormalized every QuatNormalizeSkip+1
// steps, using the cheap Newton-step approximation when
// QuatNormalizeFast is set.
func (w *World) integrate(dt float32) {
	normalizeDue := w.stepCounter%(w.QuatNormalizeSkip+1) == 0
	w.stepCounter++

	for _, b := range w.Bodies {
		if b.Type == BodyKinematic {
			b.UpdateInertiaWorld(true)
			continue
		}
		if b.Type != BodyDynamic || b.SleepState == BodySleeping {
			continue
		}

		linearDampingFactor := float32(1) / (1 + dt*b.LinearDamping)
		angularDampingFactor := float32(1) / (1 + dt*b.AngularDamping)

		b.Velocity = b.Velocity.Add(b.Force.Scale(b.InvMass * dt)).ComponentMul(b.LinearFactor).Scale(linearDampingFactor)
		b.AngularVelocity = b.AngularVelocity.Add(b.InvInertiaWorld.Vmult(b.Torque).Scale(dt)).ComponentMul(b.AngularFactor).Scale(angularDampingFactor)

		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		b.Quaternion = b.Quaternion.Integrate(b.AngularVelocity, dt, Vec3{1, 1, 1})

		if normalizeDue {
			if w.QuatNormalizeFast {
				b.Quaternion.NormalizeFast()
			} else {
				b.Quaternion.Normalize()
			}
		}
		b.UpdateInertiaWorld(true)
	}
}

// collisionMatrixTick derives this step's Begin/EndContact and
// Begin/EndTrigger events by diffing the current narrowphase results
// against the previous step's matrices, then rotates current into
// previous for the next step. A contacting body pair counts as a
// trigger pair if none of its shape overlaps produced solver equations
// (i.e. every overlapping shape pair had CollisionResponse == false on
// at least one side).
func (w *World) collisionMatrixTick() {
	w.collisionMatrix.Reset()
	w.triggerMatrix.Reset()

	responding := make(map[[2]uint64]bool, len(w.Narrowphase.Contacts))
	for _, c := range w.Narrowphase.Contacts {
		responding[pairKey(c.BodyA.ID, c.BodyB.ID)] = true
	}

	for _, pair := range w.Narrowphase.ContactingBodies {
		a, b := pair.BodyA.ID, pair.BodyB.ID
		if responding[pairKey(a, b)] {
			w.collisionMatrix.Set(a, b, true)
			if !w.previousCollisionMatrix.Get(a, b) {
				event := BeginContactEvent{BodyA: pair.BodyA, BodyB: pair.BodyB}
				for _, fn := range w.beginContactListeners {
					fn(event)
				}
			}
		} else {
			w.triggerMatrix.Set(a, b, true)
			if !w.previousTriggerMatrix.Get(a, b) {
				event := BeginTriggerEvent{BodyA: pair.BodyA, BodyB: pair.BodyB}
				for _, fn := range w.beginTriggerListeners {
					fn(event)
				}
			}
		}
	}

	for _, key := range w.previousCollisionMatrix.Pairs() {
		if !w.collisionMatrix.Get(key[0], key[1]) {
			bodyA, okA := w.bodyByID[key[0]]
			bodyB, okB := w.bodyByID[key[1]]
			if !okA || !okB {
				continue
			}
			event := EndContactEvent{BodyA: bodyA, BodyB: bodyB}
			for _, fn := range w.endContactListeners {
				fn(event)
			}
		}
	}
	for _, key := range w.previousTriggerMatrix.Pairs() {
		if !w.triggerMatrix.Get(key[0], key[1]) {
			bodyA, okA := w.bodyByID[key[0]]
			bodyB, okB := w.bodyByID[key[1]]
			if !okA || !okB {
				continue
			}
			event := EndTriggerEvent{BodyA: bodyA, BodyB: bodyB}
			for _, fn := range w.endTriggerListeners {
				fn(event)
			}
		}
	}

	w.previousCollisionMatrix, w.collisionMatrix = w.collisionMatrix, w.previousCollisionMatrix
	w.previousTriggerMatrix, w.triggerMatrix = w.triggerMatrix, w.previousTriggerMatrix
}

// RaycastClosest casts a single ray and returns only the nearest hit.
func (w *World) RaycastClosest(from, to Vec3, opts RaycastOptions) (RaycastResult, bool) {
	opts.Mode = RayModeClosest
	results := w.raycast(from, to, opts)
	if len(results) == 0 {
		return RaycastResult{}, false
	}
	return results[0], true
}

// RaycastAny casts a single ray and returns the first hit found, without
// guaranteeing it is the closest.
func (w *World) RaycastAny(from, to Vec3, opts RaycastOptions) (RaycastResult, bool) {
	opts.Mode = RayModeAny
	results := w.raycast(from, to, opts)
	if len(results) == 0 {
		return RaycastResult{}, false
	}
	return results[0], true
}

// RaycastAll casts a single ray and returns every hit, nearest first.
func (w *World) RaycastAll(from, to Vec3, opts RaycastOptions) []RaycastResult {
	opts.Mode = RayModeAll
	results := w.raycast(from, to, opts)
	sort.Slice(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	return results
}

func (w *World) raycast(from, to Vec3, opts RaycastOptions) []RaycastResult {
	ray := NewRay(from, to)
	var rayAABB AABB
	rayAABB.SetFromPoints([]Vec3{from, to}, Vec3Zero, IdentityQuaternion(), 0)
	candidates := w.Broadphase.AABBQuery(w.Bodies, rayAABB)
	return ray.IntersectWorld(candidates, opts)
}
