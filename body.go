package gophys

import "sync/atomic"

var bodyIDCounter uint64

func nextBodyID() uint64 { return atomic.AddUint64(&bodyIDCounter, 1) - 1 }

// BodyType distinguishes how a Body participates in integration.
type BodyType int

const (
	// BodyDynamic bodies integrate under forces/gravity and collide with
	// everything.
	BodyDynamic BodyType = iota
	// BodyStatic bodies never move and have infinite mass (InvMass 0).
	BodyStatic
	// BodyKinematic bodies move only when the caller sets Position /
	// Quaternion directly; they are never affected by forces or
	// collision response but still generate contacts.
	BodyKinematic
)

// BodyState is the sleep-cycle state machine position of a Body.
type BodyState int

const (
	BodyAwake BodyState = iota
	BodySleepy
	BodySleeping
)

// Body is a rigid body: a set of Shapes placed at local offsets, with
// the mass/inertia/velocity state needed to integrate and collide it.
type Body struct {
	ID   uint64
	Type BodyType

	Position        Vec3
	Quaternion      Quaternion
	Velocity        Vec3
	AngularVelocity Vec3

	PreviousPosition   Vec3
	PreviousQuaternion Quaternion
	InterpolatedPosition   Vec3
	InterpolatedQuaternion Quaternion

	Force  Vec3
	Torque Vec3

	Mass             float32
	InvMass          float32
	InertiaLocal     Vec3
	InvInertiaLocal  Vec3
	InvInertiaWorld  Mat3

	LinearDamping  float32
	AngularDamping float32
	LinearFactor   Vec3
	AngularFactor  Vec3

	AllowSleep       bool
	SleepState       BodyState
	SleepSpeedLimit  float32
	SleepTimeLimit   float32
	timeLastSleepy   float32
	wakeUpAfterNarrowphase bool

	Shapes            []*Shape
	ShapeOffsets      []Vec3
	ShapeOrientations []Quaternion

	CollisionFilterGroup int32
	CollisionFilterMask  int32
	CollisionResponse    bool
	Material             *Material

	// vlambda/wlambda are the solver's per-body scratch velocity deltas,
	// accumulated across constraint iterations and applied once at the
	// end of a solve (see GSSolver).
	vlambda Vec3
	wlambda Vec3

	// index is this body's position in World.Bodies, maintained by
	// World.AddBody/RemoveBody for O(1) removal.
	index int

	wakeupListeners  []func()
	sleepyListeners  []func()
	sleepListeners   []func()
	collideListeners []func(CollideEvent)
}

// BodyConfig configures a new Body. Zero-value fields fall back to the
// library defaults noted per field.
type BodyConfig struct {
	Type       BodyType
	Position   Vec3
	Quaternion Quaternion // defaults to IdentityQuaternion if zero-value
	Mass       float32    // ignored for BodyStatic/BodyKinematic
	Material   *Material

	LinearDamping  float32 // default 0.01
	AngularDamping float32 // default 0.01
	LinearFactor   Vec3    // defaults to {1,1,1}
	AngularFactor  Vec3    // defaults to {1,1,1}

	AllowSleep      bool
	SleepSpeedLimit float32 // default 0.1
	SleepTimeLimit  float32 // default 1.0

	CollisionFilterGroup int32 // default 1
	CollisionFilterMask  int32 // default -1 (all)
	CollisionResponse    bool  // default true; Configure via pointer if false needed
}

// NewBody constructs a Body from cfg, applying defaults for zero-value
// fields.
func NewBody(cfg BodyConfig) *Body {
	quat := cfg.Quaternion
	if quat == (Quaternion{}) {
		quat = IdentityQuaternion()
	}
	linFactor := cfg.LinearFactor
	if linFactor == (Vec3{}) {
		linFactor = Vec3{1, 1, 1}
	}
	angFactor := cfg.AngularFactor
	if angFactor == (Vec3{}) {
		angFactor = Vec3{1, 1, 1}
	}
	group := cfg.CollisionFilterGroup
	if group == 0 {
		group = 1
	}
	mask := cfg.CollisionFilterMask
	if mask == 0 {
		mask = -1
	}
	sleepSpeedLimit := cfg.SleepSpeedLimit
	if sleepSpeedLimit == 0 {
		sleepSpeedLimit = 0.1
	}
	sleepTimeLimit := cfg.SleepTimeLimit
	if sleepTimeLimit == 0 {
		sleepTimeLimit = 1.0
	}
	linearDamping := cfg.LinearDamping
	if linearDamping == 0 {
		linearDamping = 0.01
	}
	angularDamping := cfg.AngularDamping
	if angularDamping == 0 {
		angularDamping = 0.01
	}

	b := &Body{
		ID:                   nextBodyID(),
		Type:                 cfg.Type,
		Position:             cfg.Position,
		PreviousPosition:     cfg.Position,
		InterpolatedPosition: cfg.Position,
		Quaternion:               quat,
		PreviousQuaternion:       quat,
		InterpolatedQuaternion:   quat,
		Material:             cfg.Material,
		LinearDamping:        linearDamping,
		AngularDamping:       angularDamping,
		LinearFactor:         linFactor,
		AngularFactor:        angFactor,
		AllowSleep:           cfg.AllowSleep,
		SleepSpeedLimit:      sleepSpeedLimit,
		SleepTimeLimit:       sleepTimeLimit,
		CollisionFilterGroup: group,
		CollisionFilterMask:  mask,
		CollisionResponse:    true,
		index:                -1,
	}
	if cfg.Type == BodyDynamic {
		b.Mass = cfg.Mass
	}
	b.UpdateMassProperties()
	return b
}

// AddShape attaches shape at the given local offset/orientation and
// recomputes mass properties. orientation defaults to identity when the
// zero Quaternion is passed.
func (b *Body) AddShape(shape *Shape, offset Vec3, orientation Quaternion) {
	if orientation == (Quaternion{}) {
		orientation = IdentityQuaternion()
	}
	shape.body = b
	b.Shapes = append(b.Shapes, shape)
	b.ShapeOffsets = append(b.ShapeOffsets, offset)
	b.ShapeOrientations = append(b.ShapeOrientations, orientation)
	b.UpdateMassProperties()
}

// RemoveShape detaches shape, if present, and recomputes mass
// properties.
func (b *Body) RemoveShape(shape *Shape) {
	for i, s := range b.Shapes {
		if s == shape {
			b.Shapes = append(b.Shapes[:i], b.Shapes[i+1:]...)
			b.ShapeOffsets = append(b.ShapeOffsets[:i], b.ShapeOffsets[i+1:]...)
			b.ShapeOrientations = append(b.ShapeOrientations[:i], b.ShapeOrientations[i+1:]...)
			shape.body = nil
			b.UpdateMassProperties()
			return
		}
	}
}

// UpdateMassProperties recomputes InvMass and the local/world inverse
// inertia tensors from the current Mass and Shapes. Static and
// kinematic bodies always end up with InvMass 0 and zero inverse
// inertia, making them immovable under forces/impulses.
func (b *Body) UpdateMassProperties() {
	if b.Type != BodyDynamic || b.Mass <= 0 {
		b.InvMass = 0
		b.InertiaLocal = Vec3Zero
		b.InvInertiaLocal = Vec3Zero
		b.UpdateInertiaWorld(true)
		return
	}
	b.InvMass = 1 / b.Mass

	var inertia Vec3
	for i, shape := range b.Shapes {
		shapeInertia := shape.Geometry.CalculateLocalInertia(b.Mass)
		offset := b.ShapeOffsets[i]
		// Parallel-axis contribution from the shape's offset from the
		// body's center of mass (orientation-independent: only the
		// offset distance, not the shape's local orientation, enters
		// the diagonal approximation used throughout).
		d2 := Vec3{offset.Y*offset.Y + offset.Z*offset.Z, offset.X*offset.X + offset.Z*offset.Z, offset.X*offset.X + offset.Y*offset.Y}
		inertia = inertia.Add(shapeInertia).Add(d2.Scale(b.Mass))
	}
	b.InertiaLocal = inertia
	b.InvInertiaLocal = Vec3{invOrZero(inertia.X), invOrZero(inertia.Y), invOrZero(inertia.Z)}
	b.UpdateInertiaWorld(true)
}

func invOrZero(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// UpdateInertiaWorld recomputes InvInertiaWorld from InvInertiaLocal and
// the current orientation. Without force, a body whose InvInertiaLocal
// is zero is left untouched; every caller in this package passes true.
func (b *Body) UpdateInertiaWorld(force bool) {
	if b.InvInertiaLocal == Vec3Zero && !force {
		return
	}
	var m Mat3
	m.SetRotationFromQuaternion(b.Quaternion)
	b.InvInertiaWorld = m.ScaleColumns(b.InvInertiaLocal).Mmult(m.Transpose())
}

// PointToWorldFrame converts a point local to the body into world space.
func (b *Body) PointToWorldFrame(p Vec3) Vec3 {
	return PointToWorldFrame(Transform{Position: b.Position, Quaternion: b.Quaternion}, p)
}

// PointToLocalFrame converts a world point into the body's local frame.
func (b *Body) PointToLocalFrame(p Vec3) Vec3 {
	return PointToLocalFrame(Transform{Position: b.Position, Quaternion: b.Quaternion}, p)
}

// VectorToWorldFrame rotates a local direction into world space.
func (b *Body) VectorToWorldFrame(v Vec3) Vec3 {
	return VectorToWorldFrame(Transform{Position: b.Position, Quaternion: b.Quaternion}, v)
}

// ApplyForce accumulates force at worldPoint (a world-space position)
// into Force/Torque. Has no effect on non-dynamic bodies.
func (b *Body) ApplyForce(force, worldPoint Vec3) {
	if b.Type != BodyDynamic {
		return
	}
	b.Force = b.Force.Add(force)
	r := worldPoint.Sub(b.Position)
	b.Torque = b.Torque.Add(r.Cross(force))
}

// ApplyLocalForce is ApplyForce with both arguments expressed in the
// body's local frame.
func (b *Body) ApplyLocalForce(localForce, localPoint Vec3) {
	worldForce := b.VectorToWorldFrame(localForce)
	worldPoint := b.PointToWorldFrame(localPoint)
	b.ApplyForce(worldForce, worldPoint)
}

// ApplyImpulse instantaneously changes Velocity/AngularVelocity by
// impulse applied at worldPoint. Has no effect on non-dynamic bodies.
func (b *Body) ApplyImpulse(impulse, worldPoint Vec3) {
	if b.Type != BodyDynamic {
		return
	}
	r := worldPoint.Sub(b.Position)
	velocityDelta := impulse.Scale(b.InvMass)
	b.Velocity = b.Velocity.Add(velocityDelta)
	angularDelta := r.Cross(impulse)
	b.AngularVelocity = b.AngularVelocity.Add(b.InvInertiaWorld.Vmult(angularDelta))
}

// ApplyLocalImpulse is ApplyImpulse with both arguments expressed in the
// body's local frame.
func (b *Body) ApplyLocalImpulse(localImpulse, localPoint Vec3) {
	worldImpulse := b.VectorToWorldFrame(localImpulse)
	worldPoint := b.PointToWorldFrame(localPoint)
	b.ApplyImpulse(worldImpulse, worldPoint)
}

// GetVelocityAtWorldPoint returns the linear velocity of the material
// point of b currently located at worldPoint, including the
// contribution of angular velocity.
func (b *Body) GetVelocityAtWorldPoint(worldPoint Vec3) Vec3 {
	r := worldPoint.Sub(b.Position)
	return b.AngularVelocity.Cross(r).Add(b.Velocity)
}

// ClearForces zeroes Force and Torque; called once per step after
// integration.
func (b *Body) ClearForces() {
	b.Force = Vec3Zero
	b.Torque = Vec3Zero
}

// ComputeAABB returns the union of all of b's shapes' world AABBs. A
// body with no shapes returns a degenerate AABB at its position.
func (b *Body) ComputeAABB() AABB {
	if len(b.Shapes) == 0 {
		return AABB{LowerBound: b.Position, UpperBound: b.Position}
	}
	var out AABB
	for i, shape := range b.Shapes {
		offset := b.ShapeOffsets[i]
		orientation := b.ShapeOrientations[i]
		shapePos := b.Position.Add(b.Quaternion.Vmult(offset))
		shapeQuat := b.Quaternion.Mult(orientation)
		shapeAABB := shape.Geometry.CalculateWorldAABB(shapePos, shapeQuat)
		if i == 0 {
			out = shapeAABB
		} else {
			out.Extend(shapeAABB)
		}
	}
	return out
}

// WakeUp transitions b to BodyAwake, resetting the sleepy timer, and
// dispatches OnWakeup listeners if it was previously sleeping or sleepy.
func (b *Body) WakeUp() {
	wasAsleep := b.SleepState != BodyAwake
	b.SleepState = BodyAwake
	b.timeLastSleepy = 0
	if wasAsleep {
		b.dispatchWakeup()
	}
}

// Sleep forces b directly into BodySleeping, zeroing its velocities and
// dispatching OnSleep listeners.
func (b *Body) Sleep() {
	b.SleepState = BodySleeping
	b.Velocity = Vec3Zero
	b.AngularVelocity = Vec3Zero
	b.wakeUpAfterNarrowphase = false
	b.dispatchSleep()
}

// sleepTick advances b's sleep state machine by dt given the current
// simulation time, per spec: a body below SleepSpeedLimit accumulates
// sleepy time and transitions Awake -> Sleepy -> Sleeping once
// SleepTimeLimit elapses; any motion above the limit resets it to
// Awake.
func (b *Body) sleepTick(time float32) {
	if !b.AllowSleep || b.Type != BodyDynamic {
		return
	}
	speedSquared := b.Velocity.LengthSquared() + b.AngularVelocity.LengthSquared()
	speedLimitSquared := b.SleepSpeedLimit * b.SleepSpeedLimit

	if speedSquared >= speedLimitSquared {
		b.timeLastSleepy = time
		if b.SleepState != BodyAwake {
			wasAsleep := b.SleepState == BodySleeping
			b.SleepState = BodyAwake
			if wasAsleep {
				b.dispatchWakeup()
			}
		}
		return
	}

	if b.SleepState == BodyAwake {
		b.SleepState = BodySleepy
		b.timeLastSleepy = time
		b.dispatchSleepy()
	}
	if b.SleepState == BodySleepy && time-b.timeLastSleepy > b.SleepTimeLimit {
		b.Sleep()
	}
}

// IsSleeping reports whether b is currently in BodySleeping.
func (b *Body) IsSleeping() bool { return b.SleepState == BodySleeping }
