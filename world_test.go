package gophys

import "testing"

func addGround(w *World) *Body {
	ground := NewBody(BodyConfig{Type: BodyStatic})
	ground.AddShape(NewShape(NewPlane()), Vec3Zero, Quaternion{})
	w.AddBody(ground)
	return ground
}

func addFallingSphere(w *World, z float32) *Body {
	ball := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, z}})
	sphere, _ := NewSphere(0.5)
	ball.AddShape(NewShape(sphere), Vec3Zero, Quaternion{})
	w.AddBody(ball)
	return ball
}

func TestWorldSphereFallsAsleepOnGround(t *testing.T) {
	w := NewWorld()
	w.Gravity = Vec3{0, 0, -9.82}
	addGround(w)
	ball := addFallingSphere(w, 5)
	ball.AllowSleep = true

	dt := float32(1.0 / 60)
	for i := 0; i < 600; i++ {
		w.Step(dt, 0, 0)
	}

	if ball.Position.Z < 0.45 || ball.Position.Z > 0.55 {
		t.Errorf("ball settled at Z=%v, want close to 0.5 (resting on the plane)", ball.Position.Z)
	}
	if ball.SleepState != BodySleeping {
		t.Errorf("ball SleepState = %v, want BodySleeping after 10s at rest", ball.SleepState)
	}
}

func TestWorldBeginEndContactEvents(t *testing.T) {
	w := NewWorld()
	w.Gravity = Vec3{0, 0, -9.82}
	addGround(w)
	ball := addFallingSphere(w, 5)

	var begins, ends int
	w.OnBeginContact(func(e BeginContactEvent) { begins++ })
	w.OnEndContact(func(e EndContactEvent) { ends++ })

	dt := float32(1.0 / 60)
	for i := 0; i < 600; i++ {
		w.Step(dt, 0, 0)
	}

	if begins == 0 {
		t.Error("expected at least one BeginContactEvent once the ball lands")
	}
	if ends != 0 {
		t.Errorf("ends = %d, want 0 (the ball never leaves the ground)", ends)
	}

	// Wake the ball back up and pull it off the ground to force an EndContactEvent.
	ball.WakeUp()
	ball.Position.Z = 10
	for i := 0; i < 120; i++ {
		w.Step(dt, 0, 0)
	}
	if ends == 0 {
		t.Error("expected an EndContactEvent once the ball leaves the ground")
	}
}

func TestWorldTriggerShapeProducesNoContactResponse(t *testing.T) {
	w := NewWorld()
	ground := NewBody(BodyConfig{Type: BodyStatic})
	groundShape := NewShape(NewPlane())
	ground.AddShape(groundShape, Vec3Zero, Quaternion{})
	w.AddBody(ground)

	ball := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 0.25}})
	sphere, _ := NewSphere(0.5)
	ballShape := NewShape(sphere)
	ballShape.CollisionResponse = false
	ball.AddShape(ballShape, Vec3Zero, Quaternion{})
	w.AddBody(ball)

	var triggered bool
	w.OnBeginTrigger(func(e BeginTriggerEvent) { triggered = true })

	w.Gravity = Vec3{0, 0, -9.82}
	dt := float32(1.0 / 60)
	for i := 0; i < 30; i++ {
		w.Step(dt, 0, 0)
	}

	if !triggered {
		t.Error("expected a BeginTriggerEvent since the ball's shape has CollisionResponse == false")
	}
	if ball.Position.Z > 0 {
		t.Errorf("ball.Position.Z = %v, want it to have fallen through the trigger plane", ball.Position.Z)
	}
}

func TestWorldStepInterpolatesWithVariableTimestep(t *testing.T) {
	w := NewWorld()
	w.Gravity = Vec3Zero
	ball := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3Zero})
	ball.Velocity = Vec3{1, 0, 0}
	sphere, _ := NewSphere(0.5)
	ball.AddShape(NewShape(sphere), Vec3Zero, Quaternion{})
	w.AddBody(ball)

	dt := float32(1.0 / 60)
	w.Step(dt, dt*1.5, 10)

	if ball.InterpolatedPosition.X <= 0 || ball.InterpolatedPosition.X >= ball.Position.X {
		t.Errorf("InterpolatedPosition.X = %v, want strictly between 0 and Position.X = %v",
			ball.InterpolatedPosition.X, ball.Position.X)
	}
}

func TestWorldRaycastClosestHitsNearestSphere(t *testing.T) {
	w := NewWorld()
	near := addFallingSphere(w, 5)
	near.Position = Vec3{0, 0, 5}
	far := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 10}})
	farSphere, _ := NewSphere(0.5)
	far.AddShape(NewShape(farSphere), Vec3Zero, Quaternion{})
	w.AddBody(far)

	opts := DefaultRaycastOptions()
	result, hit := w.RaycastClosest(Vec3{0, 0, 0}, Vec3{0, 0, 20}, opts)
	if !hit {
		t.Fatal("expected a raycast hit")
	}
	if result.Body != near {
		t.Error("RaycastClosest should report the nearer sphere, not the farther one")
	}
}

func TestWorldRaycastMissesWhenFilteredOut(t *testing.T) {
	w := NewWorld()
	ball := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 5}})
	sphere, _ := NewSphere(0.5)
	shape := NewShape(sphere)
	shape.CollisionFilterGroup = 2
	ball.AddShape(shape, Vec3Zero, Quaternion{})
	w.AddBody(ball)

	opts := DefaultRaycastOptions()
	opts.CollisionFilterMask = 1 // doesn't overlap group 2
	_, hit := w.RaycastClosest(Vec3{0, 0, 0}, Vec3{0, 0, 20}, opts)
	if hit {
		t.Error("expected no hit: ray's filter mask excludes the sphere's collision group")
	}
}

func TestWorldRaycastAllReturnsSortedByDistance(t *testing.T) {
	w := NewWorld()
	for _, z := range []float32{3, 9, 6} {
		b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, z}})
		sphere, _ := NewSphere(0.5)
		b.AddShape(NewShape(sphere), Vec3Zero, Quaternion{})
		w.AddBody(b)
	}

	results := w.RaycastAll(Vec3{0, 0, 0}, Vec3{0, 0, 20}, DefaultRaycastOptions())
	if len(results) != 3 {
		t.Fatalf("RaycastAll returned %d hits, want 3", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Distance < results[i-1].Distance {
			t.Errorf("RaycastAll results not sorted: %v then %v", results[i-1].Distance, results[i].Distance)
		}
	}
}

func TestWorldAddRemoveBodyDispatchesListeners(t *testing.T) {
	w := NewWorld()
	var added, removed int
	w.OnAddBody(func(b *Body) { added++ })
	w.OnRemoveBody(func(b *Body) { removed++ })

	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1})
	w.AddBody(b)
	w.AddBody(b) // re-adding an already-registered body must be a no-op
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}

	w.RemoveBody(b)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok := w.GetBodyByID(b.ID); ok {
		t.Error("body should no longer be resolvable by ID after RemoveBody")
	}
}

func TestWorldDistanceConstraintAcrossSteps(t *testing.T) {
	w := NewWorld()
	w.Gravity = Vec3Zero
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3Zero})
	sa, _ := NewSphere(0.1)
	a.AddShape(NewShape(sa), Vec3Zero, Quaternion{})
	w.AddBody(a)

	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{1, 0, 0}})
	sb, _ := NewSphere(0.1)
	b.AddShape(NewShape(sb), Vec3Zero, Quaternion{})
	w.AddBody(b)

	w.AddConstraint(NewDistanceConstraint(a, b, 3, 1e6))

	dt := float32(1.0 / 60)
	for i := 0; i < 120; i++ {
		w.Step(dt, 0, 0)
	}

	gap := a.Position.Distance(b.Position)
	if gap < 2.5 || gap > 3.5 {
		t.Errorf("constrained separation = %v, want close to 3", gap)
	}
}
