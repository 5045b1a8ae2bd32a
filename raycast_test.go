package gophys

import "testing"

func TestIntersectSphereHitsFromOutside(t *testing.T) {
	ray := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, 5})
	point, normal, dist, ok := intersectSphere(ray, Vec3Zero, 1)
	if !ok {
		t.Fatal("expected a hit")
	}
	if point.Z != -1 {
		t.Errorf("hit point Z = %v, want -1 (near side of the sphere)", point.Z)
	}
	if normal.Z != -1 {
		t.Errorf("hit normal = %v, want pointing back at the ray origin", normal)
	}
	if dist != 4 {
		t.Errorf("dist = %v, want 4", dist)
	}
}

func TestIntersectSphereMissesWhenRayPointsAway(t *testing.T) {
	ray := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, -10})
	_, _, _, ok := intersectSphere(ray, Vec3Zero, 1)
	if ok {
		t.Error("a ray pointing away from the sphere should not hit")
	}
}

func TestIntersectPlaneParallelMisses(t *testing.T) {
	ray := NewRay(Vec3{0, 0, 1}, Vec3{1, 0, 1})
	_, _, _, ok := intersectPlane(ray, Vec3Zero, Vec3{0, 0, 1})
	if ok {
		t.Error("a ray parallel to the plane should never hit it")
	}
}

func TestIntersectPlaneHeadOn(t *testing.T) {
	ray := NewRay(Vec3{0, 0, 5}, Vec3{0, 0, -5})
	point, _, dist, ok := intersectPlane(ray, Vec3Zero, Vec3{0, 0, 1})
	if !ok {
		t.Fatal("expected a hit")
	}
	if point != Vec3Zero || dist != 5 {
		t.Errorf("point=%v dist=%v, want origin at distance 5", point, dist)
	}
}

func TestIntersectBodyAppliesCollisionFilter(t *testing.T) {
	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 0}})
	sphere, _ := NewSphere(1)
	shape := NewShape(sphere)
	shape.CollisionFilterGroup = 2
	b.AddShape(shape, Vec3Zero, Quaternion{})

	ray := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, 5})
	opts := DefaultRaycastOptions()
	opts.CollisionFilterMask = 1 // doesn't overlap the shape's group 2

	hit := ray.IntersectBody(b, opts, func(RaycastResult) bool { return true })
	if hit {
		t.Error("IntersectBody should reject the shape when the filter mask excludes its group")
	}
}

func TestIntersectBodySkipsNoCollisionResponseWhenChecked(t *testing.T) {
	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 0}})
	sphere, _ := NewSphere(1)
	shape := NewShape(sphere)
	shape.CollisionResponse = false
	b.AddShape(shape, Vec3Zero, Quaternion{})

	ray := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, 5})
	opts := DefaultRaycastOptions()

	hit := ray.IntersectBody(b, opts, func(RaycastResult) bool { return true })
	if hit {
		t.Error("a trigger shape (CollisionResponse == false) should be skipped when CheckCollisionResponse is set")
	}
}

func TestIntersectWorldRayModeAnyStopsAtFirstHit(t *testing.T) {
	a := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 3}})
	sphereA, _ := NewSphere(0.5)
	a.AddShape(NewShape(sphereA), Vec3Zero, Quaternion{})
	b := NewBody(BodyConfig{Type: BodyDynamic, Mass: 1, Position: Vec3{0, 0, 8}})
	sphereB, _ := NewSphere(0.5)
	b.AddShape(NewShape(sphereB), Vec3Zero, Quaternion{})

	ray := NewRay(Vec3{0, 0, 0}, Vec3{0, 0, 20})
	opts := DefaultRaycastOptions()
	opts.Mode = RayModeAny

	results := ray.IntersectWorld([]*Body{a, b}, opts)
	if len(results) != 1 {
		t.Fatalf("RayModeAny returned %d results, want exactly 1", len(results))
	}
}
