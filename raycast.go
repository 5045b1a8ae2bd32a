package gophys

import "math"

// intersectSphere returns the nearest hit of ray against a sphere of
// radius centered at pos, if any.
func intersectSphere(ray Ray, pos Vec3, radius float32) (Vec3, Vec3, float32, bool) {
	m := ray.From.Sub(pos)
	b := m.Dot(ray.Direction)
	c := m.Dot(m) - radius*radius
	if c > 0 && b > 0 {
		return Vec3{}, Vec3{}, 0, false
	}
	discr := b*b - c
	if discr < 0 {
		return Vec3{}, Vec3{}, 0, false
	}
	t := -b - float32(math.Sqrt(float64(discr)))
	if t < 0 {
		t = 0
	}
	if t > ray.Length {
		return Vec3{}, Vec3{}, 0, false
	}
	point := ray.From.Add(ray.Direction.Scale(t))
	normal := point.Sub(pos).Unit()
	return point, normal, t, true
}

// intersectPlane returns the hit of ray against the infinite plane at
// planePos with normal planeNormal, if the ray isn't parallel to it.
func intersectPlane(ray Ray, planePos Vec3, planeNormal Vec3) (Vec3, Vec3, float32, bool) {
	denom := ray.Direction.Dot(planeNormal)
	if denom == 0 {
		return Vec3{}, Vec3{}, 0, false
	}
	t := planePos.Sub(ray.From).Dot(planeNormal) / denom
	if t < 0 || t > ray.Length {
		return Vec3{}, Vec3{}, 0, false
	}
	point := ray.From.Add(ray.Direction.Scale(t))
	return point, planeNormal, t, true
}

// intersectConvex slabs the ray against every face plane of hull
// (placed at hullPos/hullQuat), tracking the tightest [tNear, tFar]
// interval; this works for any convex hull, box included.
func intersectConvex(ray Ray, hull *ConvexPolyhedron, hullPos Vec3, hullQuat Quaternion) (Vec3, Vec3, float32, bool) {
	hull.UpdateWorldVertices(hullPos, hullQuat)
	worldVerts := hull.WorldVertices()
	worldNormals := hull.WorldFaceNormals()

	tNear, tFar := float32(0), ray.Length
	var hitNormal Vec3
	for i, face := range hull.Faces {
		n := worldNormals[i]
		if n == Vec3Zero {
			continue
		}
		planePoint := worldVerts[face[0]]
		denom := ray.Direction.Dot(n)
		dist := planePoint.Sub(ray.From).Dot(n)

		if denom == 0 {
			if dist < 0 {
				return Vec3{}, Vec3{}, 0, false // ray origin outside this face's plane, parallel: misses entirely
			}
			continue
		}
		t := dist / denom
		if denom < 0 {
			if t > tNear {
				tNear = t
				hitNormal = n
			}
		} else {
			if t < tFar {
				tFar = t
			}
		}
		if tNear > tFar {
			return Vec3{}, Vec3{}, 0, false
		}
	}
	if hitNormal == Vec3Zero {
		return Vec3{}, Vec3{}, 0, false // ray origin starts inside the hull: no entering surface
	}
	point := ray.From.Add(ray.Direction.Scale(tNear))
	return point, hitNormal, tNear, true
}

func intersectTriangle(ray Ray, a, b, c Vec3) (Vec3, Vec3, float32, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -1e-8 && det < 1e-8 {
		return Vec3{}, Vec3{}, 0, false
	}
	inv := 1 / det
	s := ray.From.Sub(a)
	u := inv * s.Dot(h)
	if u < 0 || u > 1 {
		return Vec3{}, Vec3{}, 0, false
	}
	q := s.Cross(edge1)
	v := inv * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Vec3{}, Vec3{}, 0, false
	}
	t := inv * edge2.Dot(q)
	if t < 0 || t > ray.Length {
		return Vec3{}, Vec3{}, 0, false
	}
	normal := edge1.Cross(edge2).Unit()
	point := ray.From.Add(ray.Direction.Scale(t))
	return point, normal, t, true
}

func intersectTrimesh(ray Ray, tm *Trimesh, meshPos Vec3, meshQuat Quaternion) (Vec3, Vec3, float32, bool) {
	localFrom := PointToLocalFrame(Transform{Position: meshPos, Quaternion: meshQuat}, ray.From)
	localTo := PointToLocalFrame(Transform{Position: meshPos, Quaternion: meshQuat}, ray.To)
	localRay := NewRay(localFrom, localTo)

	bestT := float32(math.Inf(1))
	var bestPoint, bestNormal Vec3
	found := false
	for _, tri := range tm.TrianglesInAABB(localRayAABB(localRay)) {
		a, b, c := tm.Triangle(tri)
		if p, n, t, ok := intersectTriangle(localRay, a, b, c); ok && t < bestT {
			bestT, bestPoint, bestNormal, found = t, p, n, true
		}
	}
	if !found {
		return Vec3{}, Vec3{}, 0, false
	}
	worldPoint := meshQuat.Vmult(bestPoint).Add(meshPos)
	worldNormal := meshQuat.Vmult(bestNormal)
	return worldPoint, worldNormal, bestT, true
}

func localRayAABB(r Ray) AABB {
	var out AABB
	out.SetFromPoints([]Vec3{r.From, r.To}, Vec3Zero, IdentityQuaternion(), 0)
	return out
}

func intersectHeightfield(ray Ray, h *Heightfield, hfPos Vec3, hfQuat Quaternion) (Vec3, Vec3, float32, bool) {
	localFrom := PointToLocalFrame(Transform{Position: hfPos, Quaternion: hfQuat}, ray.From)
	localTo := PointToLocalFrame(Transform{Position: hfPos, Quaternion: hfQuat}, ray.To)
	localRay := NewRay(localFrom, localTo)
	localAABB := localRayAABB(localRay)

	bestT := float32(math.Inf(1))
	var bestPoint, bestNormal Vec3
	found := false
	for _, cell := range heightfieldCandidateCells(h, localAABB) {
		for _, upper := range [...]bool{true, false} {
			pillar := h.PillarConvex(cell[0], cell[1], upper)
			if pillar == nil {
				continue
			}
			if p, n, t, ok := intersectConvex(localRay, pillar, Vec3Zero, IdentityQuaternion()); ok && t < bestT {
				bestT, bestPoint, bestNormal, found = t, p, n, true
			}
		}
	}
	if !found {
		return Vec3{}, Vec3{}, 0, false
	}
	worldPoint := hfQuat.Vmult(bestPoint).Add(hfPos)
	worldNormal := hfQuat.Vmult(bestNormal)
	return worldPoint, worldNormal, bestT, true
}

// intersectShape dispatches a ray against a single world-placed Shape.
func intersectShape(ray Ray, shape *Shape, pos Vec3, quat Quaternion) (Vec3, Vec3, float32, bool) {
	switch g := shape.Geometry.(type) {
	case *Sphere:
		return intersectSphere(ray, pos, g.Radius)
	case *Plane:
		return intersectPlane(ray, pos, quat.Vmult(Vec3UnitZ))
	case *Box:
		return intersectConvex(ray, g.ConvexRepresentation(), pos, quat)
	case *ConvexPolyhedron:
		return intersectConvex(ray, g, pos, quat)
	case *Trimesh:
		return intersectTrimesh(ray, g, pos, quat)
	case *Heightfield:
		return intersectHeightfield(ray, g, pos, quat)
	default:
		return Vec3{}, Vec3{}, 0, false
	}
}

// IntersectBody casts ray against every shape of body and invokes
// report for each hit found, honoring opts.SkipBackfaces,
// opts.CheckCollisionResponse and the collision filter. It returns
// whether any hit stopped the cast (report returned false, or
// opts.Mode is RayModeClosest/RayModeAny and a hit was found).
func (ray Ray) IntersectBody(body *Body, opts RaycastOptions, report func(RaycastResult) bool) bool {
	for i, shape := range body.Shapes {
		if opts.CheckCollisionResponse && !shape.CollisionResponse {
			continue
		}
		if shape.CollisionFilterGroup&opts.CollisionFilterMask == 0 || opts.CollisionFilterGroup&shape.CollisionFilterMask == 0 {
			continue
		}
		pos, quat := shapeWorldTransform(body, i)
		point, normal, distance, ok := intersectShape(ray, shape, pos, quat)
		if !ok {
			continue
		}
		if opts.SkipBackfaces && ray.isBackface(normal) {
			continue
		}
		result := RaycastResult{
			HasHit: true, Body: body, Shape: shape,
			HitPointWorld: point, HitNormalWorld: normal, Distance: distance,
		}
		stop := !report(result)
		if stop || opts.Mode == RayModeClosest || opts.Mode == RayModeAny {
			return true
		}
	}
	return false
}

// IntersectWorld casts ray against every body in bodies (already
// AABB-pruned by the caller, typically via broadphase.AABBQuery) and
// resolves opts.Mode:
//   - RayModeAny stops at the first hit found across any body/shape.
//   - RayModeClosest collects every hit and returns only the nearest.
//   - RayModeAll invokes opts.Callback for every hit, in body order.
func (ray Ray) IntersectWorld(bodies []*Body, opts RaycastOptions) []RaycastResult {
	switch opts.Mode {
	case RayModeAny:
		var out []RaycastResult
		for _, body := range bodies {
			ray.IntersectBody(body, opts, func(r RaycastResult) bool {
				out = append(out, r)
				return false
			})
			if len(out) > 0 {
				return out
			}
		}
		return out
	case RayModeAll:
		var out []RaycastResult
		for _, body := range bodies {
			ray.IntersectBody(body, opts, func(r RaycastResult) bool {
				out = append(out, r)
				if opts.Callback != nil {
					return opts.Callback(r)
				}
				return true
			})
		}
		return out
	default: // RayModeClosest
		var best *RaycastResult
		for _, body := range bodies {
			ray.IntersectBody(body, opts, func(r RaycastResult) bool {
				if best == nil || r.Distance < best.Distance {
					rc := r
					best = &rc
				}
				return true
			})
		}
		if best == nil {
			return nil
		}
		return []RaycastResult{*best}
	}
}
