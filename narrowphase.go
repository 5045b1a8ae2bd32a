package gophys

import "math"

// narrowphaseBucket groups shape kinds into the families the collision
// routines below actually discriminate on: Box reduces to its cached
// ConvexPolyhedron, so it shares every routine with ShapeKindConvex.
type narrowphaseBucket int

const (
	bucketParticle narrowphaseBucket = iota
	bucketSphere
	bucketPlane
	bucketConvex // Box or ConvexPolyhedron
	bucketHeightfield
	bucketTrimesh
	bucketUnsupported
)

func bucketOf(k ShapeKind) narrowphaseBucket {
	switch k {
	case ShapeKindParticle:
		return bucketParticle
	case ShapeKindSphere:
		return bucketSphere
	case ShapeKindPlane:
		return bucketPlane
	case ShapeKindBox, ShapeKindConvex:
		return bucketConvex
	case ShapeKindHeightfield:
		return bucketHeightfield
	case ShapeKindTrimesh:
		return bucketTrimesh
	default:
		return bucketUnsupported
	}
}

// asConvex returns shape's ConvexPolyhedron representation, whether it
// is natively a ConvexPolyhedron or a Box's cached convexRepr.
func asConvex(s *Shape) *ConvexPolyhedron {
	switch g := s.Geometry.(type) {
	case *ConvexPolyhedron:
		return g
	case *Box:
		return g.ConvexRepresentation()
	default:
		return nil
	}
}

// Narrowphase generates contact/friction equations for broadphase pairs
// by dispatching on each shape-pair's narrowphaseBucket combination.
// Equation pooling (contactPool/frictionPool) amortizes allocation
// across steps: every Reset call returns the previous step's equations
// before new ones are acquired.
type Narrowphase struct {
	contactPool  *Pool[ContactEquation]
	frictionPool *Pool[FrictionEquation]

	Contacts  []*ContactEquation
	Frictions []*FrictionEquation

	// ContactingBodies lists each unique (bodyA, bodyB) pair that
	// produced at least one shape contact this step, regardless of
	// whether the contact generates solver equations (used by World to
	// drive begin/end contact and trigger events).
	ContactingBodies []BodyPair

	// DefaultContactMaterial is used whenever neither shape's Material
	// (nor the world's contact-material table) supplies one.
	DefaultContactMaterial *ContactMaterial
	ContactMaterialTable   *TupleDictionary[*ContactMaterial]
}

// BodyPair is an unordered pair of bodies that generated at least one
// contact during a step.
type BodyPair struct{ BodyA, BodyB *Body }

func NewNarrowphase(defaultContactMaterial *ContactMaterial) *Narrowphase {
	return &Narrowphase{
		contactPool:            NewPool[ContactEquation](func() *ContactEquation { return &ContactEquation{} }),
		frictionPool:           NewPool[FrictionEquation](func() *FrictionEquation { return &FrictionEquation{} }),
		DefaultContactMaterial: defaultContactMaterial,
		ContactMaterialTable:   NewTupleDictionary[*ContactMaterial](),
	}
}

// Reset returns the previous step's equations to their pools and clears
// the output buffers, ready for a new Generate call.
func (np *Narrowphase) Reset() {
	for _, c := range np.Contacts {
		np.contactPool.Release(c)
	}
	for _, f := range np.Frictions {
		np.frictionPool.Release(f)
	}
	np.Contacts = np.Contacts[:0]
	np.Frictions = np.Frictions[:0]
	np.ContactingBodies = np.ContactingBodies[:0]
}

func (np *Narrowphase) contactMaterialFor(a, b *Material) *ContactMaterial {
	if a != nil && b != nil {
		if cm, ok := np.ContactMaterialTable.Get(a.ID, b.ID); ok {
			return cm
		}
	}
	return np.DefaultContactMaterial
}

func shapeWorldTransform(body *Body, idx int) (Vec3, Quaternion) {
	offset := body.ShapeOffsets[idx]
	orientation := body.ShapeOrientations[idx]
	pos := body.Position.Add(body.Quaternion.Vmult(offset))
	quat := body.Quaternion.Mult(orientation)
	return pos, quat
}

// Generate runs narrowphase over every broadphase-reported body pair
// and appends the resulting contact/friction equations to np.Contacts /
// np.Frictions. justTest short-circuits after the first shape contact
// found for the whole pair list, returning true immediately (used for
// cheap overlap queries; when true, the output buffers are left
// partially populated and must not be relied on).
func (np *Narrowphase) Generate(pairsA, pairsB []*Body, justTest bool) bool {
	seenBodyPairs := make(map[[2]uint64]bool)
	any := false
	for p := range pairsA {
		bi, bj := pairsA[p], pairsB[p]
		pairHasContact := false
		for si := range bi.Shapes {
			shapeA := bi.Shapes[si]
			posA, quatA := shapeWorldTransform(bi, si)
			for sj := range bj.Shapes {
				shapeB := bj.Shapes[sj]
				if !collisionFilterPasses(shapeA, shapeB) {
					continue
				}
				posB, quatB := shapeWorldTransform(bj, sj)
				if np.dispatch(bi, bj, shapeA, shapeB, posA, quatA, posB, quatB, justTest) {
					pairHasContact = true
					any = true
					if justTest {
						return true
					}
				}
			}
		}
		if pairHasContact {
			a, b := bi.ID, bj.ID
			bodyA, bodyB := bi, bj
			if a > b {
				bodyA, bodyB = bj, bi
				a, b = b, a
			}
			key := [2]uint64{a, b}
			if !seenBodyPairs[key] {
				seenBodyPairs[key] = true
				np.ContactingBodies = append(np.ContactingBodies, BodyPair{bodyA, bodyB})
			}
		}
	}
	return any
}

func collisionFilterPasses(a, b *Shape) bool {
	return a.CollisionFilterGroup&b.CollisionFilterMask != 0 &&
		b.CollisionFilterGroup&a.CollisionFilterMask != 0
}

// dispatch routes a single shape pair to its geometry routine. It
// returns true iff the shapes overlap; when they do and both shapes
// have CollisionResponse, it also emits, per contact point, a
// ContactEquation and two FrictionEquations into
// np.Contacts/np.Frictions, unless justTest is set.
func (np *Narrowphase) dispatch(bi, bj *Body, shapeA, shapeB *Shape, posA Vec3, quatA Quaternion, posB Vec3, quatB Quaternion, justTest bool) bool {
	ka, kb := bucketOf(shapeA.Kind()), bucketOf(shapeB.Kind())
	if ka > kb {
		return np.dispatch(bj, bi, shapeB, shapeA, posB, quatB, posA, quatA, justTest)
	}

	var points []contactPoint
	var normal Vec3
	var ok bool

	switch {
	case ka == bucketSphere && kb == bucketSphere:
		normal, points, ok = sphereSphereContacts(posA, sphereRadius(shapeA), posB, sphereRadius(shapeB))
	case ka == bucketSphere && kb == bucketPlane:
		normal, points, ok = sphereHalfspaceContacts(posA, sphereRadius(shapeA), posB, quatB.Vmult(Vec3UnitZ))
	case ka == bucketSphere && kb == bucketConvex:
		normal, points, ok = sphereConvexContacts(posA, sphereRadius(shapeA), asConvex(shapeB), posB, quatB)
	case ka == bucketParticle && kb == bucketSphere:
		normal, points, ok = sphereHalfspaceParticleContacts(posA, posB, sphereRadius(shapeB))
	case ka == bucketPlane && kb == bucketConvex:
		normal, points, ok = planeConvexContacts(posA, quatA.Vmult(Vec3UnitZ), asConvex(shapeB), posB, quatB)
	case ka == bucketParticle && kb == bucketPlane:
		normal, points, ok = particlePlaneContacts(posA, posB, quatB.Vmult(Vec3UnitZ))
	case ka == bucketConvex && kb == bucketConvex:
		normal, points, ok = convexConvexContacts(asConvex(shapeA), posA, quatA, asConvex(shapeB), posB, quatB)
	case ka == bucketParticle && kb == bucketConvex:
		normal, points, ok = particleConvexContacts(posA, asConvex(shapeB), posB, quatB)
	case ka == bucketSphere && kb == bucketHeightfield:
		normal, points, ok = sphereHeightfieldContacts(posA, sphereRadius(shapeA), shapeB.Geometry.(*Heightfield), posB, quatB)
	case ka == bucketConvex && kb == bucketHeightfield:
		normal, points, ok = convexHeightfieldContacts(asConvex(shapeA), posA, quatA, shapeB.Geometry.(*Heightfield), posB, quatB)
	case ka == bucketParticle && kb == bucketHeightfield:
		normal, points, ok = particleHeightfieldContacts(posA, shapeB.Geometry.(*Heightfield), posB, quatB)
	case ka == bucketSphere && kb == bucketTrimesh:
		normal, points, ok = sphereTrimeshContacts(posA, sphereRadius(shapeA), shapeB.Geometry.(*Trimesh), posB, quatB)
	case ka == bucketConvex && kb == bucketTrimesh:
		normal, points, ok = convexTrimeshContacts(asConvex(shapeA), posA, quatA, shapeB.Geometry.(*Trimesh), posB, quatB)
	case ka == bucketPlane && kb == bucketTrimesh:
		normal, points, ok = planeTrimeshContacts(posA, quatA.Vmult(Vec3UnitZ), shapeB.Geometry.(*Trimesh), posB, quatB)
	case ka == bucketParticle && kb == bucketTrimesh:
		normal, points, ok = particleTrimeshContacts(posA, shapeB.Geometry.(*Trimesh), posB, quatB)
	default:
		return false
	}
	// Sphere and particle routines against a plane, hull face, heightfield
	// pillar or triangle return that surface's outward normal, which points
	// from B towards A; ContactEquation.Ni points from A towards B.
	if ka <= bucketSphere && kb >= bucketPlane {
		normal = normal.Negate()
	}

	if !ok || justTest {
		return ok
	}

	material := np.contactMaterialFor(shapeA.Material, shapeB.Material)
	respond := shapeA.CollisionResponse && shapeB.CollisionResponse
	for _, cp := range points {
		if respond {
			np.addEquations(bi, bj, cp.Position, normal, material)
		}
	}
	return true
}

func sphereRadius(s *Shape) float32 { return s.Geometry.(*Sphere).Radius }

type contactPoint struct {
	Position Vec3
	Depth    float32
}

func (np *Narrowphase) addEquations(bi, bj *Body, point Vec3, normal Vec3, cm *ContactMaterial) {
	c := np.contactPool.Acquire()
	*c = ContactEquation{Equation: NewEquation(bi, bj, 0, 1e6)}
	c.computeB = c.ComputeB
	c.Ri = point.Sub(bi.Position)
	c.Rj = point.Sub(bj.Position)
	c.Ni = normal
	c.Friction = 0.3
	if cm != nil {
		c.Restitution = cm.Restitution
		c.Stiffness = cm.ContactStiffness
		c.Relaxation = cm.ContactRelaxation
		c.Friction = cm.Friction
	}
	np.Contacts = append(np.Contacts, c)

	t1, t2 := normal.Tangents()
	for _, t := range [...]Vec3{t1, t2} {
		f := np.frictionPool.Acquire()
		*f = FrictionEquation{Equation: NewEquation(bi, bj, 0, 0)}
		f.computeB = f.ComputeB
		f.Ri, f.Rj, f.T = c.Ri, c.Rj, t
		if cm != nil {
			f.Stiffness = cm.FrictionStiffness
			f.Relaxation = cm.FrictionRelaxation
		}
		np.Frictions = append(np.Frictions, f)
	}
}

// --- geometry primitives ---

func sphereSphereContacts(posA Vec3, ra float32, posB Vec3, rb float32) (Vec3, []contactPoint, bool) {
	diff := posB.Sub(posA)
	dist := diff.Length()
	if dist > ra+rb {
		return Vec3{}, nil, false
	}
	normal := Vec3UnitZ
	if dist > 1e-9 {
		normal = diff.Scale(1 / dist)
	}
	depth := ra + rb - dist
	point := posA.Add(normal.Scale(ra - depth/2))
	return normal, []contactPoint{{point, depth}}, true
}

func sphereHalfspaceContacts(center Vec3, radius float32, planePos Vec3, planeNormal Vec3) (Vec3, []contactPoint, bool) {
	d := center.Sub(planePos).Dot(planeNormal) - radius
	if d > 0 {
		return Vec3{}, nil, false
	}
	point := center.Sub(planeNormal.Scale(radius + d/2))
	return planeNormal, []contactPoint{{point, -d}}, true
}

func sphereHalfspaceParticleContacts(particlePos Vec3, center Vec3, radius float32) (Vec3, []contactPoint, bool) {
	diff := center.Sub(particlePos)
	dist := diff.Length()
	if dist > radius {
		return Vec3{}, nil, false
	}
	normal := Vec3UnitZ
	if dist > 1e-9 {
		normal = diff.Scale(1 / dist)
	}
	return normal, []contactPoint{{particlePos, radius - dist}}, true
}

func particlePlaneContacts(particlePos Vec3, planePos Vec3, planeNormal Vec3) (Vec3, []contactPoint, bool) {
	d := particlePos.Sub(planePos).Dot(planeNormal)
	if d > 0 {
		return Vec3{}, nil, false
	}
	return planeNormal, []contactPoint{{particlePos, -d}}, true
}

// sphereConvexContacts approximates sphere-hull contact by finding the
// hull's most-separating face relative to the sphere center. When the
// center lies outside every face's half-space by more than radius, the
// shapes don't touch; otherwise the deepest-penetrating face is treated
// as the contact plane. This does not special-case vertex/edge Voronoi
// regions near a corner, a known simplification for non-primitive hull
// shapes.
func sphereConvexContacts(center Vec3, radius float32, hull *ConvexPolyhedron, hullPos Vec3, hullQuat Quaternion) (Vec3, []contactPoint, bool) {
	hull.UpdateWorldVertices(hullPos, hullQuat)
	worldVerts := hull.WorldVertices()
	worldNormals := hull.WorldFaceNormals()

	bestDist := float32(math.Inf(-1))
	bestFace := -1
	for i, face := range hull.Faces {
		n := worldNormals[i]
		if n == Vec3Zero {
			continue
		}
		v := worldVerts[face[0]]
		d := center.Sub(v).Dot(n)
		if d > bestDist {
			bestDist = d
			bestFace = i
		}
	}
	if bestFace == -1 {
		return Vec3{}, nil, false
	}
	if bestDist > radius {
		return Vec3{}, nil, false
	}
	normal := worldNormals[bestFace]
	depth := radius - bestDist
	point := center.Sub(normal.Scale(radius - depth/2))
	return normal, []contactPoint{{point, depth}}, true
}

func particleConvexContacts(p Vec3, hull *ConvexPolyhedron, hullPos Vec3, hullQuat Quaternion) (Vec3, []contactPoint, bool) {
	hull.UpdateWorldVertices(hullPos, hullQuat)
	worldVerts := hull.WorldVertices()
	worldNormals := hull.WorldFaceNormals()

	bestDist := float32(math.Inf(-1))
	bestFace := -1
	for i, face := range hull.Faces {
		n := worldNormals[i]
		if n == Vec3Zero {
			continue
		}
		v := worldVerts[face[0]]
		d := p.Sub(v).Dot(n)
		if d > 0 {
			return Vec3{}, nil, false // outside this face: point is outside the hull
		}
		if d > bestDist {
			bestDist = d
			bestFace = i
		}
	}
	if bestFace == -1 {
		return Vec3{}, nil, false
	}
	return worldNormals[bestFace], []contactPoint{{p, -bestDist}}, true
}

// planeConvexContacts clips hull's world vertices against the
// half-space below planePos/planeNormal, emitting one contact point per
// penetrating vertex.
func planeConvexContacts(planePos Vec3, planeNormal Vec3, hull *ConvexPolyhedron, hullPos Vec3, hullQuat Quaternion) (Vec3, []contactPoint, bool) {
	hull.UpdateWorldVertices(hullPos, hullQuat)
	var points []contactPoint
	for _, v := range hull.WorldVertices() {
		d := v.Sub(planePos).Dot(planeNormal)
		if d <= 0 {
			points = append(points, contactPoint{Position: v, Depth: -d})
		}
	}
	if len(points) == 0 {
		return Vec3{}, nil, false
	}
	return planeNormal, points, true
}

// convexConvexContacts finds the minimum-penetration separating axis
// among both hulls' face normals and unique axes (a face-SAT; edge-edge
// cross-product axes are not tested, a known simplification for
// non-box convex pairs), then clips the incident face against the
// reference face's side planes to build the contact manifold.
func convexConvexContacts(hullA *ConvexPolyhedron, posA Vec3, quatA Quaternion, hullB *ConvexPolyhedron, posB Vec3, quatB Quaternion) (Vec3, []contactPoint, bool) {
	hullA.UpdateWorldVertices(posA, quatA)
	hullB.UpdateWorldVertices(posB, quatB)

	type axisCandidate struct {
		axis   Vec3
		fromA  bool
		faceIx int
	}
	var axes []axisCandidate
	for i, n := range hullA.WorldFaceNormals() {
		if n != Vec3Zero {
			axes = append(axes, axisCandidate{n, true, i})
		}
	}
	for i, n := range hullB.WorldFaceNormals() {
		if n != Vec3Zero {
			axes = append(axes, axisCandidate{n, false, i})
		}
	}

	bestOverlap := float32(math.Inf(1))
	var bestAxis Vec3
	bestFromA := true
	bestFace := -1
	for _, c := range axes {
		minA, maxA := projectHull(hullA.WorldVertices(), c.axis)
		minB, maxB := projectHull(hullB.WorldVertices(), c.axis)
		overlap := min32(maxA, maxB) - max32(minA, minB)
		if overlap < 0 {
			return Vec3{}, nil, false // separating axis found
		}
		if overlap < bestOverlap {
			bestOverlap = overlap
			bestAxis = c.axis
			bestFromA = c.fromA
			bestFace = c.faceIx
		}
	}
	if bestFace == -1 {
		return Vec3{}, nil, false
	}

	centerA := hullCenter(hullA.WorldVertices())
	centerB := hullCenter(hullB.WorldVertices())
	if centerB.Sub(centerA).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Negate()
	}

	var refHull, incHull *ConvexPolyhedron
	var refFace int
	if bestFromA {
		refHull, incHull, refFace = hullA, hullB, bestFace
	} else {
		refHull, incHull, refFace = hullB, hullA, bestFace
	}

	incFace := mostAntiParallelFace(incHull, bestAxis)
	if incFace == -1 {
		return Vec3{}, nil, false
	}

	refVerts := facePolygon(refHull, refFace)
	incVerts := facePolygon(incHull, incFace)
	refNormal := refHull.WorldFaceNormals()[refFace]

	clipped := clipPolygonAgainstFace(incVerts, refVerts, refNormal)

	refPlanePoint := refVerts[0]
	var points []contactPoint
	for _, p := range clipped {
		d := p.Sub(refPlanePoint).Dot(refNormal)
		if d <= 0 {
			points = append(points, contactPoint{Position: p.Sub(refNormal.Scale(d / 2)), Depth: -d})
		}
	}
	if len(points) == 0 {
		return Vec3{}, nil, false
	}
	return bestAxis, points, true
}

func projectHull(verts []Vec3, axis Vec3) (min, max float32) {
	min, max = math.MaxFloat32, -math.MaxFloat32
	for _, v := range verts {
		d := v.Dot(axis)
		min = min32(min, d)
		max = max32(max, d)
	}
	return min, max
}

func hullCenter(verts []Vec3) Vec3 {
	var sum Vec3
	for _, v := range verts {
		sum = sum.Add(v)
	}
	if len(verts) == 0 {
		return sum
	}
	return sum.Scale(1 / float32(len(verts)))
}

func mostAntiParallelFace(hull *ConvexPolyhedron, axis Vec3) int {
	best := float32(math.Inf(1))
	bestIx := -1
	for i, n := range hull.WorldFaceNormals() {
		if n == Vec3Zero {
			continue
		}
		d := n.Dot(axis)
		if d < best {
			best = d
			bestIx = i
		}
	}
	return bestIx
}

func facePolygon(hull *ConvexPolyhedron, face int) []Vec3 {
	worldVerts := hull.WorldVertices()
	idxs := hull.Faces[face]
	out := make([]Vec3, len(idxs))
	for i, idx := range idxs {
		out[i] = worldVerts[idx]
	}
	return out
}

// clipPolygonAgainstFace runs Sutherland-Hodgman, clipping subject
// against each side plane of refPolygon (side planes built from
// consecutive edges and refNormal).
func clipPolygonAgainstFace(subject []Vec3, refPolygon []Vec3, refNormal Vec3) []Vec3 {
	n := len(refPolygon)
	out := subject
	for i := 0; i < n; i++ {
		a := refPolygon[i]
		b := refPolygon[(i+1)%n]
		edge := b.Sub(a)
		sideNormal := edge.Cross(refNormal).Unit() // points outward from the reference face
		out = clipPolygonAgainstPlane(out, a, sideNormal)
		if len(out) == 0 {
			return out
		}
	}
	return out
}

// clipPolygonAgainstPlane keeps the part of the (possibly open) polygon
// subject on the negative side of the plane through planePoint with
// the given outward normal.
func clipPolygonAgainstPlane(subject []Vec3, planePoint Vec3, normal Vec3) []Vec3 {
	if len(subject) == 0 {
		return nil
	}
	var out []Vec3
	for i := range subject {
		cur := subject[i]
		prev := subject[(i-1+len(subject))%len(subject)]
		curInside := cur.Sub(planePoint).Dot(normal) <= 0
		prevInside := prev.Sub(planePoint).Dot(normal) <= 0
		if curInside {
			if !prevInside {
				out = append(out, segmentPlaneIntersection(prev, cur, planePoint, normal))
			}
			out = append(out, cur)
		} else if prevInside {
			out = append(out, segmentPlaneIntersection(prev, cur, planePoint, normal))
		}
	}
	return out
}

func segmentPlaneIntersection(a, b Vec3, planePoint Vec3, normal Vec3) Vec3 {
	da := a.Sub(planePoint).Dot(normal)
	db := b.Sub(planePoint).Dot(normal)
	denom := da - db
	if denom == 0 {
		return a
	}
	t := da / denom
	return a.Add(b.Sub(a).Scale(t))
}

// --- heightfield / trimesh: reduce to the convex-family primitives
// above by iterating the candidate cells/triangles their own AABB
// overlap narrows down to. ---

func heightfieldCandidateCells(h *Heightfield, localAABB AABB) [][2]int {
	xi0, yi0 := h.CellAt(localAABB.LowerBound.X, localAABB.LowerBound.Y)
	xi1, yi1 := h.CellAt(localAABB.UpperBound.X, localAABB.UpperBound.Y)
	var cells [][2]int
	for xi := xi0; xi <= xi1; xi++ {
		for yi := yi0; yi <= yi1; yi++ {
			cells = append(cells, [2]int{xi, yi})
		}
	}
	return cells
}

func sphereHeightfieldContacts(center Vec3, radius float32, h *Heightfield, hfPos Vec3, hfQuat Quaternion) (Vec3, []contactPoint, bool) {
	local := PointToLocalFrame(Transform{Position: hfPos, Quaternion: hfQuat}, center)
	skin := Vec3{radius, radius, radius}
	var localAABB AABB
	localAABB.SetFromPoints([]Vec3{local}, Vec3Zero, IdentityQuaternion(), 0)
	localAABB.LowerBound = localAABB.LowerBound.Sub(skin)
	localAABB.UpperBound = localAABB.UpperBound.Add(skin)

	var bestNormal Vec3
	var bestPoints []contactPoint
	found := false
	for _, cell := range heightfieldCandidateCells(h, localAABB) {
		for _, upper := range [...]bool{true, false} {
			pillar := h.PillarConvex(cell[0], cell[1], upper)
			if pillar == nil {
				continue
			}
			n, pts, ok := sphereConvexContacts(center, radius, pillar, hfPos, hfQuat)
			if ok && (!found || pts[0].Depth > bestPoints[0].Depth) {
				bestNormal, bestPoints, found = n, pts, true
			}
		}
	}
	return bestNormal, bestPoints, found
}

func convexHeightfieldContacts(hull *ConvexPolyhedron, hullPos Vec3, hullQuat Quaternion, h *Heightfield, hfPos Vec3, hfQuat Quaternion) (Vec3, []contactPoint, bool) {
	worldAABB := hull.CalculateWorldAABB(hullPos, hullQuat)
	localLo := PointToLocalFrame(Transform{Position: hfPos, Quaternion: hfQuat}, worldAABB.LowerBound)
	localHi := PointToLocalFrame(Transform{Position: hfPos, Quaternion: hfQuat}, worldAABB.UpperBound)
	var localAABB AABB
	localAABB.SetFromPoints([]Vec3{localLo, localHi}, Vec3Zero, IdentityQuaternion(), 0)

	var allPoints []contactPoint
	var normal Vec3
	for _, cell := range heightfieldCandidateCells(h, localAABB) {
		for _, upper := range [...]bool{true, false} {
			pillar := h.PillarConvex(cell[0], cell[1], upper)
			if pillar == nil {
				continue
			}
			n, pts, ok := convexConvexContacts(hull, hullPos, hullQuat, pillar, hfPos, hfQuat)
			if ok {
				normal = n
				allPoints = append(allPoints, pts...)
			}
		}
	}
	return normal, allPoints, len(allPoints) > 0
}

func particleHeightfieldContacts(p Vec3, h *Heightfield, hfPos Vec3, hfQuat Quaternion) (Vec3, []contactPoint, bool) {
	local := PointToLocalFrame(Transform{Position: hfPos, Quaternion: hfQuat}, p)
	xi, yi := h.CellAt(local.X, local.Y)
	for _, upper := range [...]bool{true, false} {
		pillar := h.PillarConvex(xi, yi, upper)
		if pillar == nil {
			continue
		}
		if n, pts, ok := particleConvexContacts(p, pillar, hfPos, hfQuat); ok {
			return n, pts, true
		}
	}
	return Vec3{}, nil, false
}

func trimeshCandidateTriangles(t *Trimesh, localAABB AABB) []int {
	return t.TrianglesInAABB(localAABB)
}

// triangleConvex builds an ephemeral degenerate ConvexPolyhedron (a
// single triangular face, referenced from both sides) so triangle soup
// can reuse the convex-family routines above.
func triangleConvex(a, b, c Vec3) *ConvexPolyhedron {
	poly, err := NewConvexPolyhedron([]Vec3{a, b, c}, [][]int{{0, 1, 2}, {2, 1, 0}})
	if err != nil {
		return nil
	}
	return poly
}

func sphereTrimeshContacts(center Vec3, radius float32, tm *Trimesh, meshPos Vec3, meshQuat Quaternion) (Vec3, []contactPoint, bool) {
	local := PointToLocalFrame(Transform{Position: meshPos, Quaternion: meshQuat}, center)
	skin := Vec3{radius, radius, radius}
	var localAABB AABB
	localAABB.SetFromPoints([]Vec3{local}, Vec3Zero, IdentityQuaternion(), 0)
	localAABB.LowerBound = localAABB.LowerBound.Sub(skin)
	localAABB.UpperBound = localAABB.UpperBound.Add(skin)

	found := false
	var bestNormal Vec3
	var bestPoints []contactPoint
	for _, tri := range trimeshCandidateTriangles(tm, localAABB) {
		a, b, c := tm.Triangle(tri)
		poly := triangleConvex(a, b, c)
		if poly == nil {
			continue
		}
		n, pts, ok := sphereConvexContacts(center, radius, poly, meshPos, meshQuat)
		if ok && (!found || pts[0].Depth > bestPoints[0].Depth) {
			bestNormal, bestPoints, found = n, pts, true
		}
	}
	return bestNormal, bestPoints, found
}

func convexTrimeshContacts(hull *ConvexPolyhedron, hullPos Vec3, hullQuat Quaternion, tm *Trimesh, meshPos Vec3, meshQuat Quaternion) (Vec3, []contactPoint, bool) {
	worldAABB := hull.CalculateWorldAABB(hullPos, hullQuat)
	localLo := PointToLocalFrame(Transform{Position: meshPos, Quaternion: meshQuat}, worldAABB.LowerBound)
	localHi := PointToLocalFrame(Transform{Position: meshPos, Quaternion: meshQuat}, worldAABB.UpperBound)
	var localAABB AABB
	localAABB.SetFromPoints([]Vec3{localLo, localHi}, Vec3Zero, IdentityQuaternion(), 0)

	var allPoints []contactPoint
	var normal Vec3
	for _, tri := range trimeshCandidateTriangles(tm, localAABB) {
		a, b, c := tm.Triangle(tri)
		poly := triangleConvex(a, b, c)
		if poly == nil {
			continue
		}
		n, pts, ok := convexConvexContacts(hull, hullPos, hullQuat, poly, meshPos, meshQuat)
		if ok {
			normal = n
			allPoints = append(allPoints, pts...)
		}
	}
	return normal, allPoints, len(allPoints) > 0
}

func particleTrimeshContacts(p Vec3, tm *Trimesh, meshPos Vec3, meshQuat Quaternion) (Vec3, []contactPoint, bool) {
	local := PointToLocalFrame(Transform{Position: meshPos, Quaternion: meshQuat}, p)
	var localAABB AABB
	localAABB.SetFromPoints([]Vec3{local}, Vec3Zero, IdentityQuaternion(), 0)
	for _, tri := range trimeshCandidateTriangles(tm, localAABB) {
		a, b, c := tm.Triangle(tri)
		poly := triangleConvex(a, b, c)
		if poly == nil {
			continue
		}
		if n, pts, ok := particleConvexContacts(p, poly, meshPos, meshQuat); ok {
			return n, pts, true
		}
	}
	return Vec3{}, nil, false
}

func planeTrimeshContacts(planePos Vec3, planeNormal Vec3, tm *Trimesh, meshPos Vec3, meshQuat Quaternion) (Vec3, []contactPoint, bool) {
	var allPoints []contactPoint
	for tri := 0; tri < tm.TriangleCount(); tri++ {
		a, b, c := tm.Triangle(tri)
		for _, local := range [...]Vec3{a, b, c} {
			world := meshQuat.Vmult(local).Add(meshPos)
			d := world.Sub(planePos).Dot(planeNormal)
			if d <= 0 {
				allPoints = append(allPoints, contactPoint{Position: world, Depth: -d})
			}
		}
	}
	if len(allPoints) == 0 {
		return Vec3{}, nil, false
	}
	return planeNormal, allPoints, true
}
