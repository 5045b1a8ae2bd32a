package gophys

// Box is an axis-aligned (in local space) rectangular solid described
// by its half extents.
type Box struct {
	HalfExtents Vec3

	// convexRepr is the cached 8-vertex, 6-quad-face representation
	// used by every convex-family narrowphase test (SAT, clipping). It
	// is built once and reused, per spec §4.2.
	convexRepr *ConvexPolyhedron
}

// NewBoxConvexPolyhedron builds the 8-vertex/6-face/3-axis
// ConvexPolyhedronRepresentation for a box of the given half extents.
func NewBoxConvexPolyhedron(he Vec3) *ConvexPolyhedron {
	vertices := []Vec3{
		{-he.X, -he.Y, -he.Z}, {he.X, -he.Y, -he.Z}, {he.X, he.Y, -he.Z}, {-he.X, he.Y, -he.Z},
		{-he.X, -he.Y, he.Z}, {he.X, -he.Y, he.Z}, {he.X, he.Y, he.Z}, {-he.X, he.Y, he.Z},
	}
	faces := [][]int{
		{3, 2, 1, 0}, // -Z
		{4, 5, 6, 7}, // +Z
		{5, 4, 0, 1}, // -Y
		{2, 3, 7, 6}, // +Y
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
	}
	c, _ := NewConvexPolyhedron(vertices, faces) // faces reference valid indices by construction
	c.UniqueAxes = []Vec3{Vec3UnitX, Vec3UnitY, Vec3UnitZ}
	return c
}

// NewBox builds a Box and its cached convex representation. Returns
// *InvalidShapeParameterError if any half extent is negative.
func NewBox(halfExtents Vec3) (*Box, error) {
	if halfExtents.X < 0 || halfExtents.Y < 0 || halfExtents.Z < 0 {
		return nil, &InvalidShapeParameterError{Shape: "Box", Reason: "half extents must be >= 0"}
	}
	return &Box{HalfExtents: halfExtents, convexRepr: NewBoxConvexPolyhedron(halfExtents)}, nil
}

func (b *Box) Kind() ShapeKind { return ShapeKindBox }

func (b *Box) Volume() float32 { return 8 * b.HalfExtents.X * b.HalfExtents.Y * b.HalfExtents.Z }

func (b *Box) BoundingSphereRadius() float32 { return b.HalfExtents.Length() }

func (b *Box) CalculateLocalInertia(mass float32) Vec3 {
	w, h, d := 2*b.HalfExtents.X, 2*b.HalfExtents.Y, 2*b.HalfExtents.Z
	ix := (1.0 / 12.0) * mass * (h*h + d*d)
	iy := (1.0 / 12.0) * mass * (w*w + d*d)
	iz := (1.0 / 12.0) * mass * (w*w + h*h)
	return Vec3{ix, iy, iz}
}

func (b *Box) CalculateWorldAABB(pos Vec3, quat Quaternion) AABB {
	return b.convexRepr.CalculateWorldAABB(pos, quat)
}

// ConvexRepresentation returns the cached convex-hull form of the box,
// used by every narrowphase routine in the convex family.
func (b *Box) ConvexRepresentation() *ConvexPolyhedron { return b.convexRepr }

// ForEachWorldCorner invokes fn with each of the box's 8 corners in
// world space, given pos/quat.
func (b *Box) ForEachWorldCorner(pos Vec3, quat Quaternion, fn func(Vec3)) {
	for _, v := range b.convexRepr.Vertices {
		fn(quat.Vmult(v).Add(pos))
	}
}
