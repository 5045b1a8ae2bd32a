package gophys

import "math"

// ConvexPolyhedron is a convex hull described by its vertices and faces.
// Faces must be convex, coplanar polygons; callers merging a
// triangulated hull into larger polygons are responsible for doing so
// before constructing one.
type ConvexPolyhedron struct {
	Vertices    []Vec3
	Faces       [][]int // each face is a CCW list of indices into Vertices
	FaceNormals []Vec3
	UniqueEdges []Vec3
	UniqueAxes  []Vec3 // optional: when set, SAT only tests these axes plus face normals

	boundingSphereRadius float32

	// World-space caches, refreshed lazily by updateWorldVertices /
	// updateWorldFaceNormals whenever the owning Shape's transform
	// changes (staleWorld tracks this).
	worldVertices     []Vec3
	worldFaceNormals  []Vec3
	worldVerticesPos  Vec3
	worldVerticesQuat Quaternion
	staleWorld        bool
}

// NewConvexPolyhedron validates and builds a hull from vertices/faces.
// It returns *InvalidShapeParameterError if any face references a
// vertex index out of range.
func NewConvexPolyhedron(vertices []Vec3, faces [][]int) (*ConvexPolyhedron, error) {
	for _, face := range faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(vertices) {
				return nil, &InvalidShapeParameterError{
					Shape:  "ConvexPolyhedron",
					Reason: "face references a vertex index out of range",
				}
			}
		}
	}
	c := &ConvexPolyhedron{Vertices: vertices, Faces: faces, staleWorld: true}
	c.computeNormals()
	c.computeEdges()
	c.computeBoundingSphereRadius()
	return c, nil
}

func (c *ConvexPolyhedron) computeNormals() {
	c.FaceNormals = make([]Vec3, len(c.Faces))
	for i, face := range c.Faces {
		if len(face) < 3 {
			continue
		}
		a, b, cc := c.Vertices[face[0]], c.Vertices[face[1]], c.Vertices[face[2]]
		n := b.Sub(a).Cross(cc.Sub(a))
		if n.LengthSquared() == 0 {
			continue // degenerate (zero-area) face: skip, normal stays zero
		}
		c.FaceNormals[i] = n.Unit()
	}
}

func (c *ConvexPolyhedron) computeEdges() {
	seen := make(map[[2]int]bool)
	for _, face := range c.Faces {
		n := len(face)
		for i := 0; i < n; i++ {
			a, b := face[i], face[(i+1)%n]
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			edge := c.Vertices[b].Sub(c.Vertices[a])
			if edge.LengthSquared() == 0 {
				continue
			}
			c.UniqueEdges = append(c.UniqueEdges, edge.Unit())
		}
	}
}

func (c *ConvexPolyhedron) computeBoundingSphereRadius() {
	var maxSq float32
	for _, v := range c.Vertices {
		if lsq := v.LengthSquared(); lsq > maxSq {
			maxSq = lsq
		}
	}
	c.boundingSphereRadius = float32(math.Sqrt(float64(maxSq)))
}

func (c *ConvexPolyhedron) Kind() ShapeKind { return ShapeKindConvex }

// Volume preserves a quirk inherited from the source implementation:
// it is computed from the bounding-sphere radius (4*pi*r/3) rather than
// a true polytope volume (which would use r^3). See SPEC_FULL.md §E.3.
func (c *ConvexPolyhedron) Volume() float32 {
	return float32(4.0 / 3.0 * math.Pi * float64(c.boundingSphereRadius))
}

func (c *ConvexPolyhedron) BoundingSphereRadius() float32 { return c.boundingSphereRadius }

func (c *ConvexPolyhedron) CalculateLocalInertia(mass float32) Vec3 {
	// Approximate as an equivalent box whose half-extents match the
	// hull's AABB, matching the teacher's box-inertia fallback
	// (mod_physics.go) generalized to an arbitrary hull.
	var lo, hi Vec3
	for i, v := range c.Vertices {
		if i == 0 {
			lo, hi = v, v
			continue
		}
		lo = Vec3{min32(lo.X, v.X), min32(lo.Y, v.Y), min32(lo.Z, v.Z)}
		hi = Vec3{max32(hi.X, v.X), max32(hi.Y, v.Y), max32(hi.Z, v.Z)}
	}
	w, h, d := hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z
	ix := (1.0 / 12.0) * mass * (h*h + d*d)
	iy := (1.0 / 12.0) * mass * (w*w + d*d)
	iz := (1.0 / 12.0) * mass * (w*w + h*h)
	return Vec3{ix, iy, iz}
}

func (c *ConvexPolyhedron) CalculateWorldAABB(pos Vec3, quat Quaternion) AABB {
	var out AABB
	out.SetFromPoints(c.Vertices, pos, quat, 0)
	return out
}

// UpdateWorldVertices refreshes the cached world-space vertex positions
// for pos/quat if they differ from the last cached transform.
func (c *ConvexPolyhedron) UpdateWorldVertices(pos Vec3, quat Quaternion) {
	if !c.staleWorld && c.worldVerticesPos == pos && c.worldVerticesQuat == quat {
		return
	}
	c.worldVertices = make([]Vec3, len(c.Vertices))
	for i, v := range c.Vertices {
		c.worldVertices[i] = quat.Vmult(v).Add(pos)
	}
	c.worldFaceNormals = make([]Vec3, len(c.FaceNormals))
	for i, n := range c.FaceNormals {
		c.worldFaceNormals[i] = quat.Vmult(n)
	}
	c.worldVerticesPos = pos
	c.worldVerticesQuat = quat
	c.staleWorld = false
}

func (c *ConvexPolyhedron) WorldVertices() []Vec3    { return c.worldVertices }
func (c *ConvexPolyhedron) WorldFaceNormals() []Vec3 { return c.worldFaceNormals }
