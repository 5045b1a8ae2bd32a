package gophys

// Trimesh is an indexed triangle soup in local space. It is always
// treated as a static collider: CalculateLocalInertia returns zero, and
// narrowphase only generates contacts against it, never integrates it.
type Trimesh struct {
	Vertices []Vec3
	Indices  []int // triangle i uses Indices[3i], Indices[3i+1], Indices[3i+2]
	Scale    Vec3

	normals []Vec3 // one per triangle, computed once at construction
	aabb    AABB   // local-space AABB over all (scaled) vertices
	tree    *Octree[int]
}

// NewTrimesh builds a Trimesh from vertex/index data and a per-axis
// scale (Vec3{1,1,1} for unscaled). Returns *InvalidShapeParameterError
// if Indices is not a multiple of 3 or references an out-of-range
// vertex.
func NewTrimesh(vertices []Vec3, indices []int, scale Vec3) (*Trimesh, error) {
	if len(indices)%3 != 0 {
		return nil, &InvalidShapeParameterError{Shape: "Trimesh", Reason: "indices length must be a multiple of 3"}
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, &InvalidShapeParameterError{Shape: "Trimesh", Reason: "index references an out-of-range vertex"}
		}
	}
	t := &Trimesh{Vertices: vertices, Indices: indices, Scale: scale}
	t.computeNormals()
	t.computeTree()
	return t, nil
}

func (t *Trimesh) scaledVertex(i int) Vec3 {
	v := t.Vertices[i]
	return Vec3{v.X * t.Scale.X, v.Y * t.Scale.Y, v.Z * t.Scale.Z}
}

func (t *Trimesh) computeNormals() {
	count := len(t.Indices) / 3
	t.normals = make([]Vec3, count)
	var lo, hi Vec3
	for tri := 0; tri < count; tri++ {
		a := t.scaledVertex(t.Indices[3*tri])
		b := t.scaledVertex(t.Indices[3*tri+1])
		c := t.scaledVertex(t.Indices[3*tri+2])
		n := b.Sub(a).Cross(c.Sub(a))
		if n.LengthSquared() > 0 {
			n = n.Unit()
		}
		t.normals[tri] = n
		for _, v := range [...]Vec3{a, b, c} {
			if tri == 0 {
				lo, hi = v, v
			} else {
				lo = Vec3{min32(lo.X, v.X), min32(lo.Y, v.Y), min32(lo.Z, v.Z)}
				hi = Vec3{max32(hi.X, v.X), max32(hi.Y, v.Y), max32(hi.Z, v.Z)}
			}
		}
	}
	t.aabb = AABB{LowerBound: lo, UpperBound: hi}
}

func (t *Trimesh) computeTree() {
	t.tree = NewOctree[int](t.aabb)
	count := len(t.Indices) / 3
	for tri := 0; tri < count; tri++ {
		a := t.scaledVertex(t.Indices[3*tri])
		b := t.scaledVertex(t.Indices[3*tri+1])
		c := t.scaledVertex(t.Indices[3*tri+2])
		lo := Vec3{min32(a.X, min32(b.X, c.X)), min32(a.Y, min32(b.Y, c.Y)), min32(a.Z, min32(b.Z, c.Z))}
		hi := Vec3{max32(a.X, max32(b.X, c.X)), max32(a.Y, max32(b.Y, c.Y)), max32(a.Z, max32(b.Z, c.Z))}
		t.tree.Insert(AABB{LowerBound: lo, UpperBound: hi}, tri)
	}
}

func (t *Trimesh) Kind() ShapeKind { return ShapeKindTrimesh }

func (t *Trimesh) Volume() float32 {
	d := t.aabb.UpperBound.Sub(t.aabb.LowerBound)
	return d.X * d.Y * d.Z
}

func (t *Trimesh) BoundingSphereRadius() float32 {
	center := t.aabb.LowerBound.Add(t.aabb.UpperBound).Scale(0.5)
	return t.aabb.UpperBound.Sub(center).Length()
}

// Trimeshes are always static; see the type doc comment.
func (t *Trimesh) CalculateLocalInertia(_ float32) Vec3 { return Vec3Zero }

func (t *Trimesh) CalculateWorldAABB(pos Vec3, quat Quaternion) AABB {
	corners := t.aabb.GetCorners()
	var out AABB
	out.SetFromPoints(corners[:], pos, quat, 0)
	return out
}

// Triangle returns the three scaled, local-space vertices of triangle i.
func (t *Trimesh) Triangle(i int) (a, b, c Vec3) {
	return t.scaledVertex(t.Indices[3*i]), t.scaledVertex(t.Indices[3*i+1]), t.scaledVertex(t.Indices[3*i+2])
}

// Normal returns the precomputed local-space face normal of triangle i.
func (t *Trimesh) Normal(i int) Vec3 { return t.normals[i] }

// TriangleCount returns the number of triangles in the mesh.
func (t *Trimesh) TriangleCount() int { return len(t.Indices) / 3 }

// TrianglesInAABB returns the indices of triangles whose (scaled,
// local-space) AABB overlaps query, using the cached octree.
func (t *Trimesh) TrianglesInAABB(query AABB) []int {
	return t.tree.QueryAABB(query, nil)
}
