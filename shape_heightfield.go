package gophys

// Heightfield is a regular XY grid of height samples (Data[xi][yi]),
// each cell ElementSize apart, forming a terrain-like surface in the
// local +Z direction. Unlike the external scene-loader layer (out of
// scope, see spec.md §1), a Heightfield here is always built from an
// in-memory grid the caller already decoded.
type Heightfield struct {
	Data        [][]float32
	ElementSize float32
	Min, Max    float32

	// pillars caches the per-cell triangular-prism ConvexPolyhedron used
	// by narrowphase, keyed by (xi, yi, upper-triangle). Any mutation via
	// SetHeightValueAtIndex invalidates the entire cache, per spec §9.
	pillars map[heightfieldPillarKey]*ConvexPolyhedron
}

type heightfieldPillarKey struct {
	xi, yi int
	upper  bool
}

// NewHeightfield builds a Heightfield from a dense height grid. Returns
// *InvalidShapeParameterError if data has fewer than 2x2 samples.
func NewHeightfield(data [][]float32, elementSize float32) (*Heightfield, error) {
	if len(data) < 2 || len(data[0]) < 2 {
		return nil, &InvalidShapeParameterError{Shape: "Heightfield", Reason: "data must be at least 2x2"}
	}
	h := &Heightfield{Data: data, ElementSize: elementSize, pillars: make(map[heightfieldPillarKey]*ConvexPolyhedron)}
	h.recomputeMinMax()
	return h, nil
}

func (h *Heightfield) recomputeMinMax() {
	h.Min, h.Max = h.Data[0][0], h.Data[0][0]
	for _, row := range h.Data {
		for _, v := range row {
			h.Min = min32(h.Min, v)
			h.Max = max32(h.Max, v)
		}
	}
}

// SetHeightValueAtIndex mutates a single grid sample and evicts the
// entire pillar cache (§9: "any set_height_value_at_index clears the
// entire cache").
func (h *Heightfield) SetHeightValueAtIndex(xi, yi int, value float32) {
	h.Data[xi][yi] = value
	h.pillars = make(map[heightfieldPillarKey]*ConvexPolyhedron)
	h.recomputeMinMax()
}

func (h *Heightfield) Kind() ShapeKind { return ShapeKindHeightfield }

func (h *Heightfield) Volume() float32 {
	nx, ny := len(h.Data), len(h.Data[0])
	return float32(nx-1) * h.ElementSize * float32(ny-1) * h.ElementSize * (h.Max - h.Min)
}

func (h *Heightfield) BoundingSphereRadius() float32 {
	nx, ny := len(h.Data), len(h.Data[0])
	w := float32(nx-1) * h.ElementSize
	d := float32(ny-1) * h.ElementSize
	height := h.Max - h.Min
	return Vec3{w, d, height}.Length() / 2
}

// Heightfields are always static terrain; they have no finite mass.
func (h *Heightfield) CalculateLocalInertia(_ float32) Vec3 { return Vec3Zero }

func (h *Heightfield) CalculateWorldAABB(pos Vec3, quat Quaternion) AABB {
	nx, ny := len(h.Data), len(h.Data[0])
	w := float32(nx-1) * h.ElementSize
	d := float32(ny-1) * h.ElementSize
	points := []Vec3{
		{0, 0, h.Min}, {w, 0, h.Min}, {0, d, h.Min}, {w, d, h.Min},
		{0, 0, h.Max}, {w, 0, h.Max}, {0, d, h.Max}, {w, d, h.Max},
	}
	var out AABB
	out.SetFromPoints(points, pos, quat, 0)
	return out
}

// CellAt returns the grid indices of the cell containing local-space
// point (x, y), clamped to the valid range.
func (h *Heightfield) CellAt(x, y float32) (xi, yi int) {
	nx, ny := len(h.Data), len(h.Data[0])
	xi = int(x / h.ElementSize)
	yi = int(y / h.ElementSize)
	if xi < 0 {
		xi = 0
	}
	if xi > nx-2 {
		xi = nx - 2
	}
	if yi < 0 {
		yi = 0
	}
	if yi > ny-2 {
		yi = ny - 2
	}
	return xi, yi
}

// PillarConvex returns the (cached) triangular-prism ConvexPolyhedron
// for cell (xi, yi)'s upper or lower triangle, building it on first use.
// Each grid cell is split into two triangles along the diagonal from
// (xi,yi) to (xi+1,yi+1); upper selects the triangle containing corner
// (xi,yi+1), lower selects the one containing (xi+1,yi).
func (h *Heightfield) PillarConvex(xi, yi int, upper bool) *ConvexPolyhedron {
	key := heightfieldPillarKey{xi, yi, upper}
	if c, ok := h.pillars[key]; ok {
		return c
	}

	es := h.ElementSize
	x0, x1 := float32(xi)*es, float32(xi+1)*es
	y0, y1 := float32(yi)*es, float32(yi+1)*es
	z00, z10, z01, z11 := h.Data[xi][yi], h.Data[xi+1][yi], h.Data[xi][yi+1], h.Data[xi+1][yi+1]

	var top [3]Vec3
	if upper {
		top = [3]Vec3{{x0, y0, z00}, {x0, y1, z01}, {x1, y1, z11}}
	} else {
		top = [3]Vec3{{x0, y0, z00}, {x1, y1, z11}, {x1, y0, z10}}
	}
	bottomZ := h.Min - 1
	bottom := [3]Vec3{
		{top[0].X, top[0].Y, bottomZ},
		{top[1].X, top[1].Y, bottomZ},
		{top[2].X, top[2].Y, bottomZ},
	}

	vertices := []Vec3{top[0], top[1], top[2], bottom[0], bottom[1], bottom[2]}
	faces := [][]int{
		{0, 1, 2},       // top
		{5, 4, 3},       // bottom
		{0, 3, 4, 1},    // side 0-1
		{1, 4, 5, 2},    // side 1-2
		{2, 5, 3, 0},    // side 2-0
	}
	c, err := NewConvexPolyhedron(vertices, faces)
	if err != nil {
		return nil // degenerate cell (should not happen: faces are well-formed by construction)
	}
	h.pillars[key] = c
	return c
}
