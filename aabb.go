package gophys

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	LowerBound Vec3
	UpperBound Vec3
}

// SetFromPoints recomputes the AABB that bounds points after being
// rotated by quat, translated by pos, and grown by skin on every side.
func (a *AABB) SetFromPoints(points []Vec3, pos Vec3, quat Quaternion, skin float32) {
	if len(points) == 0 {
		a.LowerBound = pos
		a.UpperBound = pos
		return
	}
	first := quat.Vmult(points[0]).Add(pos)
	lower, upper := first, first
	for _, p := range points[1:] {
		wp := quat.Vmult(p).Add(pos)
		lower = Vec3{min32(lower.X, wp.X), min32(lower.Y, wp.Y), min32(lower.Z, wp.Z)}
		upper = Vec3{max32(upper.X, wp.X), max32(upper.Y, wp.Y), max32(upper.Z, wp.Z)}
	}
	skinVec := Vec3{skin, skin, skin}
	a.LowerBound = lower.Sub(skinVec)
	a.UpperBound = upper.Add(skinVec)
}

// Overlaps reports whether a and b intersect (touching counts as overlap).
func (a AABB) Overlaps(b AABB) bool {
	return a.LowerBound.X <= b.UpperBound.X && a.UpperBound.X >= b.LowerBound.X &&
		a.LowerBound.Y <= b.UpperBound.Y && a.UpperBound.Y >= b.LowerBound.Y &&
		a.LowerBound.Z <= b.UpperBound.Z && a.UpperBound.Z >= b.LowerBound.Z
}

// Contains reports whether b is fully contained within a.
func (a AABB) Contains(b AABB) bool {
	return a.LowerBound.X <= b.LowerBound.X && a.UpperBound.X >= b.UpperBound.X &&
		a.LowerBound.Y <= b.LowerBound.Y && a.UpperBound.Y >= b.UpperBound.Y &&
		a.LowerBound.Z <= b.LowerBound.Z && a.UpperBound.Z >= b.UpperBound.Z
}

// Extend grows a to also contain b.
func (a *AABB) Extend(b AABB) {
	a.LowerBound = Vec3{min32(a.LowerBound.X, b.LowerBound.X), min32(a.LowerBound.Y, b.LowerBound.Y), min32(a.LowerBound.Z, b.LowerBound.Z)}
	a.UpperBound = Vec3{max32(a.UpperBound.X, b.UpperBound.X), max32(a.UpperBound.Y, b.UpperBound.Y), max32(a.UpperBound.Z, b.UpperBound.Z)}
}

func (a AABB) Volume() float32 {
	d := a.UpperBound.Sub(a.LowerBound)
	return d.X * d.Y * d.Z
}

// GetCorners returns the 8 corners of the box.
func (a AABB) GetCorners() [8]Vec3 {
	lo, hi := a.LowerBound, a.UpperBound
	return [8]Vec3{
		{lo.X, lo.Y, lo.Z}, {hi.X, lo.Y, lo.Z}, {lo.X, hi.Y, lo.Z}, {lo.X, lo.Y, hi.Z},
		{hi.X, hi.Y, lo.Z}, {hi.X, lo.Y, hi.Z}, {lo.X, hi.Y, hi.Z}, {hi.X, hi.Y, hi.Z},
	}
}

// ToLocalFrame returns the (non-axis-aligned, re-bounded) AABB obtained
// by expressing a's corners in t's local frame and rebounding.
func (a AABB) ToLocalFrame(t Transform) AABB {
	corners := a.GetCorners()
	pts := make([]Vec3, len(corners))
	for i, c := range corners {
		pts[i] = t.PointToLocal(c)
	}
	var out AABB
	out.SetFromPoints(pts, Vec3Zero, IdentityQuaternion(), 0)
	return out
}

// ToWorldFrame returns the world-frame AABB obtained by expressing a's
// corners (local to t) in world space and rebounding.
func (a AABB) ToWorldFrame(t Transform) AABB {
	corners := a.GetCorners()
	pts := make([]Vec3, len(corners))
	for i, c := range corners {
		pts[i] = t.PointToWorld(c)
	}
	var out AABB
	out.SetFromPoints(pts, Vec3Zero, IdentityQuaternion(), 0)
	return out
}

// OverlapsRay reports whether the ray intersects a, via the standard
// slab test. It does not compute a hit point or distance.
func (a AABB) OverlapsRay(r Ray) bool {
	tMin, tMax := float32(math.Inf(-1)), float32(math.Inf(1))

	dirs := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	froms := [3]float32{r.From.X, r.From.Y, r.From.Z}
	los := [3]float32{a.LowerBound.X, a.LowerBound.Y, a.LowerBound.Z}
	his := [3]float32{a.UpperBound.X, a.UpperBound.Y, a.UpperBound.Z}

	for i := 0; i < 3; i++ {
		if dirs[i] == 0 {
			if froms[i] < los[i] || froms[i] > his[i] {
				return false
			}
			continue
		}
		inv := 1 / dirs[i]
		t1 := (los[i] - froms[i]) * inv
		t2 := (his[i] - froms[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max32(tMin, t1)
		tMax = min32(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return tMax >= 0
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
