package gophys

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a 3-component vector of float32 (f32), used throughout gophys
// for positions, velocities, normals and every other 3D quantity.
//
// Most operations return a new Vec3 (value semantics), matching the
// teacher's mgl32.Vec3 usage style. The one spec-mandated in-place
// operation, Normalize, is a pointer-receiver method that mutates the
// receiver and returns its original length. The base algebra
// (Add/Sub/Dot/Cross/Length/Unit) is delegated to mgl32.Vec3 rather
// than hand-rolled; Vec3 keeps its own named X/Y/Z fields so the rest
// of the package reads like plain struct access instead of mgl32's
// array-index/accessor-method style.
type Vec3 struct {
	X, Y, Z float32
}

var (
	Vec3Zero  = Vec3{0, 0, 0}
	Vec3UnitX = Vec3{1, 0, 0}
	Vec3UnitY = Vec3{0, 1, 0}
	Vec3UnitZ = Vec3{0, 0, 1}
)

func NewVec3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

func (v Vec3) mgl() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func vec3FromMgl(v mgl32.Vec3) Vec3 { return Vec3{v.X(), v.Y(), v.Z()} }

func (v Vec3) Add(b Vec3) Vec3 { return vec3FromMgl(v.mgl().Add(b.mgl())) }

func (v Vec3) Sub(b Vec3) Vec3 { return vec3FromMgl(v.mgl().Sub(b.mgl())) }

func (v Vec3) Scale(s float32) Vec3 { return vec3FromMgl(v.mgl().Mul(s)) }

func (v Vec3) Negate() Vec3 { return v.Scale(-1) }

// ComponentMul multiplies v and b component-wise, used to gate
// integration along per-axis linear/angular factors.
func (v Vec3) ComponentMul(b Vec3) Vec3 { return Vec3{v.X * b.X, v.Y * b.Y, v.Z * b.Z} }

func (v Vec3) Dot(b Vec3) float32 { return v.mgl().Dot(b.mgl()) }

func (v Vec3) Cross(b Vec3) Vec3 { return vec3FromMgl(v.mgl().Cross(b.mgl())) }

func (v Vec3) LengthSquared() float32 { return v.mgl().Dot(v.mgl()) }

func (v Vec3) Length() float32 { return v.mgl().Len() }

func (v Vec3) Distance(b Vec3) float32 { return v.Sub(b).Length() }

func (v Vec3) DistanceSquared(b Vec3) float32 { return v.Sub(b).LengthSquared() }

// Unit returns a normalized copy of v. The zero vector normalizes to itself.
func (v Vec3) Unit() Vec3 {
	if v.Length() == 0 {
		return v
	}
	return vec3FromMgl(v.mgl().Normalize())
}

// Normalize scales v in place to unit length and returns the original
// length. The zero vector is left unchanged and returns 0.
func (v *Vec3) Normalize() float32 {
	l := v.Length()
	if l == 0 {
		return 0
	}
	*v = vec3FromMgl(v.mgl().Normalize())
	return l
}

// UnitToTarget returns the unit vector pointing from v to target.
func (v Vec3) UnitToTarget(target Vec3) Vec3 { return target.Sub(v).Unit() }

func (v Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (b.X-v.X)*t,
		v.Y + (b.Y-v.Y)*t,
		v.Z + (b.Z-v.Z)*t,
	}
}

// CrossMatrix returns the skew-symmetric 3x3 matrix M such that
// M.Vmult(b) == v.Cross(b) for any b.
func (v Vec3) CrossMatrix() Mat3 {
	return Mat3{
		0, -v.Z, v.Y,
		v.Z, 0, -v.X,
		-v.Y, v.X, 0,
	}
}

// Tangents returns two vectors orthogonal to v and to each other,
// forming a basis for the plane perpendicular to v. Ported from the
// Bullet-derived btPlaneSpace1 construction (same routine the pack's
// gazed-vu/math/lin.V3.Plane implements). The degenerate case (v has
// zero length) falls back to the canonical X/Y axes.
func (v Vec3) Tangents() (t1, t2 Vec3) {
	l := v.Length()
	if l == 0 {
		return Vec3UnitX, Vec3UnitY
	}
	n := v.Scale(1 / l)
	const sqrt1Over12 = float32(0.7071067811865475244008443621048490)
	if abs32(n.Z) > sqrt1Over12 {
		a := n.Y*n.Y + n.Z*n.Z
		k := 1 / float32(math.Sqrt(float64(a)))
		t1 = Vec3{0, -n.Z * k, n.Y * k}
		t2 = Vec3{a * k, -n.X * t1.Z, n.X * t1.Y}
	} else {
		a := n.X*n.X + n.Y*n.Y
		k := 1 / float32(math.Sqrt(float64(a)))
		t1 = Vec3{-n.Y * k, n.X * k, 0}
		t2 = Vec3{-n.Z * t1.Y, n.Z * t1.X, a * k}
	}
	return t1, t2
}

// AlmostEquals reports whether v and b are within precision of each
// other component-wise.
func (v Vec3) AlmostEquals(b Vec3, precision float32) bool {
	if precision <= 0 {
		precision = 1e-6
	}
	return abs32(v.X-b.X) <= precision && abs32(v.Y-b.Y) <= precision && abs32(v.Z-b.Z) <= precision
}

// AlmostZero reports whether v is within precision of the zero vector.
func (v Vec3) AlmostZero(precision float32) bool { return v.AlmostEquals(Vec3Zero, precision) }

// IsAntiparallel reports whether v and b point in opposite directions,
// within precision, regardless of magnitude.
func (v Vec3) IsAntiparallel(b Vec3, precision float32) bool {
	return v.Negate().Unit().AlmostEquals(b.Unit(), precision)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
