package gophys

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// EulerOrder enumerates the axis order used to decompose/compose a
// Quaternion from Euler angles.
type EulerOrder int

const (
	EulerXYZ EulerOrder = iota
	EulerYXZ
	EulerZXY
	EulerZYX
	EulerYZX
	EulerXZY
)

// Quaternion is a unit (when normalized) rotation, x,y,z,w.
type Quaternion struct {
	X, Y, Z, W float32
}

func IdentityQuaternion() Quaternion { return Quaternion{0, 0, 0, 1} }

func NewQuaternion(x, y, z, w float32) Quaternion { return Quaternion{x, y, z, w} }

func (q Quaternion) mgl() mgl32.Quat { return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}} }

func quatFromMgl(q mgl32.Quat) Quaternion { return Quaternion{q.V.X(), q.V.Y(), q.V.Z(), q.W} }

// SetFromAxisAngle returns the quaternion that rotates by angle radians
// around axis. axis is expected to be a unit vector.
func SetFromAxisAngle(axis Vec3, angle float32) Quaternion {
	s := float32(math.Sin(float64(angle) / 2))
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(angle) / 2)),
	}
}

// ToAxisAngle decomposes q into an axis and an angle in [0, 2pi).
func (q Quaternion) ToAxisAngle() (axis Vec3, angle float32) {
	qn := q
	qn.Normalize()
	angle = 2 * float32(math.Acos(float64(qn.W)))
	s := float32(math.Sqrt(float64(1 - qn.W*qn.W)))
	if s < 1e-6 {
		// Angle is ~0: axis is arbitrary, canonical X is conventional.
		return Vec3UnitX, angle
	}
	return Vec3{qn.X / s, qn.Y / s, qn.Z / s}, angle
}

// SetFromVectors returns the quaternion rotating unit vector u onto unit
// vector v. When u and v are anti-parallel, the rotation axis is one of
// u's tangents and the angle is pi.
func SetFromVectors(u, v Vec3) Quaternion {
	if u.IsAntiparallel(v, 1e-6) {
		t1, t2 := u.Tangents()
		_ = t2
		return SetFromAxisAngle(t1, float32(math.Pi))
	}
	c := u.Cross(v)
	q := Quaternion{c.X, c.Y, c.Z, float32(math.Sqrt(float64(u.Length()*u.Length()*v.Length()*v.Length()))) + u.Dot(v)}
	q.Normalize()
	return q
}

// SetFromEuler builds a quaternion from Euler angles (radians) composed
// in the given axis order.
func SetFromEuler(x, y, z float32, order EulerOrder) Quaternion {
	c1, s1 := float32(math.Cos(float64(x)/2)), float32(math.Sin(float64(x)/2))
	c2, s2 := float32(math.Cos(float64(y)/2)), float32(math.Sin(float64(y)/2))
	c3, s3 := float32(math.Cos(float64(z)/2)), float32(math.Sin(float64(z)/2))

	var qx, qy, qz, qw float32
	switch order {
	case EulerXYZ:
		qx = s1*c2*c3 + c1*s2*s3
		qy = c1*s2*c3 - s1*c2*s3
		qz = c1*c2*s3 + s1*s2*c3
		qw = c1*c2*c3 - s1*s2*s3
	case EulerYXZ:
		qx = s1*c2*c3 + c1*s2*s3
		qy = c1*s2*c3 - s1*c2*s3
		qz = c1*c2*s3 - s1*s2*c3
		qw = c1*c2*c3 + s1*s2*s3
	case EulerZXY:
		qx = s1*c2*c3 - c1*s2*s3
		qy = c1*s2*c3 + s1*c2*s3
		qz = c1*c2*s3 + s1*s2*c3
		qw = c1*c2*c3 - s1*s2*s3
	case EulerZYX:
		qx = s1*c2*c3 - c1*s2*s3
		qy = c1*s2*c3 + s1*c2*s3
		qz = c1*c2*s3 - s1*s2*c3
		qw = c1*c2*c3 + s1*s2*s3
	case EulerYZX:
		qx = s1*c2*c3 + c1*s2*s3
		qy = c1*s2*c3 + s1*c2*s3
		qz = c1*c2*s3 - s1*s2*c3
		qw = c1*c2*c3 - s1*s2*s3
	case EulerXZY:
		qx = s1*c2*c3 - c1*s2*s3
		qy = c1*s2*c3 - s1*c2*s3
		qz = c1*c2*s3 + s1*s2*c3
		qw = c1*c2*c3 + s1*s2*s3
	default:
		qw = 1
	}
	return Quaternion{qx, qy, qz, qw}
}

// ToEuler decomposes q into Euler angles for the given order. Only
// EulerYZX is implemented, matching the source; any other order returns
// an *UnsupportedEulerOrderError.
func (q Quaternion) ToEuler(order EulerOrder) (x, y, z float32, err error) {
	if order != EulerYZX {
		return 0, 0, 0, &UnsupportedEulerOrderError{Order: order}
	}
	qx, qy, qz, qw := q.X, q.Y, q.Z, q.W

	heading := float32(math.Atan2(float64(2*qy*qw-2*qx*qz), float64(1-2*qy*qy-2*qz*qz)))
	bank := float32(math.Atan2(float64(2*qx*qw-2*qy*qz), float64(1-2*qx*qx-2*qz*qz)))
	test := qx*qy + qz*qw
	attitude := float32(math.Asin(float64(2 * test)))

	if test > 0.499 {
		heading = 2 * float32(math.Atan2(float64(qx), float64(qw)))
		attitude = float32(math.Pi / 2)
		bank = 0
	} else if test < -0.499 {
		heading = -2 * float32(math.Atan2(float64(qx), float64(qw)))
		attitude = float32(-math.Pi / 2)
		bank = 0
	}
	// heading=Y, attitude=Z, bank=X for YZX order.
	return bank, heading, attitude, nil
}

// Mult returns q * o (applies o, then q, when used to rotate a vector).
func (q Quaternion) Mult(o Quaternion) Quaternion { return quatFromMgl(q.mgl().Mul(o.mgl())) }

func (q Quaternion) Conjugate() Quaternion { return quatFromMgl(q.mgl().Conjugate()) }

// Inverse returns the multiplicative inverse of q (conjugate over
// squared length).
func (q Quaternion) Inverse() Quaternion {
	lenSq := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if lenSq == 0 {
		return q
	}
	return quatFromMgl(q.mgl().Inverse())
}

// Normalize scales q in place to unit length. The zero quaternion is
// left unchanged.
func (q *Quaternion) Normalize() {
	lenSq := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if lenSq == 0 {
		q.X, q.Y, q.Z, q.W = 0, 0, 0, 0
		return
	}
	*q = quatFromMgl(q.mgl().Normalize())
}

// NormalizeFast approximates Normalize with a single Newton-Raphson step
// on 1/sqrt(lenSq), cheaper than a true sqrt when called every step on
// every body.
func (q *Quaternion) NormalizeFast() {
	lenSq := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if lenSq == 0 {
		return
	}
	f := (3 - lenSq) / 2
	q.X *= f
	q.Y *= f
	q.Z *= f
	q.W *= f
}

// Vmult rotates v by q.
func (q Quaternion) Vmult(v Vec3) Vec3 { return vec3FromMgl(q.mgl().Rotate(v.mgl())) }

// Slerp spherically interpolates between q and o by fraction t in [0,1].
// Falls back to linear interpolation when the angle between q and o is
// too small for the slerp formula to be numerically stable.
func (q Quaternion) Slerp(o Quaternion, t float32) Quaternion {
	cosHalfTheta := q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W

	if cosHalfTheta < 0 {
		o = Quaternion{-o.X, -o.Y, -o.Z, -o.W}
		cosHalfTheta = -cosHalfTheta
	}
	if 1-cosHalfTheta < 1e-6 {
		return Quaternion{
			q.X + (o.X-q.X)*t,
			q.Y + (o.Y-q.Y)*t,
			q.Z + (o.Z-q.Z)*t,
			q.W + (o.W-q.W)*t,
		}
	}
	if cosHalfTheta > 1 {
		cosHalfTheta = 1
	} else if cosHalfTheta < -1 {
		cosHalfTheta = -1
	}

	halfTheta := float32(math.Acos(float64(cosHalfTheta)))
	sinHalfTheta := float32(math.Sqrt(float64(1 - cosHalfTheta*cosHalfTheta)))

	ratioA := float32(math.Sin(float64((1-t)*halfTheta))) / sinHalfTheta
	ratioB := float32(math.Sin(float64(t*halfTheta))) / sinHalfTheta

	return Quaternion{
		q.X*ratioA + o.X*ratioB,
		q.Y*ratioA + o.Y*ratioB,
		q.Z*ratioA + o.Z*ratioB,
		q.W*ratioA + o.W*ratioB,
	}
}

// Integrate advances q by angular velocity w over dt, gating each axis
// by angularFactor, following q' = q + dt/2 * (w (x) q).
func (q Quaternion) Integrate(w Vec3, dt float32, angularFactor Vec3) Quaternion {
	wx := w.X * angularFactor.X
	wy := w.Y * angularFactor.Y
	wz := w.Z * angularFactor.Z

	qx, qy, qz, qw := q.X, q.Y, q.Z, q.W

	dx := 0.5 * dt * (wx*qw + wy*qz - wz*qy)
	dy := 0.5 * dt * (wy*qw + wz*qx - wx*qz)
	dz := 0.5 * dt * (wz*qw + wx*qy - wy*qx)
	dw := 0.5 * dt * (-wx*qx - wy*qy - wz*qz)

	return Quaternion{qx + dx, qy + dy, qz + dz, qw + dw}
}
