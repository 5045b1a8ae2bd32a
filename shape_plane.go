package gophys

import "math"

// Plane is an infinite half-space boundary. Its local normal is +Z;
// Shape placement (position + orientation) rotates/translates that
// normal into the world.
type Plane struct{}

func NewPlane() *Plane { return &Plane{} }

func (p *Plane) Kind() ShapeKind { return ShapeKindPlane }

// Volume is unbounded for an infinite plane; callers should not rely on
// a specific value, only that it is not used to derive finite mass
// properties (planes are expected to be static).
func (p *Plane) Volume() float32 { return float32(math.MaxFloat32) }

// BoundingSphereRadius is a sentinel "as large as representable" value:
// per spec this must not be depended on as a specific literal, only as
// large enough that bounding-sphere broadphase checks never reject a
// plane pair.
func (p *Plane) BoundingSphereRadius() float32 { return math.MaxFloat32 }

func (p *Plane) CalculateLocalInertia(_ float32) Vec3 { return Vec3Zero }

func (p *Plane) CalculateWorldAABB(pos Vec3, _ Quaternion) AABB {
	const big = float32(math.MaxFloat32 / 4)
	return AABB{
		LowerBound: Vec3{pos.X - big, pos.Y - big, pos.Z - big},
		UpperBound: Vec3{pos.X + big, pos.Y + big, pos.Z + big},
	}
}

// WorldNormal returns the plane's local +Z normal rotated by quat.
func (p *Plane) WorldNormal(quat Quaternion) Vec3 {
	return quat.Vmult(Vec3UnitZ)
}
