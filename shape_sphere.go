package gophys

import "math"

// Sphere is a ball of the given Radius centered on the shape's local origin.
type Sphere struct {
	Radius float32
}

// NewSphere builds a Sphere. It returns an *InvalidShapeParameterError
// when radius is negative.
func NewSphere(radius float32) (*Sphere, error) {
	if radius < 0 {
		return nil, &InvalidShapeParameterError{Shape: "Sphere", Reason: "radius must be >= 0"}
	}
	return &Sphere{Radius: radius}, nil
}

func (s *Sphere) Kind() ShapeKind { return ShapeKindSphere }

func (s *Sphere) Volume() float32 {
	return float32(4.0 / 3.0 * math.Pi * float64(s.Radius) * float64(s.Radius) * float64(s.Radius))
}

func (s *Sphere) BoundingSphereRadius() float32 { return s.Radius }

func (s *Sphere) CalculateLocalInertia(mass float32) Vec3 {
	i := 2.0 / 5.0 * mass * s.Radius * s.Radius
	return Vec3{i, i, i}
}

func (s *Sphere) CalculateWorldAABB(pos Vec3, _ Quaternion) AABB {
	r := Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{LowerBound: pos.Sub(r), UpperBound: pos.Add(r)}
}
