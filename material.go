package gophys

import "sync/atomic"

var materialIDCounter uint64

func nextMaterialID() uint64 { return atomic.AddUint64(&materialIDCounter, 1) - 1 }

// Material describes the surface properties of a shape in isolation;
// two materials combine into a ContactMaterial when both are present on
// colliding shapes.
type Material struct {
	ID          uint64
	Name        string
	Friction    float32
	Restitution float32
}

// NewMaterial allocates a Material with the next monotonic id and the
// library defaults (friction 0.3, restitution 0.3) unless overridden by
// the caller after construction.
func NewMaterial(name string) *Material {
	return &Material{
		ID:          nextMaterialID(),
		Name:        name,
		Friction:    0.3,
		Restitution: 0.3,
	}
}

// ContactMaterial resolves the combined behavior of two Materials in
// contact: friction/restitution plus the SPOOK stiffness/relaxation used
// to parameterize the contact and friction equations.
type ContactMaterial struct {
	ID                uint64
	MaterialA         *Material
	MaterialB         *Material
	Friction          float32
	Restitution       float32
	ContactStiffness  float32
	ContactRelaxation float32
	FrictionStiffness float32
	FrictionRelaxation float32
}

func NewContactMaterial(a, b *Material) *ContactMaterial {
	return &ContactMaterial{
		ID:                 nextMaterialID(),
		MaterialA:          a,
		MaterialB:          b,
		Friction:           (a.Friction + b.Friction) / 2,
		Restitution:        (a.Restitution + b.Restitution) / 2,
		ContactStiffness:   1e7,
		ContactRelaxation:  3,
		FrictionStiffness:  1e7,
		FrictionRelaxation: 3,
	}
}
