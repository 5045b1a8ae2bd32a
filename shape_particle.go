package gophys

// Particle is a zero-size point shape, used for point masses and for
// shapes that should participate in broadphase/narrowphase without
// occupying volume.
type Particle struct{}

func NewParticle() *Particle { return &Particle{} }

func (p *Particle) Kind() ShapeKind { return ShapeKindParticle }

func (p *Particle) Volume() float32 { return 0 }

func (p *Particle) BoundingSphereRadius() float32 { return 0 }

func (p *Particle) CalculateLocalInertia(_ float32) Vec3 { return Vec3Zero }

func (p *Particle) CalculateWorldAABB(pos Vec3, _ Quaternion) AABB {
	return AABB{LowerBound: pos, UpperBound: pos}
}
