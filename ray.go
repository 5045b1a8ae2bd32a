package gophys

// RayMode controls how Ray.IntersectWorld collects hits.
type RayMode int

const (
	// RayModeClosest keeps only the hit with the smallest positive distance.
	RayModeClosest RayMode = 1 << iota
	// RayModeAny stops at the first hit that passes the report filters.
	RayModeAny
	// RayModeAll invokes the callback for every hit that passes the filters.
	RayModeAll
)

// RaycastOptions configures a Ray.IntersectWorld call.
type RaycastOptions struct {
	CollisionFilterMask  int32
	CollisionFilterGroup int32
	SkipBackfaces        bool
	CheckCollisionResponse bool
	Mode                 RayMode
	// Callback receives each RaycastResult when Mode is RayModeAll. It
	// returns false to abort iterating further hits.
	Callback func(RaycastResult) bool
}

func DefaultRaycastOptions() RaycastOptions {
	return RaycastOptions{
		CollisionFilterMask:    -1,
		CollisionFilterGroup:   -1,
		SkipBackfaces:          false,
		CheckCollisionResponse: true,
		Mode:                   RayModeClosest,
	}
}

// Ray is a line segment from From to To used for raycast queries.
type Ray struct {
	From      Vec3
	To        Vec3
	Direction Vec3 // unit vector from From towards To
	Length    float32
}

// NewRay builds a Ray and precomputes its direction and length.
func NewRay(from, to Vec3) Ray {
	d := to.Sub(from)
	length := d.Length()
	dir := d
	if length != 0 {
		dir = d.Scale(1 / length)
	}
	return Ray{From: from, To: to, Direction: dir, Length: length}
}

// RaycastResult captures a single shape/ray intersection.
type RaycastResult struct {
	HasHit      bool
	Body        *Body
	Shape       *Shape
	HitPointWorld Vec3
	HitNormalWorld Vec3
	Distance    float32
	ShouldStop  bool
}

// isBackface reports whether the hit should be rejected as a backface:
// the surface normal points the same way as the ray direction.
func (r Ray) isBackface(normal Vec3) bool {
	return normal.Dot(r.Direction) >= 0
}
