package gophys

// Transform is a position + orientation pair, used to convert points and
// vectors between a body's local frame and the world frame.
type Transform struct {
	Position   Vec3
	Quaternion Quaternion
}

func IdentityTransform() Transform {
	return Transform{Position: Vec3Zero, Quaternion: IdentityQuaternion()}
}

// PointToLocalFrame converts world point p into the frame described by t.
func PointToLocalFrame(t Transform, p Vec3) Vec3 {
	return t.Quaternion.Conjugate().Vmult(p.Sub(t.Position))
}

// PointToWorldFrame converts local point p (expressed in the frame
// described by t) into world space.
func PointToWorldFrame(t Transform, p Vec3) Vec3 {
	return t.Quaternion.Vmult(p).Add(t.Position)
}

// VectorToLocalFrame converts world direction v (no translation applied)
// into the frame described by t.
func VectorToLocalFrame(t Transform, v Vec3) Vec3 {
	return t.Quaternion.Conjugate().Vmult(v)
}

// VectorToWorldFrame converts local direction v into world space.
func VectorToWorldFrame(t Transform, v Vec3) Vec3 {
	return t.Quaternion.Vmult(v)
}

func (t Transform) PointToLocal(p Vec3) Vec3  { return PointToLocalFrame(t, p) }
func (t Transform) PointToWorld(p Vec3) Vec3  { return PointToWorldFrame(t, p) }
func (t Transform) VectorToLocal(v Vec3) Vec3 { return VectorToLocalFrame(t, v) }
func (t Transform) VectorToWorld(v Vec3) Vec3 { return VectorToWorldFrame(t, v) }
