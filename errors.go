package gophys

import "fmt"

// SingularMatrixError is returned by Mat3.Solve and Mat3.Reverse when
// Gauss elimination encounters a pivot that cannot be made non-zero by
// row swapping.
type SingularMatrixError struct {
	Row int
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("gophys: singular matrix, no pivot for row %d", e.Row)
}

// InvalidShapeParameterError is returned at shape construction time when
// a parameter violates the shape's invariants (negative radius, a convex
// face referencing a vertex index out of range, ...).
type InvalidShapeParameterError struct {
	Shape  string
	Reason string
}

func (e *InvalidShapeParameterError) Error() string {
	return fmt.Sprintf("gophys: invalid %s parameter: %s", e.Shape, e.Reason)
}

// UnsupportedEulerOrderError is returned by Quaternion.ToEuler for any
// order other than YZX.
type UnsupportedEulerOrderError struct {
	Order EulerOrder
}

func (e *UnsupportedEulerOrderError) Error() string {
	return fmt.Sprintf("gophys: unsupported euler order %v, only YZX decomposes", e.Order)
}
