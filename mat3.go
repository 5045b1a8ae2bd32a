package gophys

import "github.com/go-gl/mathgl/mgl32"

// Mat3 is a row-major 3x3 matrix of float32.
//
//	[ E00 E01 E02 ]
//	[ E10 E11 E12 ]
//	[ E20 E21 E22 ]
//
// Vmult, Mmult and Transpose delegate to mgl32.Mat3, which stores its
// elements column-major; mgl() and mat3FromMgl() carry the transpose
// between the two layouts.
type Mat3 struct {
	E00, E01, E02 float32
	E10, E11, E12 float32
	E20, E21, E22 float32
}

func (m Mat3) mgl() mgl32.Mat3 {
	return mgl32.Mat3{
		m.E00, m.E10, m.E20,
		m.E01, m.E11, m.E21,
		m.E02, m.E12, m.E22,
	}
}

func mat3FromMgl(m mgl32.Mat3) Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

func IdentityMat3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func ZeroMat3() Mat3 { return Mat3{} }

// At returns the element at (row, col), zero-indexed.
func (m Mat3) At(row, col int) float32 {
	switch {
	case row == 0 && col == 0:
		return m.E00
	case row == 0 && col == 1:
		return m.E01
	case row == 0 && col == 2:
		return m.E02
	case row == 1 && col == 0:
		return m.E10
	case row == 1 && col == 1:
		return m.E11
	case row == 1 && col == 2:
		return m.E12
	case row == 2 && col == 0:
		return m.E20
	case row == 2 && col == 1:
		return m.E21
	case row == 2 && col == 2:
		return m.E22
	default:
		return 0
	}
}

// Set stores v at (row, col), zero-indexed.
func (m *Mat3) Set(row, col int, v float32) {
	switch {
	case row == 0 && col == 0:
		m.E00 = v
	case row == 0 && col == 1:
		m.E01 = v
	case row == 0 && col == 2:
		m.E02 = v
	case row == 1 && col == 0:
		m.E10 = v
	case row == 1 && col == 1:
		m.E11 = v
	case row == 1 && col == 2:
		m.E12 = v
	case row == 2 && col == 0:
		m.E20 = v
	case row == 2 && col == 1:
		m.E21 = v
	case row == 2 && col == 2:
		m.E22 = v
	}
}

func (m Mat3) Trace() float32 { return m.E00 + m.E11 + m.E22 }

func (m *Mat3) SetTrace(t float32) {
	m.E00, m.E11, m.E22 = t, t, t
}

// Vmult multiplies m by column vector v.
func (m Mat3) Vmult(v Vec3) Vec3 { return vec3FromMgl(m.mgl().Mul3x1(v.mgl())) }

func (m Mat3) ScalarMult(s float32) Mat3 {
	return Mat3{
		m.E00 * s, m.E01 * s, m.E02 * s,
		m.E10 * s, m.E11 * s, m.E12 * s,
		m.E20 * s, m.E21 * s, m.E22 * s,
	}
}

// Mmult returns m * o.
func (m Mat3) Mmult(o Mat3) Mat3 { return mat3FromMgl(m.mgl().Mul3(o.mgl())) }

// ScaleColumns scales each column i of m by v's i'th component.
func (m Mat3) ScaleColumns(v Vec3) Mat3 {
	return Mat3{
		m.E00 * v.X, m.E01 * v.Y, m.E02 * v.Z,
		m.E10 * v.X, m.E11 * v.Y, m.E12 * v.Z,
		m.E20 * v.X, m.E21 * v.Y, m.E22 * v.Z,
	}
}

func (m Mat3) Transpose() Mat3 { return mat3FromMgl(m.mgl().Transpose()) }

func (m Mat3) Determinant() float32 {
	return m.E00*(m.E11*m.E22-m.E12*m.E21) -
		m.E01*(m.E10*m.E22-m.E12*m.E20) +
		m.E02*(m.E10*m.E21-m.E11*m.E20)
}

// Solve solves m*x = b for x via Gauss elimination with partial
// pivoting. It returns a *SingularMatrixError if a pivot column has no
// non-zero entry at or below the diagonal.
func (m Mat3) Solve(b Vec3) (Vec3, error) {
	const n = 3
	var a [n][n + 1]float32
	rows := [n][3]float32{{m.E00, m.E01, m.E02}, {m.E10, m.E11, m.E12}, {m.E20, m.E21, m.E22}}
	rhs := [n]float32{b.X, b.Y, b.Z}
	for i := 0; i < n; i++ {
		copy(a[i][:n], rows[i][:])
		a[i][n] = rhs[i]
	}

	for col := 0; col < n; col++ {
		pivotRow := -1
		var pivotVal float32
		for row := col; row < n; row++ {
			v := a[row][col]
			if v < 0 {
				v = -v
			}
			if pivotRow == -1 || v > pivotVal {
				pivotRow, pivotVal = row, v
			}
		}
		if pivotRow == -1 || a[pivotRow][col] == 0 {
			return Vec3{}, &SingularMatrixError{Row: col}
		}
		a[col], a[pivotRow] = a[pivotRow], a[col]

		pivot := a[col][col]
		for k := col; k <= n; k++ {
			a[col][k] /= pivot
		}
		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := a[row][col]
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}
	return Vec3{a[0][n], a[1][n], a[2][n]}, nil
}

// Reverse returns the inverse of m via the same Gauss-elimination
// machinery as Solve, one column at a time. It returns a
// *SingularMatrixError under the same conditions as Solve.
func (m Mat3) Reverse() (Mat3, error) {
	cols := [3]Vec3{Vec3UnitX, Vec3UnitY, Vec3UnitZ}
	var inv Mat3
	for c, rhs := range cols {
		x, err := m.Solve(rhs)
		if err != nil {
			return Mat3{}, err
		}
		inv.Set(0, c, x.X)
		inv.Set(1, c, x.Y)
		inv.Set(2, c, x.Z)
	}
	return inv, nil
}

// SetRotationFromQuaternion builds the rotation matrix equivalent to q.
func (m *Mat3) SetRotationFromQuaternion(q Quaternion) {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	m.E00 = 1 - (yy + zz)
	m.E01 = xy - wz
	m.E02 = xz + wy

	m.E10 = xy + wz
	m.E11 = 1 - (xx + zz)
	m.E12 = yz - wx

	m.E20 = xz - wy
	m.E21 = yz + wx
	m.E22 = 1 - (xx + yy)
}
