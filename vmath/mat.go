package vmath

import "errors"

// ErrSingular is returned when inverting a matrix with zero determinant.
var ErrSingular = errors.New("vmath: singular matrix")

// Mat2 is a column-major 2x2 matrix. The zero value is the zero matrix.
type Mat2 [2]Vec2

// Mat3 is a column-major 3x3 matrix. The zero value is the zero matrix.
type Mat3 [3]Vec3

// Mat4 is a column-major 4x4 matrix. The zero value is the zero matrix,
// use Identity4 for the identity transform.
type Mat4 [4]Vec4

// Row returns the ith row of m, read across the columns.
func (m Mat2) Row(i int) Vec2 { return Vec2{m[0][i], m[1][i]} }

// Row returns the ith row of m, read across the columns.
func (m Mat3) Row(i int) Vec3 { return Vec3{m[0][i], m[1][i], m[2][i]} }

// Row returns the ith row of m, read across the columns.
func (m Mat4) Row(i int) Vec4 { return Vec4{m[0][i], m[1][i], m[2][i], m[3][i]} }

// Det returns the determinant of m.
func (m Mat2) Det() float32 {
	return m[0][0]*m[1][1] - m[1][0]*m[0][1]
}

// Submatrix returns the 2x2 matrix formed by removing column col and row row from m.
func (m Mat3) Submatrix(col, row int) Mat2 {
	var s Mat2
	dc := 0
	for sc := 0; sc < 3; sc++ {
		if sc == col {
			continue
		}
		dr := 0
		for sr := 0; sr < 3; sr++ {
			if sr == row {
				continue
			}
			s[dc][dr] = m[sc][sr]
			dr++
		}
		dc++
	}
	return s
}

// Det returns the determinant of m by cofactor expansion.
func (m Mat3) Det() float32 {
	var minors [3]float32
	for i := range minors {
		minors[i] = m.Submatrix(0, i).Det()
	}
	return m[0][0]*minors[0] - m[0][1]*minors[1] + m[0][2]*minors[2]
}

// Submatrix returns the 3x3 matrix formed by removing column col and row row from m.
func (m Mat4) Submatrix(col, row int) Mat3 {
	var s Mat3
	dc := 0
	for sc := 0; sc < 4; sc++ {
		if sc == col {
			continue
		}
		dr := 0
		for sr := 0; sr < 4; sr++ {
			if sr == row {
				continue
			}
			s[dc][dr] = m[sc][sr]
			dr++
		}
		dc++
	}
	return s
}

// Det returns the determinant of m by cofactor expansion.
func (m Mat4) Det() float32 {
	var minors [4]float32
	for i := range minors {
		minors[i] = m.Submatrix(0, i).Det()
	}
	return m[0][0]*minors[0] - m[0][1]*minors[1] + m[0][2]*minors[2] - m[0][3]*minors[3]
}

// Transpose returns the transpose of m.
func (m Mat2) Transpose() Mat2 { return Mat2{m.Row(0), m.Row(1)} }

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 { return Mat3{m.Row(0), m.Row(1), m.Row(2)} }

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 { return Mat4{m.Row(0), m.Row(1), m.Row(2), m.Row(3)} }

// Mul returns the matrix product m*b.
func (m Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		r := m.Row(i)
		for j := 0; j < 4; j++ {
			out[j][i] = r.Dot(b[j])
		}
	}
	return out
}

// MulVec returns the product m*v.
func (m Mat4) MulVec(v Vec4) Vec4 {
	var out Vec4
	for i := range out {
		out[i] = m.Row(i).Dot(v)
	}
	return out
}

// Scale multiplies every element of m by s.
func (m Mat4) Scale(s float32) Mat4 {
	for i := range m {
		m[i] = m[i].Scale(s)
	}
	return m
}

// Inverse returns the inverse of m computed from its adjugate.
// If m is singular the zero matrix and ErrSingular are returned.
func Inverse(m Mat4) (Mat4, error) {
	var minors Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			minors[i][j] = m.Submatrix(i, j).Det()
		}
	}
	det := m[0][0]*minors[0][0] - m[0][1]*minors[0][1] + m[0][2]*minors[0][2] - m[0][3]*minors[0][3]
	if det == 0 {
		return Mat4{}, ErrSingular
	}
	var cofactors Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			cofactors[i][j] = minors[i][j]
			if (i+j)&1 != 0 {
				cofactors[i][j] = -cofactors[i][j]
			}
		}
	}
	return cofactors.Transpose().Scale(1 / det), nil
}

// Transform applies m to the point v (w=1) and drops the resulting w.
func Transform(m Mat4, v Vec3) Vec3 {
	return m.MulVec(V4FromV3(v, 1)).XYZ()
}

// Rotate applies only the linear 3x3 part of m to v (w=0).
//
// Rotate is how normals are carried into world space. It is exact for
// rotations and uniform scales only: non-uniform scale requires the
// inverse-transpose, which is not computed here.
func Rotate(m Mat4, v Vec3) Vec3 {
	return m.MulVec(V4FromV3(v, 0)).XYZ()
}
