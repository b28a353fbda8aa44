// Package vmath implements the single precision vector and matrix
// algebra used by the rasterizer.
//
// Vectors are fixed size arrays so components may be read by ordinal
// index (v[0]) or by name (v.X()) over the same storage. Matrices are
// stored column-major as arrays of column vectors: m[c][r] is the element
// in column c and row r.
package vmath

import "github.com/chewxy/math32"

// Vec2 is a 2D vector.
type Vec2 [2]float32

// Vec3 is a 3D vector.
type Vec3 [3]float32

// Vec4 is a 4D (homogeneous) vector.
type Vec4 [4]float32

func V2(x, y float32) Vec2       { return Vec2{x, y} }
func V3(x, y, z float32) Vec3    { return Vec3{x, y, z} }
func V4(x, y, z, w float32) Vec4 { return Vec4{x, y, z, w} }

// Elem returns a Vec3 with all components set to s.
func Elem(s float32) Vec3 { return Vec3{s, s, s} }

// V4FromV3 extends v with a homogeneous w component.
func V4FromV3(v Vec3, w float32) Vec4 { return Vec4{v[0], v[1], v[2], w} }

func (a Vec2) X() float32 { return a[0] }
func (a Vec2) Y() float32 { return a[1] }

func (a Vec3) X() float32 { return a[0] }
func (a Vec3) Y() float32 { return a[1] }
func (a Vec3) Z() float32 { return a[2] }

func (a Vec4) X() float32 { return a[0] }
func (a Vec4) Y() float32 { return a[1] }
func (a Vec4) Z() float32 { return a[2] }
func (a Vec4) W() float32 { return a[3] }

// XY returns the first two components.
func (a Vec3) XY() Vec2 { return Vec2{a[0], a[1]} }

// XY returns the first two components.
func (a Vec4) XY() Vec2 { return Vec2{a[0], a[1]} }

// XYZ drops the w component.
func (a Vec4) XYZ() Vec3 { return Vec3{a[0], a[1], a[2]} }

// Add adds two vectors. Return v = a + b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a[0] + b[0], a[1] + b[1]} }

// Sub subtracts two vectors. Return v = a - b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a[0] - b[0], a[1] - b[1]} }

// Mul returns the Hadamard (component-wise) product of a and b.
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{a[0] * b[0], a[1] * b[1]} }

// Scale multiplies every component by s.
func (a Vec2) Scale(s float32) Vec2 { return Vec2{a[0] * s, a[1] * s} }

// Div divides every component by s. The reciprocal is computed once.
func (a Vec2) Div(s float32) Vec2 { return a.Scale(1 / s) }

// Dot returns the dot product a·b.
func (a Vec2) Dot(b Vec2) float32 { return a[0]*b[0] + a[1]*b[1] }

// Add adds two vectors. Return v = a + b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

// Sub subtracts two vectors. Return v = a - b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// Mul returns the Hadamard (component-wise) product of a and b.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]} }

// Scale multiplies every component by s.
func (a Vec3) Scale(s float32) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }

// Div divides every component by s. The reciprocal is computed once.
func (a Vec3) Div(s float32) Vec3 { return a.Scale(1 / s) }

// Dot returns the dot product a·b.
func (a Vec3) Dot(b Vec3) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Cross returns the cross product a×b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len returns the euclidean norm of a.
func (a Vec3) Len() float32 { return math32.Sqrt(a.Dot(a)) }

// Unit returns a scaled to unit length. The zero vector is returned unchanged.
func (a Vec3) Unit() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Div(l)
}

// Add adds two vectors. Return v = a + b.
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Sub subtracts two vectors. Return v = a - b.
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Scale multiplies every component by s.
func (a Vec4) Scale(s float32) Vec4 { return Vec4{a[0] * s, a[1] * s, a[2] * s, a[3] * s} }

// Div divides every component by s. The reciprocal is computed once.
func (a Vec4) Div(s float32) Vec4 { return a.Scale(1 / s) }

// Dot returns the dot product a·b.
func (a Vec4) Dot(b Vec4) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3] }

// Lerp interpolates linearly between a and b: a*(1-t) + b*t.
func Lerp(a, b, t float32) float32 { return a*(1-t) + b*t }

// Lerp3 interpolates linearly between a and b component-wise.
func Lerp3(a, b Vec3, t float32) Vec3 {
	return Vec3{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

// Clamp x between lo and hi, assume lo <= hi.
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// EqualWithin reports whether every component of a and b differ by at most tol.
func EqualWithin(a, b Vec3, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}
