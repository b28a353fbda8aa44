package vmath

import "github.com/chewxy/math32"

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 { return deg * math32.Pi / 180 }

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	var m Mat4
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// Perspective returns a right handed projection matrix looking down -z.
// fov is the vertical field of view in degrees. View space z in
// [-near, -far] maps to NDC z in [-1, 1] and clip w is set to -z.
//
//	f/aspect  0   0                      0
//	0         f   0                      0
//	0         0   (far+near)/(near-far)  2*far*near/(near-far)
//	0         0   -1                     0
func Perspective(fov, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(DegToRad(fov)*0.5)
	var m Mat4
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) / (near - far)
	m[2][3] = -1
	m[3][2] = (2 * far * near) / (near - far)
	return m
}

// Viewport returns the matrix mapping NDC to window coordinates of a
// w by h surface. Y is flipped so that the origin is the top-left pixel
// and NDC z in [-1,1] maps to depth in [0,1].
func Viewport(w, h int) Mat4 {
	hw := float32(w) * 0.5
	hh := float32(h) * 0.5
	var m Mat4
	m[0][0] = hw
	m[1][1] = -hh
	m[2][2] = 0.5
	m[3] = Vec4{hw, hh, 0.5, 1}
	return m
}

// RotateX returns a rotation of theta degrees about the x axis.
func RotateX(theta float32) Mat4 {
	a := DegToRad(theta)
	s, c := math32.Sin(a), math32.Cos(a)
	var m Mat4
	m[0][0] = 1
	m[1][1] = c
	m[2][1] = -s
	m[1][2] = s
	m[2][2] = c
	m[3][3] = 1
	return m
}

// RotateY returns a rotation of theta degrees about the y axis.
func RotateY(theta float32) Mat4 {
	a := DegToRad(theta)
	s, c := math32.Sin(a), math32.Cos(a)
	var m Mat4
	m[0][0] = c
	m[2][0] = s
	m[1][1] = 1
	m[0][2] = -s
	m[2][2] = c
	m[3][3] = 1
	return m
}

// RotateZ returns a rotation of theta degrees about the z axis.
func RotateZ(theta float32) Mat4 {
	a := DegToRad(theta)
	s, c := math32.Sin(a), math32.Cos(a)
	var m Mat4
	m[0][0] = c
	m[1][0] = -s
	m[0][1] = s
	m[1][1] = c
	m[2][2] = 1
	m[3][3] = 1
	return m
}

// Scale returns a uniform scaling matrix.
func Scale(s float32) Mat4 {
	var m Mat4
	for i := 0; i < 3; i++ {
		m[i][i] = s
	}
	m[3][3] = 1
	return m
}

// Translate returns a translation matrix.
func Translate(t Vec3) Mat4 {
	m := Identity4()
	m[3] = V4FromV3(t, 1)
	return m
}

// LookAt returns the pose (camera to world transform) of a camera placed at
// eye looking towards center. The camera looks down its local -z axis.
// The view matrix is the inverse of the returned pose.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Unit()
	s := f.Cross(up).Unit()
	u := s.Cross(f)
	return Mat4{
		V4FromV3(s, 0),
		V4FromV3(u, 0),
		V4FromV3(f.Scale(-1), 0),
		V4FromV3(eye, 1),
	}
}
