package render

import (
	"github.com/chewxy/math32"
	"github.com/soypat/softrast/palette"
	"github.com/soypat/softrast/resource"
	"github.com/soypat/softrast/vmath"
)

// screenVertex is a vertex after the viewport transform. pos holds window
// x, y, depth and the clip space w.
type screenVertex struct {
	pos    vmath.Vec4
	normal vmath.Vec3
	uv     vmath.Vec2
}

// triangleArea2 returns twice the signed area of triangle abc in window
// coordinates. Front faces, counter-clockwise in NDC, come out negative
// once the viewport flips y.
func triangleArea2(a, b, c vmath.Vec2) float32 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return ab[0]*ac[1] - ac[0]*ab[1]
}

// classify returns the winding of a window space triangle from its
// doubled area: -1 for front faces, 0 for degenerate triangles and +1
// for back faces.
func classify(area2 float32) int {
	switch {
	case area2 < 0:
		return -1
	case area2 > 0:
		return 1
	}
	return 0
}

// edge is the line equation a*x + b*y + c through two screen points.
// It is zero on the line and changes sign across it.
type edge struct {
	a, b, c float32
	topLeft bool
}

func newEdge(p0, p1 vmath.Vec2, sign float32) edge {
	e := edge{
		a: p0[1] - p1[1],
		b: p1[0] - p0[0],
		c: p0[0]*p1[1] - p1[0]*p0[1],
	}
	// Orient so the interior is positive, then an edge owns its pixels
	// when the interior lies below a horizontal edge or right of it.
	A, B := sign*e.a, sign*e.b
	e.topLeft = A > 0 || (A == 0 && B > 0)
	return e
}

func (e edge) eval(x, y float32) float32 { return e.a*x + e.b*y + e.c }

// inside reports whether a point with edge value v lies in the
// triangle's half plane, resolving points on the edge with the top-left
// rule.
func (e edge) inside(v, sign float32) bool {
	v *= sign
	return v > 0 || (v == 0 && e.topLeft)
}

// triangleSetup holds the per triangle state used by the fill loop.
type triangleSetup struct {
	v       [3]screenVertex
	e01     edge
	e12     edge
	e20     edge
	sign    float32
	invArea float32
	ooz     [3]float32 // 1/w per vertex
}

func newTriangleSetup(v [3]screenVertex, area2 float32) triangleSetup {
	p0, p1, p2 := v[0].pos.XY(), v[1].pos.XY(), v[2].pos.XY()
	sign := float32(classify(area2))
	return triangleSetup{
		v:       v,
		e01:     newEdge(p0, p1, sign),
		e12:     newEdge(p1, p2, sign),
		e20:     newEdge(p2, p0, sign),
		sign:    sign,
		invArea: 1 / area2,
		ooz:     [3]float32{1 / v[0].pos[3], 1 / v[1].pos[3], 1 / v[2].pos[3]},
	}
}

// barycentric returns the barycentric weights of (x, y) and whether the
// point is covered by the triangle.
func (t *triangleSetup) barycentric(x, y float32) (b [3]float32, covered bool) {
	e12 := t.e12.eval(x, y)
	e20 := t.e20.eval(x, y)
	e01 := t.e01.eval(x, y)
	covered = t.e12.inside(e12, t.sign) && t.e20.inside(e20, t.sign) && t.e01.inside(e01, t.sign)
	return [3]float32{e12 * t.invArea, e20 * t.invArea, e01 * t.invArea}, covered
}

// interpolate blends the vertex attributes with perspective correction:
// attributes are divided by w, blended linearly in screen space and the
// result multiplied back by the interpolated w.
func (t *triangleSetup) interpolate(b [3]float32) (depth float32, n vmath.Vec3, uv vmath.Vec2) {
	var oozSum float32
	for i := range b {
		k := b[i] * t.ooz[i]
		oozSum += k
		depth += k * t.v[i].pos[2]
		n = n.Add(t.v[i].normal.Scale(k))
		uv = uv.Add(t.v[i].uv.Scale(k))
	}
	z := 1 / oozSum
	return depth * z, n.Scale(z), uv.Scale(z)
}

// fill rasterizes a front facing triangle, depth testing and shading
// every covered pixel center.
func (r *Renderer) fill(dst Surface, model vmath.Mat4, t *triangleSetup, tex *resource.Texture) {
	minX, minY := t.v[0].pos[0], t.v[0].pos[1]
	maxX, maxY := minX, minY
	for _, v := range t.v[1:] {
		minX, maxX = math32.Min(minX, v.pos[0]), math32.Max(maxX, v.pos[0])
		minY, maxY = math32.Min(minY, v.pos[1]), math32.Max(maxY, v.pos[1])
	}
	x0 := boundIndex(math32.Floor(minX), r.w)
	x1 := boundIndex(math32.Ceil(maxX), r.w)
	y0 := boundIndex(math32.Floor(minY), r.h)
	y1 := boundIndex(math32.Ceil(maxY), r.h)

	for y := y0; y < y1; y++ {
		py := float32(y) + 0.5
		row := r.depth[y*r.w : (y+1)*r.w]
		for x := x0; x < x1; x++ {
			b, ok := t.barycentric(float32(x)+0.5, py)
			if !ok {
				continue
			}
			d, n, uv := t.interpolate(b)
			if !(d <= row[x]) {
				continue
			}
			row[x] = d
			dst.SetPixel(x, y, r.shade(model, n, uv, tex))
			r.stats.Pixels++
		}
	}
}

// shade applies half Lambert lighting to the texture color.
func (r *Renderer) shade(model vmath.Mat4, n vmath.Vec3, uv vmath.Vec2, tex *resource.Texture) uint8 {
	n = vmath.Rotate(model, n)
	ndotl := vmath.Clamp(n.Dot(r.Light), 0, 1)
	light := 0.5*ndotl + 0.5
	color := vmath.Elem(1)
	if tex != nil {
		color = tex.SampleFilter(r.Filter, uv)
	}
	return palette.PackVec(color.Scale(light))
}

// boundIndex converts a bounding box coordinate to a pixel index in
// [0, n]. NaN maps to 0.
func boundIndex(v float32, n int) int {
	if !(v > 0) {
		return 0
	}
	if v >= float32(n) {
		return n
	}
	return int(v)
}
