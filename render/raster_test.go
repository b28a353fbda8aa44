package render

import (
	"math"
	"testing"

	"github.com/soypat/softrast/scene"
	"github.com/soypat/softrast/vmath"
)

func TestWindingClassification(t *testing.T) {
	for _, test := range []struct {
		a, b, c vmath.Vec2
		want    int
	}{
		{vmath.V2(2, 0), vmath.V2(0, 4), vmath.V2(4, 4), -1},
		{vmath.V2(2, 0), vmath.V2(4, 4), vmath.V2(0, 4), 1},
		{vmath.V2(0, 0), vmath.V2(1, 1), vmath.V2(2, 2), 0},
		{vmath.V2(1, 1), vmath.V2(1, 1), vmath.V2(5, -3), 0},
	} {
		area := triangleArea2(test.a, test.b, test.c)
		if got := classify(area); got != test.want {
			t.Errorf("classify(%v,%v,%v) = %d. want %d", test.a, test.b, test.c, got, test.want)
		}
		for _, k := range []float32{0.25, 3, 1000} {
			scaled := triangleArea2(test.a.Scale(k), test.b.Scale(k), test.c.Scale(k))
			if classify(scaled) != test.want {
				t.Errorf("uniform scale by %v changed winding of %v,%v,%v", k, test.a, test.b, test.c)
			}
		}
		swapped := triangleArea2(test.b, test.a, test.c)
		if classify(swapped) != -test.want {
			t.Errorf("swapping vertices did not flip winding of %v,%v,%v", test.a, test.b, test.c)
		}
	}
}

func TestEdgeFunction(t *testing.T) {
	p0, p1, p2 := vmath.V2(2, 0), vmath.V2(0, 4), vmath.V2(4, 4)
	area := triangleArea2(p0, p1, p2)
	e01 := newEdge(p0, p1, -1)
	// The edge function at the opposite vertex equals twice the area.
	if got := e01.eval(p2[0], p2[1]); got != area {
		t.Errorf("E01(p2) = %v. want %v", got, area)
	}
	if got := e01.eval(p0[0], p0[1]); got != 0 {
		t.Errorf("E01(p0) = %v. want 0", got)
	}
}

func TestTopLeftRule(t *testing.T) {
	for _, test := range []struct {
		name   string
		p0, p1 vmath.Vec2
		want   bool
	}{
		// Edges of the front facing square (4,0) (0,0) (0,4) (4,4).
		{"top edge", vmath.V2(4, 0), vmath.V2(0, 0), true},
		{"bottom edge", vmath.V2(0, 4), vmath.V2(4, 4), false},
		{"left edge", vmath.V2(0, 0), vmath.V2(0, 4), true},
		{"right edge", vmath.V2(4, 4), vmath.V2(4, 0), false},
	} {
		e := newEdge(test.p0, test.p1, -1)
		if e.topLeft != test.want {
			t.Errorf("%s: topLeft = %v. want %v", test.name, e.topLeft, test.want)
		}
		if e.inside(0, -1) != test.want {
			t.Errorf("%s: point on edge inside = %v. want %v", test.name, !test.want, test.want)
		}
	}
}

func TestCoverageMask(t *testing.T) {
	sv := [3]screenVertex{
		{pos: vmath.V4(2, 0, 0.5, 1)},
		{pos: vmath.V4(0, 4, 0.5, 1)},
		{pos: vmath.V4(4, 4, 0.5, 1)},
	}
	setup := newTriangleSetup(sv, triangleArea2(sv[0].pos.XY(), sv[1].pos.XY(), sv[2].pos.XY()))
	want := [4]string{
		"....",
		".##.",
		".##.",
		"####",
	}
	for y := 0; y < 4; y++ {
		var row []byte
		for x := 0; x < 4; x++ {
			b, ok := setup.barycentric(float32(x)+0.5, float32(y)+0.5)
			if ok {
				row = append(row, '#')
				if s := b[0] + b[1] + b[2]; math.Abs(float64(s-1)) > 1e-6 {
					t.Errorf("barycentric weights at (%d,%d) sum to %v", x, y, s)
				}
			} else {
				row = append(row, '.')
			}
		}
		if string(row) != want[y] {
			t.Errorf("row %d: got %s. want %s", y, row, want[y])
		}
	}
	// Weights equal one at their vertex.
	for i, v := range sv {
		b, _ := setup.barycentric(v.pos[0], v.pos[1])
		if math.Abs(float64(b[i]-1)) > 1e-6 {
			t.Errorf("weight %d at its vertex = %v. want 1", i, b[i])
		}
	}
}

func TestPerspectiveCorrectInterpolation(t *testing.T) {
	sv := [3]screenVertex{
		{pos: vmath.V4(0, 0, 0.2, 1), uv: vmath.V2(0, 0), normal: vmath.V3(0, 0, 1)},
		{pos: vmath.V4(8, 0, 0.9, 5), uv: vmath.V2(1, 0), normal: vmath.V3(0, 0, 1)},
		{pos: vmath.V4(0, 8, 0.2, 1), uv: vmath.V2(0, 1), normal: vmath.V3(0, 0, 1)},
	}
	setup := newTriangleSetup(sv, 64)
	third := float32(1) / 3
	depth, n, uv := setup.interpolate([3]float32{third, third, third})
	// u = (b1/w1) / sum(bi/wi) = (1/15) / (11/15).
	wantU, wantV := float32(1)/11, float32(5)/11
	if math.Abs(float64(uv[0]-wantU)) > 1e-5 || math.Abs(float64(uv[1]-wantV)) > 1e-5 {
		t.Errorf("uv = %v. want (%v,%v)", uv, wantU, wantV)
	}
	if math.Abs(float64(uv[0]-third)) < 0.1 {
		t.Errorf("uv %v equals screen linear interpolation", uv)
	}
	wantDepth := (0.2 + 0.9/5 + 0.2) * 15 / 11 / 3
	if math.Abs(float64(depth)-wantDepth) > 1e-5 {
		t.Errorf("depth = %v. want %v", depth, wantDepth)
	}
	if !vmath.EqualWithin(n, vmath.V3(0, 0, 1), 1e-5) {
		t.Errorf("constant normal interpolated to %v", n)
	}
	// With equal w perspective correction reduces to linear blending.
	for i := range sv {
		sv[i].pos[3] = 2
	}
	setup = newTriangleSetup(sv, 64)
	_, _, uv = setup.interpolate([3]float32{0.5, 0.25, 0.25})
	if !vmath.EqualWithin(vmath.V3(uv[0], uv[1], 0), vmath.V3(0.25, 0.25, 0), 1e-6) {
		t.Errorf("affine uv = %v. want (0.25,0.25)", uv)
	}
}

func TestBoundIndex(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for _, test := range []struct {
		v    float32
		n    int
		want int
	}{
		{-3, 10, 0},
		{0, 10, 0},
		{4, 10, 4},
		{10, 10, 10},
		{1e9, 10, 10},
		{nan, 10, 0},
		{inf, 10, 10},
		{-inf, 10, 0},
	} {
		if got := boundIndex(test.v, test.n); got != test.want {
			t.Errorf("boundIndex(%v,%d) = %d. want %d", test.v, test.n, got, test.want)
		}
	}
}

func TestProjectionCache(t *testing.T) {
	r := NewRenderer(nil)
	r.resize(NewFramebuffer(40, 20))
	cam := scene.DefaultCamera()
	p := r.projection(cam)
	if p != cam.Projection(2) {
		t.Fatal("projection does not use surface aspect")
	}
	r.proj[0][0] = 42 // poison cache
	if got := r.projection(cam); got[0][0] != 42 {
		t.Error("projection recomputed with unchanged inputs")
	}
	cam.FOV = 60
	if got := r.projection(cam); got != cam.Projection(2) {
		t.Error("projection not recomputed after fov change")
	}
	r.resize(NewFramebuffer(20, 20))
	if got := r.projection(cam); got != cam.Projection(1) {
		t.Error("projection not recomputed after resize")
	}
}

func TestDepthBufferReuse(t *testing.T) {
	r := NewRenderer(nil)
	r.Begin(NewFramebuffer(8, 8), 0)
	big := &r.depth[0]
	r.Begin(NewFramebuffer(4, 4), 0)
	if len(r.depth) != 16 || &r.depth[0] != big {
		t.Error("shrinking the surface reallocated the depth buffer")
	}
	for _, d := range r.depth {
		if d != 1 {
			t.Fatalf("depth reset to %v. want 1", d)
		}
	}
}
