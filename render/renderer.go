// Package render implements the software rasterization pipeline. Meshes
// are transformed to clip space, divided by w, mapped to the surface,
// culled by winding and filled with depth tested, perspective correct
// and lit pixels quantized to RGB332 palette indices.
//
// Triangles are not clipped against the near plane. Vertices at or
// behind the camera produce undefined coverage.
package render

import (
	"log/slog"

	"github.com/soypat/softrast/palette"
	"github.com/soypat/softrast/resource"
	"github.com/soypat/softrast/scene"
	"github.com/soypat/softrast/vmath"
)

// Stats counts the work done since the last Begin.
type Stats struct {
	Nodes     int // visible nodes drawn
	Triangles int // triangles submitted
	Culled    int // back facing or degenerate triangles skipped
	Pixels    int // pixels that passed the depth test
}

// Renderer rasterizes meshes into a Surface. The depth buffer and cached
// matrices are reused across frames. A Renderer is not safe for
// concurrent use.
type Renderer struct {
	// Wireframe draws the edges of front facing triangles in white
	// instead of filling them. Depth is neither tested nor written.
	Wireframe bool
	// Filter selects nearest or bilinear texture sampling.
	Filter resource.Filter
	// Light is the direction towards the light in world space.
	Light vmath.Vec3

	log      *slog.Logger
	w, h     int
	depth    []float32
	viewport vmath.Mat4
	proj     vmath.Mat4
	projKey  projectionKey
	view     vmath.Mat4 // last invertible camera view
	stats    Stats
}

type projectionKey struct {
	w, h           int
	fov, near, far float32
}

// NewRenderer returns a renderer with nearest filtering and the default
// light. A nil logger uses slog.Default().
func NewRenderer(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		Light: scene.DefaultLight,
		log:   log,
		view:  vmath.Identity4(),
	}
}

// Stats returns the counters accumulated since the last Begin.
func (r *Renderer) Stats() Stats { return r.stats }

// Begin starts a frame: dst is cleared to background and the depth
// buffer reset to the far plane.
func (r *Renderer) Begin(dst Surface, background uint8) {
	dst.Clear(background)
	r.resize(dst)
	for i := range r.depth {
		r.depth[i] = 1
	}
	r.stats = Stats{}
}

// resize adapts the viewport and depth buffer to dst. Depth storage only
// grows. New depth values start at the far plane.
func (r *Renderer) resize(dst Surface) {
	w, h := dst.Size()
	if w == r.w && h == r.h && len(r.depth) == w*h {
		return
	}
	r.w, r.h = w, h
	n := w * h
	if cap(r.depth) < n {
		r.depth = make([]float32, n)
	} else {
		r.depth = r.depth[:n]
	}
	for i := range r.depth {
		r.depth[i] = 1
	}
	r.viewport = vmath.Viewport(w, h)
}

// projection returns the camera projection for the current surface,
// recomputing it only when the surface size or camera lens change.
func (r *Renderer) projection(cam scene.Camera) vmath.Mat4 {
	key := projectionKey{w: r.w, h: r.h, fov: cam.FOV, near: cam.Near, far: cam.Far}
	if key != r.projKey {
		r.projKey = key
		r.proj = cam.Projection(float32(r.w) / float32(r.h))
		r.log.Debug("projection updated", "width", r.w, "height", r.h, "fov", cam.FOV)
	}
	return r.proj
}

// Render draws a full frame of s into dst and returns the frame stats.
// If the camera pose is singular the last valid view is reused.
func (r *Renderer) Render(dst Surface, s *scene.Scene) Stats {
	r.Begin(dst, s.Background)
	if r.w == 0 || r.h == 0 {
		return r.stats
	}
	view, err := s.Camera.View()
	if err != nil {
		r.log.Warn("keeping previous camera view", "error", err)
	} else {
		r.view = view
	}
	vp := r.projection(s.Camera).Mul(r.view)
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if !n.Visible || n.Mesh == nil {
			continue
		}
		r.stats.Nodes++
		r.DrawMesh(dst, vp.Mul(n.Transform), n.Transform, n.Mesh, n.Texture)
	}
	r.log.Debug("frame rendered", "nodes", r.stats.Nodes, "triangles", r.stats.Triangles,
		"culled", r.stats.Culled, "pixels", r.stats.Pixels)
	return r.stats
}

// DrawMesh draws every triangle of m. mvp maps model space to clip space
// and model maps normals to world space for lighting. A nil tex draws the
// mesh white.
func (r *Renderer) DrawMesh(dst Surface, mvp, model vmath.Mat4, m *resource.Mesh, tex *resource.Texture) {
	r.resize(dst)
	for i := 0; i < m.Len(); i++ {
		r.drawTriangle(dst, mvp, model, m.Triangle(i), tex)
	}
}

func (r *Renderer) drawTriangle(dst Surface, mvp, model vmath.Mat4, tri [3]resource.Vertex, tex *resource.Texture) {
	r.stats.Triangles++
	var sv [3]screenVertex
	for i, v := range tri {
		clip := mvp.MulVec(vmath.V4FromV3(v.Pos, 1))
		ndc := clip.Div(clip[3])
		pos := r.viewport.MulVec(ndc)
		pos[3] = clip[3]
		sv[i] = screenVertex{pos: pos, normal: v.Normal, uv: v.UV}
	}
	area2 := triangleArea2(sv[0].pos.XY(), sv[1].pos.XY(), sv[2].pos.XY())
	if classify(area2) != -1 {
		r.stats.Culled++
		return
	}
	if r.Wireframe {
		for i := range sv {
			a, b := sv[i].pos, sv[(i+1)%3].pos
			r.drawEdge(dst, [2]float32{a[0], a[1]}, [2]float32{b[0], b[1]}, palette.White)
		}
		return
	}
	setup := newTriangleSetup(sv, area2)
	r.fill(dst, model, &setup, tex)
}
