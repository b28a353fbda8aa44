// Package scene describes what is drawn in a frame: a camera and a list of
// mesh references placed in the world. Scenes are built in code or loaded
// from YAML descriptions.
package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/softrast/internal/d3"
	"github.com/soypat/softrast/resource"
	"github.com/soypat/softrast/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultLight is the light direction used when none is configured.
var DefaultLight = vmath.V3(0.732, 0.732, 0.732)

// MeshRef places a mesh in the world. Mesh and Texture are owned by their
// catalogs. A nil Texture draws the mesh untextured.
type MeshRef struct {
	Name      string
	Transform vmath.Mat4
	Mesh      *resource.Mesh
	Texture   *resource.Texture
	Visible   bool
	// Motion, if set, recomputes Transform on every Update.
	Motion *Motion
}

// Motion is a node placement with a constant angular velocity.
// Rotations are applied about x first, then y, then z. A zero Scale
// leaves the mesh unscaled.
type Motion struct {
	Translate vmath.Vec3
	Rotate    vmath.Vec3 // degrees
	Scale     float32
	Spin      vmath.Vec3 // degrees per second
}

// At returns the model transform at time t seconds.
func (m *Motion) At(t float32) vmath.Mat4 {
	scale := m.Scale
	if scale == 0 {
		scale = 1
	}
	r := m.Rotate.Add(m.Spin.Scale(t))
	for i := range r {
		r[i] = math32.Mod(r[i], 360)
	}
	return vmath.Translate(m.Translate).
		Mul(vmath.RotateZ(r[2])).
		Mul(vmath.RotateY(r[1])).
		Mul(vmath.RotateX(r[0])).
		Mul(vmath.Scale(scale))
}

// Settings are the renderer options a scene asks for.
type Settings struct {
	Wireframe bool
	Filter    resource.Filter
	Light     vmath.Vec3
}

// Scene is a camera and the meshes it looks at.
type Scene struct {
	Camera     Camera
	Nodes      []MeshRef
	Background uint8 // palette index the surface is cleared to
	Settings   Settings
	// Paused stops Advance from moving the scene clock.
	Paused bool

	time float32
}

// New returns an empty scene with the default camera and light.
func New() *Scene {
	return &Scene{
		Camera:   DefaultCamera(),
		Settings: Settings{Light: DefaultLight},
	}
}

// Add appends a mesh reference to the scene and returns its index.
func (s *Scene) Add(ref MeshRef) int {
	if ref.Motion != nil {
		ref.Transform = ref.Motion.At(s.time)
	}
	s.Nodes = append(s.Nodes, ref)
	return len(s.Nodes) - 1
}

// Node returns the node with the given name.
func (s *Scene) Node(name string) (*MeshRef, error) {
	for i := range s.Nodes {
		if s.Nodes[i].Name == name {
			return &s.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("no node named %q", name)
}

// Time returns the scene clock in seconds.
func (s *Scene) Time() float32 { return s.time }

// Advance moves the scene clock by dt seconds unless paused and updates
// every animated node.
func (s *Scene) Advance(dt float32) {
	if !s.Paused {
		s.time += dt
	}
	s.Update(s.time)
}

// Update sets the scene clock to t and recomputes animated transforms.
func (s *Scene) Update(t float32) {
	s.time = t
	for i := range s.Nodes {
		if m := s.Nodes[i].Motion; m != nil {
			s.Nodes[i].Transform = m.At(t)
		}
	}
}

// ToggleVisible flips the visibility of every node.
func (s *Scene) ToggleVisible() {
	for i := range s.Nodes {
		s.Nodes[i].Visible = !s.Nodes[i].Visible
	}
}

// Bounds returns the world space box enclosing every visible node.
func (s *Scene) Bounds() d3.Box {
	box := d3.EmptyBox()
	for _, n := range s.Nodes {
		if !n.Visible || n.Mesh == nil {
			continue
		}
		model := n.Transform
		box = box.Extend(n.Mesh.Bounds().Transform(func(v r3.Vec) r3.Vec {
			return d3.FromArray(vmath.Transform(model, d3.ToArray(v)))
		}))
	}
	return box
}
