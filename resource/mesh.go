// Package resource loads and owns the meshes and textures referenced by a
// scene. Resources are immutable once loaded and live as long as the
// catalog that loaded them.
package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/softrast/internal/d3"
	"github.com/soypat/softrast/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnsupportedFormat is returned when a mesh file extension has no loader.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Vertex is a mesh vertex with its normal and texture coordinate.
type Vertex struct {
	Pos    vmath.Vec3
	Normal vmath.Vec3
	UV     vmath.Vec2
}

// Mesh is a flattened triangle list: vertices 3i, 3i+1 and 3i+2 form
// triangle i. Front faces wind counter-clockwise in model space.
type Mesh struct {
	Vertices []Vertex
}

// NewIndexedMesh flattens an indexed triangle list into a Mesh.
func NewIndexedMesh(vertices []Vertex, indices []int) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d not a multiple of 3", len(indices))
	}
	m := &Mesh{Vertices: make([]Vertex, len(indices))}
	for i, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("index %d at position %d out of range [0,%d)", idx, i, len(vertices))
		}
		m.Vertices[i] = vertices[idx]
	}
	return m, nil
}

// Len returns the number of triangles in the mesh.
func (m *Mesh) Len() int { return len(m.Vertices) / 3 }

// Triangle returns the vertices of the ith triangle.
func (m *Mesh) Triangle(i int) [3]Vertex {
	return [3]Vertex{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
}

// Bounds returns the model space bounding box of the mesh. An empty mesh
// has an empty box.
func (m *Mesh) Bounds() d3.Box {
	box := d3.EmptyBox()
	for _, v := range m.Vertices {
		box = box.Include(d3.FromArray(v.Pos))
	}
	return box
}

// LoadMesh loads the mesh at path choosing the decoder by file extension.
func LoadMesh(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".stl":
		fp, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		m, err := ReadSTL(fp)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}
}

// faceNormal returns the unit normal of the counter-clockwise triangle abc.
func faceNormal(a, b, c vmath.Vec3) vmath.Vec3 {
	n := r3.Cross(r3.Sub(d3.FromArray(b), d3.FromArray(a)), r3.Sub(d3.FromArray(c), d3.FromArray(a)))
	if r3.Norm2(n) == 0 {
		return vmath.Vec3{}
	}
	return d3.ToArray(r3.Unit(n))
}

// CubeName is the catalog name of the built in unit cube.
const CubeName = "_cube"

// Cube returns a unit cube centered on the origin with per face normals
// and texture coordinates spanning each face.
func Cube() *Mesh {
	type v = vmath.Vec3
	type uv = vmath.Vec2
	vertices := []Vertex{
		{v{-0.5, 0.5, 0.5}, v{0, 0, 1}, uv{0, 0}}, // +z
		{v{0.5, 0.5, 0.5}, v{0, 0, 1}, uv{1, 0}},
		{v{0.5, -0.5, 0.5}, v{0, 0, 1}, uv{1, 1}},
		{v{-0.5, -0.5, 0.5}, v{0, 0, 1}, uv{0, 1}},

		{v{0.5, 0.5, 0.5}, v{1, 0, 0}, uv{0, 0}}, // +x
		{v{0.5, 0.5, -0.5}, v{1, 0, 0}, uv{1, 0}},
		{v{0.5, -0.5, -0.5}, v{1, 0, 0}, uv{1, 1}},
		{v{0.5, -0.5, 0.5}, v{1, 0, 0}, uv{0, 1}},

		{v{0.5, 0.5, -0.5}, v{0, 0, -1}, uv{0, 0}}, // -z
		{v{-0.5, 0.5, -0.5}, v{0, 0, -1}, uv{1, 0}},
		{v{-0.5, -0.5, -0.5}, v{0, 0, -1}, uv{1, 1}},
		{v{0.5, -0.5, -0.5}, v{0, 0, -1}, uv{0, 1}},

		{v{-0.5, 0.5, -0.5}, v{-1, 0, 0}, uv{0, 0}}, // -x
		{v{-0.5, 0.5, 0.5}, v{-1, 0, 0}, uv{1, 0}},
		{v{-0.5, -0.5, 0.5}, v{-1, 0, 0}, uv{1, 1}},
		{v{-0.5, -0.5, -0.5}, v{-1, 0, 0}, uv{0, 1}},

		{v{-0.5, 0.5, -0.5}, v{0, 1, 0}, uv{0, 0}}, // +y
		{v{0.5, 0.5, -0.5}, v{0, 1, 0}, uv{1, 0}},
		{v{0.5, 0.5, 0.5}, v{0, 1, 0}, uv{1, 1}},
		{v{-0.5, 0.5, 0.5}, v{0, 1, 0}, uv{0, 1}},

		{v{-0.5, -0.5, 0.5}, v{0, -1, 0}, uv{0, 0}}, // -y
		{v{0.5, -0.5, 0.5}, v{0, -1, 0}, uv{1, 0}},
		{v{0.5, -0.5, -0.5}, v{0, -1, 0}, uv{1, 1}},
		{v{-0.5, -0.5, -0.5}, v{0, -1, 0}, uv{0, 1}},
	}
	indices := []int{
		0, 3, 1, 1, 3, 2,
		4, 7, 5, 5, 7, 6,
		8, 11, 9, 9, 11, 10,
		12, 15, 13, 13, 15, 14,
		16, 19, 17, 17, 19, 18,
		20, 23, 21, 21, 23, 22,
	}
	m, err := NewIndexedMesh(vertices, indices)
	if err != nil {
		panic(err)
	}
	return m
}
