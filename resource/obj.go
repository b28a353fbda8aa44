package resource

import (
	"fmt"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/softrast/vmath"
)

// LoadOBJ loads a Wavefront OBJ file. Texture coordinates are flipped
// vertically so that v=0 is the top row of the image. Faces without
// normals get their face normal.
func LoadOBJ(path string) (*Mesh, error) {
	src, err := fauxgl.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("loading OBJ %q: %w", path, err)
	}
	return meshFromFauxgl(src), nil
}

func meshFromFauxgl(src *fauxgl.Mesh) *Mesh {
	m := &Mesh{Vertices: make([]Vertex, 0, 3*len(src.Triangles))}
	for _, t := range src.Triangles {
		tri := [3]Vertex{fromFauxgl(t.V1), fromFauxgl(t.V2), fromFauxgl(t.V3)}
		n := faceNormal(tri[0].Pos, tri[1].Pos, tri[2].Pos)
		for i := range tri {
			if tri[i].Normal == (vmath.Vec3{}) {
				tri[i].Normal = n
			}
		}
		m.Vertices = append(m.Vertices, tri[:]...)
	}
	return m
}

func fromFauxgl(v fauxgl.Vertex) Vertex {
	return Vertex{
		Pos:    vmath.V3(float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)),
		Normal: vmath.V3(float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z)),
		UV:     vmath.V2(float32(v.Texture.X), 1-float32(v.Texture.Y)),
	}
}
