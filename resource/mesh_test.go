package resource_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/softrast/resource"
	"github.com/soypat/softrast/vmath"
)

func TestCube(t *testing.T) {
	cube := resource.Cube()
	if cube.Len() != 12 {
		t.Fatalf("cube has %d triangles. want 12", cube.Len())
	}
	for i := 0; i < cube.Len(); i++ {
		tri := cube.Triangle(i)
		ab := tri[1].Pos.Sub(tri[0].Pos)
		ac := tri[2].Pos.Sub(tri[0].Pos)
		winding := ab.Cross(ac).Unit()
		for _, v := range tri {
			if !vmath.EqualWithin(v.Normal, winding, 1e-6) {
				t.Errorf("triangle %d: normal %v disagrees with counter-clockwise winding %v", i, v.Normal, winding)
			}
		}
	}
	box := cube.Bounds()
	if box.Min.X != -0.5 || box.Max.Z != 0.5 || box.Size().Y != 1 {
		t.Errorf("cube bounds %v", box)
	}
}

func TestNewIndexedMesh(t *testing.T) {
	verts := []resource.Vertex{
		{Pos: vmath.V3(0, 0, 0)},
		{Pos: vmath.V3(1, 0, 0)},
		{Pos: vmath.V3(0, 1, 0)},
		{Pos: vmath.V3(1, 1, 0)},
	}
	m, err := resource.NewIndexedMesh(verts, []int{0, 1, 2, 2, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 || len(m.Vertices) != 6 {
		t.Fatalf("got %d triangles, %d vertices. want 2, 6", m.Len(), len(m.Vertices))
	}
	if m.Triangle(1)[2].Pos != verts[3].Pos {
		t.Errorf("flattening reordered vertices")
	}
	if _, err := resource.NewIndexedMesh(verts, []int{0, 1}); err == nil {
		t.Error("expected error for partial triangle")
	}
	if _, err := resource.NewIndexedMesh(verts, []int{0, 1, 4}); err == nil {
		t.Error("expected error for out of range index")
	}
	if !new(resource.Mesh).Bounds().Empty() {
		t.Error("empty mesh must have empty bounds")
	}
}

func TestSTLWriteRead(t *testing.T) {
	cube := resource.Cube()
	var b bytes.Buffer
	if err := resource.WriteSTL(&b, cube); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 84+50*cube.Len() {
		t.Fatalf("STL size %d. want %d", b.Len(), 84+50*cube.Len())
	}
	got, err := resource.ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != cube.Len() {
		t.Fatalf("read %d triangles. want %d", got.Len(), cube.Len())
	}
	for i, v := range got.Vertices {
		want := cube.Vertices[i]
		if v.Pos != want.Pos {
			t.Errorf("vertex %d: got %v. want %v", i, v.Pos, want.Pos)
		}
		if !vmath.EqualWithin(v.Normal, want.Normal, 1e-6) {
			t.Errorf("vertex %d normal: got %v. want %v", i, v.Normal, want.Normal)
		}
		if v.UV != (vmath.Vec2{}) {
			t.Errorf("vertex %d: STL carries no texture coordinates, got %v", i, v.UV)
		}
	}
	if err := resource.WriteSTL(&b, &resource.Mesh{}); err == nil {
		t.Error("expected error writing empty mesh")
	}
	if _, err := resource.ReadSTL(bytes.NewReader(nil)); err == nil {
		t.Error("expected error reading empty stream")
	}
}

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	const obj = `# single triangle
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
f 1/1 2/2 3/3
`
	if err := os.WriteFile(path, []byte(obj), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := resource.LoadMesh(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1 {
		t.Fatalf("got %d triangles. want 1", m.Len())
	}
	tri := m.Triangle(0)
	wantUV := [3]vmath.Vec2{{0, 1}, {1, 1}, {0, 0}}
	for i, v := range tri {
		if !vmath.EqualWithin(vmath.V3(v.UV[0], v.UV[1], 0), vmath.V3(wantUV[i][0], wantUV[i][1], 0), 1e-6) {
			t.Errorf("vertex %d uv %v. want v flipped %v", i, v.UV, wantUV[i])
		}
		if !vmath.EqualWithin(v.Normal, vmath.V3(0, 0, 1), 1e-6) {
			t.Errorf("vertex %d normal %v. want +z face normal", i, v.Normal)
		}
	}
}

func TestLoadMeshUnsupported(t *testing.T) {
	_, err := resource.LoadMesh("model.fbx")
	if !errors.Is(err, resource.ErrUnsupportedFormat) {
		t.Errorf("got %v. want ErrUnsupportedFormat", err)
	}
	if _, err := resource.LoadMesh(filepath.Join(t.TempDir(), "missing.stl")); err == nil {
		t.Error("expected error for missing file")
	}
}
