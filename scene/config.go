package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/softrast/palette"
	"github.com/soypat/softrast/resource"
	"github.com/soypat/softrast/vmath"
	"gopkg.in/yaml.v3"
)

// Description is the YAML form of a scene.
type Description struct {
	Camera CameraConfig `yaml:"camera"`
	// Background is the RGB clear color with components in [0,1].
	Background vmath.Vec3 `yaml:"background"`
	// Filter is the texture filter name: nearest or bilinear.
	Filter    string       `yaml:"filter"`
	Wireframe bool         `yaml:"wireframe"`
	Light     *vmath.Vec3  `yaml:"light,omitempty"`
	Nodes     []NodeConfig `yaml:"nodes"`
}

// CameraConfig places the camera. Without an eye the default camera
// position is used. Fit overrides the eye to frame all visible nodes.
type CameraConfig struct {
	Eye    *vmath.Vec3 `yaml:"eye,omitempty"`
	Center vmath.Vec3  `yaml:"center"`
	Up     *vmath.Vec3 `yaml:"up,omitempty"`
	FOV    float32     `yaml:"fov"`
	Near   float32     `yaml:"near"`
	Far    float32     `yaml:"far"`
	Fit    bool        `yaml:"fit"`
}

// NodeConfig describes one mesh reference. Mesh and texture paths are
// relative to the description file unless absolute; names starting with
// an underscore refer to built in resources.
type NodeConfig struct {
	Name      string     `yaml:"name"`
	Mesh      string     `yaml:"mesh"`
	Texture   string     `yaml:"texture"`
	Translate vmath.Vec3 `yaml:"translate"`
	Rotate    vmath.Vec3 `yaml:"rotate"` // degrees about x, y, z
	Scale     float32    `yaml:"scale"`
	Spin      vmath.Vec3 `yaml:"spin"` // degrees per second
	Visible   *bool      `yaml:"visible,omitempty"`
}

// ParseDescription decodes a YAML scene description. Unknown keys are
// rejected. An empty document yields an empty description.
func ParseDescription(r io.Reader) (*Description, error) {
	var desc Description
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scene description: %w", err)
	}
	return &desc, nil
}

// Build resolves the description's resources through the catalogs and
// returns the scene at time zero.
func (d *Description) Build(baseDir string, meshes *resource.MeshCatalog, textures *resource.TextureCatalog) (*Scene, error) {
	s := New()
	s.Background = palette.PackVec(d.Background)
	s.Settings.Wireframe = d.Wireframe
	filter, err := resource.ParseFilter(d.Filter)
	if err != nil {
		return nil, fmt.Errorf("scene settings: %w", err)
	}
	s.Settings.Filter = filter
	if d.Light != nil {
		s.Settings.Light = *d.Light
	}
	if err := d.Camera.apply(&s.Camera); err != nil {
		return nil, err
	}

	for i, n := range d.Nodes {
		if n.Mesh == "" {
			return nil, fmt.Errorf("node %d %q: missing mesh", i, n.Name)
		}
		ref := MeshRef{
			Name:    n.Name,
			Mesh:    meshes.Get(resolve(baseDir, n.Mesh)),
			Visible: n.Visible == nil || *n.Visible,
			Motion: &Motion{
				Translate: n.Translate,
				Rotate:    n.Rotate,
				Scale:     n.Scale,
				Spin:      n.Spin,
			},
		}
		if ref.Name == "" {
			ref.Name = fmt.Sprintf("node%d", i)
		}
		if n.Texture != "" {
			ref.Texture = textures.Get(resolve(baseDir, n.Texture))
		}
		s.Add(ref)
	}
	if d.Camera.Fit {
		s.Camera.Fit(s.Bounds())
	}
	return s, nil
}

func (c CameraConfig) apply(cam *Camera) error {
	if c.FOV != 0 {
		cam.FOV = c.FOV
	}
	if c.Near != 0 {
		cam.Near = c.Near
	}
	if c.Far != 0 {
		cam.Far = c.Far
	}
	switch {
	case cam.FOV <= 0 || cam.FOV >= 180:
		return fmt.Errorf("camera fov %v outside (0,180)", cam.FOV)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return fmt.Errorf("camera planes near=%v far=%v: need 0 < near < far", cam.Near, cam.Far)
	}
	if c.Eye != nil {
		up := vmath.V3(0, 1, 0)
		if c.Up != nil {
			up = *c.Up
		}
		if c.Eye.Sub(c.Center).Cross(up) == (vmath.Vec3{}) {
			return errors.New("camera up vector parallel to view direction")
		}
		cam.Pose = vmath.LookAt(*c.Eye, c.Center, up)
	}
	return nil
}

func resolve(baseDir, path string) string {
	if strings.HasPrefix(path, "_") || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Load parses a YAML description from r and builds the scene. Relative
// resource paths are resolved against baseDir.
func Load(r io.Reader, baseDir string, meshes *resource.MeshCatalog, textures *resource.TextureCatalog) (*Scene, error) {
	desc, err := ParseDescription(r)
	if err != nil {
		return nil, err
	}
	return desc.Build(baseDir, meshes, textures)
}

// LoadFile loads the scene description at path.
func LoadFile(path string, meshes *resource.MeshCatalog, textures *resource.TextureCatalog) (*Scene, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	defer fp.Close()
	return Load(fp, filepath.Dir(path), meshes, textures)
}

// Demo returns the built in scene: a spinning unit cube, textured with
// the given path when it is not empty.
func Demo(meshes *resource.MeshCatalog, textures *resource.TextureCatalog, texture string) *Scene {
	s := New()
	ref := MeshRef{
		Name:    "cube",
		Mesh:    meshes.Get(resource.CubeName),
		Visible: true,
		Motion:  &Motion{Spin: vmath.V3(-67.5, 90, 45)},
	}
	if texture != "" {
		ref.Texture = textures.Get(texture)
	}
	s.Add(ref)
	return s
}
