package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/softrast/internal/d3"
	"github.com/soypat/softrast/vmath"
)

// Camera is a perspective camera. Pose is the camera to world transform,
// the camera looks down its local -z axis.
type Camera struct {
	Pose vmath.Mat4
	FOV  float32 // vertical field of view in degrees
	Near float32
	Far  float32
}

// DefaultCamera returns a camera 5 units up the z axis looking at the
// origin with a 90 degree field of view.
func DefaultCamera() Camera {
	return Camera{
		Pose: vmath.Translate(vmath.V3(0, 0, 5)),
		FOV:  90,
		Near: 0.1,
		Far:  10,
	}
}

// View returns the world to camera transform, the inverse of the pose.
func (c Camera) View() (vmath.Mat4, error) {
	view, err := vmath.Inverse(c.Pose)
	if err != nil {
		return view, fmt.Errorf("camera view: %w", err)
	}
	return view, nil
}

// Projection returns the camera projection for a surface aspect ratio.
func (c Camera) Projection(aspect float32) vmath.Mat4 {
	return vmath.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Position returns the camera location in world space.
func (c Camera) Position() vmath.Vec3 { return c.Pose[3].XYZ() }

// Fit moves the camera along the world z axis so that box fills the
// vertical field of view, looking at its center. Near and far planes
// are widened when needed to enclose the box. An empty box is ignored.
func (c *Camera) Fit(box d3.Box) {
	if box.Empty() {
		return
	}
	center := vmath.Vec3(d3.ToArray(box.Center()))
	r := float32(box.Radius())
	if r == 0 {
		r = 1
	}
	dist := r / math32.Sin(vmath.DegToRad(c.FOV)/2)
	eye := center.Add(vmath.V3(0, 0, dist))
	c.Pose = vmath.LookAt(eye, center, vmath.V3(0, 1, 0))
	if nearest := dist - r; nearest > 0 && nearest < c.Near {
		c.Near = nearest / 2
	}
	if c.Far < dist+r {
		c.Far = dist + r
	}
}
