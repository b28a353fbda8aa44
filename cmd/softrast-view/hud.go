package main

import (
	"image/color"

	"github.com/soypat/softrast/palette"
	"github.com/soypat/softrast/render"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// surfaceDisplay lets tinyfont draw onto a palettized surface.
type surfaceDisplay struct {
	s render.Surface
}

var _ drivers.Displayer = (*surfaceDisplay)(nil)

func (d *surfaceDisplay) Size() (x, y int16) {
	w, h := d.s.Size()
	return int16(w), int16(h)
}

func (d *surfaceDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.s.SetPixel(int(x), int(y), palette.Pack(
		float32(c.R)/255, float32(c.G)/255, float32(c.B)/255))
}

// Display is a no-op, the surface is presented by the window.
func (d *surfaceDisplay) Display() error { return nil }

var statusColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

// drawStatus writes text along the bottom left corner of s.
func drawStatus(s render.Surface, text string) {
	d := &surfaceDisplay{s: s}
	_, h := d.Size()
	tinyfont.WriteLine(d, &tinyfont.TomThumb, 2, h-2, text, statusColor)
}
