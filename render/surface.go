package render

import (
	"image"

	"github.com/soypat/softrast/palette"
)

// Surface is an 8 bit palettized pixel target. Implementations must
// ignore writes outside of the surface bounds.
type Surface interface {
	Size() (w, h int)
	SetPixel(x, y int, c uint8)
	Clear(c uint8)
}

// Framebuffer is a Surface backed by an RGB332 paletted image.
// It is not safe for concurrent use.
type Framebuffer struct {
	img *image.Paletted
}

var _ Surface = (*Framebuffer)(nil)

// NewFramebuffer allocates a w by h framebuffer cleared to index 0.
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{img: image.NewPaletted(image.Rect(0, 0, w, h), palette.RGB332())}
}

func (f *Framebuffer) Size() (w, h int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

func (f *Framebuffer) SetPixel(x, y int, c uint8) {
	w, h := f.Size()
	if uint(x) >= uint(w) || uint(y) >= uint(h) {
		return
	}
	f.img.Pix[y*f.img.Stride+x] = c
}

func (f *Framebuffer) Clear(c uint8) {
	for i := range f.img.Pix {
		f.img.Pix[i] = c
	}
}

// Pixel returns the palette index at (x, y), or 0 when out of bounds.
func (f *Framebuffer) Pixel(x, y int) uint8 {
	w, h := f.Size()
	if uint(x) >= uint(w) || uint(y) >= uint(h) {
		return 0
	}
	return f.img.Pix[y*f.img.Stride+x]
}

// Image returns the paletted image backing the framebuffer. It aliases
// the framebuffer memory.
func (f *Framebuffer) Image() *image.Paletted { return f.img }
