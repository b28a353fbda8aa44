package resource

import (
	"fmt"
	"image"
	"math/bits"
	"strings"

	"github.com/chewxy/math32"
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/softrast/vmath"
)

// Texture is an RGB image sampled with wrapping texture coordinates.
// Texels are stored row-major, 3 bytes per texel.
type Texture struct {
	Width, Height int
	Texels        []uint8
}

// NewTexture allocates a black texture of the given size.
func NewTexture(width, height int) *Texture {
	if width <= 0 || height <= 0 {
		panic("texture dimensions must be positive")
	}
	return &Texture{
		Width:  width,
		Height: height,
		Texels: make([]uint8, 3*width*height),
	}
}

// Placeholder returns the 1x1 magenta texture that stands in for images
// that failed to load.
func Placeholder() *Texture {
	t := NewTexture(1, 1)
	t.SetTexel(0, 0, 255, 0, 255)
	return t
}

// LoadTexture decodes the image at path with any decoder registered with
// the image package. Images whose sides are not powers of two are
// resampled up to the next power of two.
func LoadTexture(path string) (*Texture, error) {
	img, err := fauxgl.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("loading texture %q: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies img into a new texture, resampling it so that
// both sides are powers of two.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if pw, ph := nextPow2(w), nextPow2(h); pw != w || ph != h {
		img = resize.Resize(uint(pw), uint(ph), img, resize.Bilinear)
		b = img.Bounds()
		w, h = pw, ph
	}
	t := NewTexture(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			t.SetTexel(x, y, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return t
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// SetTexel sets the texel at (x, y). Coordinates must be in range.
func (t *Texture) SetTexel(x, y int, r, g, b uint8) {
	i := 3 * (y*t.Width + x)
	t.Texels[i] = r
	t.Texels[i+1] = g
	t.Texels[i+2] = b
}

// Lookup returns the texel at (x, y) as a color in [0,1]. Coordinates
// wrap around the texture edges.
func (t *Texture) Lookup(x, y int) vmath.Vec3 {
	x = wrap(x, t.Width)
	y = wrap(y, t.Height)
	i := 3 * (y*t.Width + x)
	return vmath.V3(
		float32(t.Texels[i])/255,
		float32(t.Texels[i+1])/255,
		float32(t.Texels[i+2])/255,
	)
}

// Sample returns the texel nearest to uv. Coordinates outside [0,1)
// repeat the texture.
func (t *Texture) Sample(uv vmath.Vec2) vmath.Vec3 {
	x := int(fract(uv[0]) * float32(t.Width))
	y := int(fract(uv[1]) * float32(t.Height))
	return t.Lookup(x, y)
}

// SampleBilinear blends the four texels surrounding uv, wrapping across
// the texture edges.
func (t *Texture) SampleBilinear(uv vmath.Vec2) vmath.Vec3 {
	tx := fract(uv[0])*float32(t.Width) - 0.5
	ty := fract(uv[1])*float32(t.Height) - 0.5
	fx, fy := math32.Floor(tx), math32.Floor(ty)
	x0, y0 := int(fx), int(fy)
	wx, wy := tx-fx, ty-fy
	top := vmath.Lerp3(t.Lookup(x0, y0), t.Lookup(x0+1, y0), wx)
	bottom := vmath.Lerp3(t.Lookup(x0, y0+1), t.Lookup(x0+1, y0+1), wx)
	return vmath.Lerp3(top, bottom, wy)
}

// SampleFilter samples the texture at uv with filter f.
func (t *Texture) SampleFilter(f Filter, uv vmath.Vec2) vmath.Vec3 {
	if f == FilterBilinear {
		return t.SampleBilinear(uv)
	}
	return t.Sample(uv)
}

func fract(u float32) float32 { return u - math32.Floor(u) }

// wrap maps i into [0,n). Power of two sizes use a mask.
func wrap(i, n int) int {
	if n&(n-1) == 0 {
		return i & (n - 1)
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Filter selects how textures are sampled.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterBilinear
)

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	}
	return fmt.Sprintf("Filter(%d)", uint8(f))
}

// ParseFilter parses a filter name as returned by Filter.String.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "":
		return FilterNearest, nil
	case "bilinear", "linear":
		return FilterBilinear, nil
	}
	return 0, fmt.Errorf("unknown texture filter %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Filter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Filter) UnmarshalText(b []byte) error {
	parsed, err := ParseFilter(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
