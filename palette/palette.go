// Package palette implements the RGB332 color quantizer: 3 bits of red,
// 3 bits of green and 2 bits of blue packed into a single byte.
package palette

import (
	"image/color"
	"sync"

	"github.com/soypat/softrast/vmath"
)

const (
	rMax = 7
	gMax = 7
	bMax = 3
)

// White is the palette index of full intensity on every channel.
const White uint8 = 0xff

// Pack quantizes a color with components nominally in [0,1] to an RGB332
// palette index. Values at or above 1 saturate, values below 0 (and NaN)
// map to zero.
func Pack(r, g, b float32) uint8 {
	return quant(r, 8, rMax)<<5 | quant(g, 8, gMax)<<2 | quant(b, 4, bMax)
}

// PackVec is Pack over a color vector.
func PackVec(c vmath.Vec3) uint8 { return Pack(c[0], c[1], c[2]) }

func quant(c, levels float32, max uint8) uint8 {
	switch {
	case c >= 1:
		return max
	case !(c > 0):
		return 0
	}
	return uint8(c * levels)
}

// Unpack returns the color represented by palette index c.
func Unpack(c uint8) vmath.Vec3 {
	return vmath.V3(
		float32(c>>5)/rMax,
		float32(c>>2&gMax)/gMax,
		float32(c&bMax)/bMax,
	)
}

var (
	tableOnce sync.Once
	table     color.Palette
)

// RGB332 returns the 256 entry palette used to present indices produced
// by Pack. The returned slice is a copy and may be modified.
func RGB332() color.Palette {
	tableOnce.Do(func() {
		table = make(color.Palette, 256)
		for i := range table {
			c := uint8(i)
			table[i] = color.RGBA{
				R: uint8(uint(c>>5) * 255 / rMax),
				G: uint8(uint(c>>2&gMax) * 255 / gMax),
				B: uint8(uint(c&bMax) * 255 / bMax),
				A: 255,
			}
		}
	})
	return append(color.Palette(nil), table...)
}
