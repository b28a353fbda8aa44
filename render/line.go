package render

import "github.com/chewxy/math32"

// maxLineCoord bounds wireframe endpoints so vertices projected from near
// w=0 do not stall the line stepper.
const maxLineCoord = 1 << 16

func (r *Renderer) drawEdge(dst Surface, a, b [2]float32, c uint8) {
	for _, v := range [4]float32{a[0], a[1], b[0], b[1]} {
		if !(math32.Abs(v) < maxLineCoord) {
			return
		}
	}
	drawLine(dst,
		int(math32.Floor(a[0])), int(math32.Floor(a[1])),
		int(math32.Floor(b[0])), int(math32.Floor(b[1])), c)
}

// drawLine draws a Bresenham line including both endpoints.
func drawLine(dst Surface, x0, y0, x1, y1 int, c uint8) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		dst.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
