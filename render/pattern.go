package render

// DrawPattern fills dst with a 16x16 grid of every palette index, index 0
// in the top-left cell and 255 in the bottom-right.
func DrawPattern(dst Surface) {
	w, h := dst.Size()
	cw, ch := max(w/16, 1), max(h/16, 1)
	for y := 0; y < h; y++ {
		row := min(y/ch, 15)
		for x := 0; x < w; x++ {
			col := min(x/cw, 15)
			dst.SetPixel(x, y, uint8(col+row*16))
		}
	}
}
