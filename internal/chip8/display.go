package chip8

import "strings"

// Display dimensions and pixel values.
const (
	ScreenWidth  = 64
	ScreenHeight = 32

	PixelOff uint32 = 0x00000000
	PixelOn  uint32 = 0xFFFFFFFF
)

// Display is the 64x32 monochrome framebuffer, stored row-major.
type Display struct {
	pixels [ScreenWidth * ScreenHeight]uint32
}

// Pixel returns the value of the pixel at x, y. Coordinates outside of the
// screen return PixelOff.
func (d *Display) Pixel(x, y int) uint32 {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return PixelOff
	}
	return d.pixels[y*ScreenWidth+x]
}

// Pixels returns the row-major pixel values. The slice aliases the display
// and must not be modified.
func (d *Display) Pixels() []uint32 {
	return d.pixels[:]
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.pixels = [ScreenWidth * ScreenHeight]uint32{}
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() int {
	var n int
	for _, p := range d.pixels {
		if p == PixelOn {
			n++
		}
	}
	return n
}

// Plot XORs the pixel at x, y and returns whether it was on before.
// Coordinates outside of the screen are ignored.
func (d *Display) Plot(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	p := &d.pixels[y*ScreenWidth+x]
	collision := *p == PixelOn
	*p ^= PixelOn
	return collision
}

// RGBA expands the display into 4 bytes per pixel, white for lit pixels and
// opaque black otherwise. dst must hold at least ScreenWidth*ScreenHeight*4 bytes.
func (d *Display) RGBA(dst []byte) {
	for i, p := range d.pixels {
		o := i * 4
		if p == PixelOn {
			dst[o], dst[o+1], dst[o+2] = 0xFF, 0xFF, 0xFF
		} else {
			dst[o], dst[o+1], dst[o+2] = 0, 0, 0
		}
		dst[o+3] = 0xFF
	}
}

// String renders the display as text, '#' for lit and '.' for dark pixels,
// one line per row.
func (d *Display) String() string {
	var b strings.Builder
	b.Grow((ScreenWidth + 1) * ScreenHeight)
	for y := range ScreenHeight {
		for x := range ScreenWidth {
			if d.pixels[y*ScreenWidth+x] == PixelOn {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
