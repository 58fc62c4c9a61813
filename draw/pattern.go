package draw

import (
	"image"

	"github.com/BeatGlow/epaper/pixel"
)

// Bars fills dst with one vertical bar per palette entry, in palette order.
func Bars(dst Image, cm pixel.ColorMap) {
	var (
		r = dst.Bounds()
		n = cm.Len()
	)
	if n == 0 || r.Empty() {
		return
	}
	for i := 0; i < n; i++ {
		c, _ := cm.Lookup(i)
		Box(dst, image.Rect(
			r.Min.X+r.Dx()*i/n, r.Min.Y,
			r.Min.X+r.Dx()*(i+1)/n, r.Max.Y,
		), c)
	}
}

// TestCard draws palette bars with a frame and both diagonals in the first
// palette color, useful to check panel alignment.
func TestCard(dst Image, cm pixel.ColorMap) {
	Bars(dst, cm)
	if cm.Len() == 0 {
		return
	}

	var (
		r    = dst.Bounds()
		c, _ = cm.Lookup(0)
	)
	Rectangle(dst, r, c)
	Rectangle(dst, r.Inset(4), c)
	Line(dst, r.Min, r.Max.Sub(image.Pt(1, 1)), c)
	Line(dst, image.Pt(r.Min.X, r.Max.Y-1), image.Pt(r.Max.X-1, r.Min.Y), c)
}
