package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w > 0 {
		bresenham(dst, x, y, x+w-1, y, c)
	}
}

// VerticalLine draws a line between (x,y) and (x,y+h).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h > 0 {
		bresenham(dst, x, y, x, y+h-1, c)
	}
}

// Rectangle draws the outline of rect, the Max edges are exclusive.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	var (
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	HorizontalLine(dst, x, y, w, c)
	HorizontalLine(dst, x, y+h-1, w, c)
	VerticalLine(dst, x, y, h, c)
	VerticalLine(dst, x+w-1, y, h, c)
}

// RoundedRectangle draws a rectangle with radius pixels rounded corners.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	var (
		r = radius
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	HorizontalLine(dst, x+r, y, w-2*r, c)
	HorizontalLine(dst, x+r, y+h-1, w-2*r, c)
	VerticalLine(dst, x, y+r, h-2*r, c)
	VerticalLine(dst, x+w-1, y+r, h-2*r, c)
	roundedCorner(dst, x+r, y+r, r, 1, c)
	roundedCorner(dst, x+w-r-1, y+r, r, 2, c)
	roundedCorner(dst, x+w-r-1, y+h-r-1, r, 4, c)
	roundedCorner(dst, x+r, y+h-r-1, r, 8, c)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, rect.Dx(), c)
	}
}

// roundedCorner plots one quadrant of a midpoint circle, quadrants are
// 1 (top left), 2 (top right), 4 (bottom right) and 8 (bottom left).
func roundedCorner(dst Image, x0, y0, radius, quadrant int, c color.Color) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if quadrant&4 != 0 {
			dst.Set(x0+x, y0+y, c)
			dst.Set(x0+y, y0+x, c)
		}
		if quadrant&2 != 0 {
			dst.Set(x0+x, y0-y, c)
			dst.Set(x0+y, y0-x, c)
		}
		if quadrant&8 != 0 {
			dst.Set(x0-y, y0+x, c)
			dst.Set(x0-x, y0+y, c)
		}
		if quadrant&1 != 0 {
			dst.Set(x0-y, y0-x, c)
			dst.Set(x0-x, y0-y, c)
		}
	}
}

// bresenham plots the integer line from (x1,y1) to (x2,y2), both inclusive.
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy := x2-x1, y2-y1
	step := 1
	if dy < 0 {
		dy, step = -dy, -1
	}

	switch {
	case dx == 0 && dy == 0:
		dst.Set(x1, y1, c)

	case dy == 0:
		for x := x1; x <= x2; x++ {
			dst.Set(x, y1, c)
		}

	case dx == 0:
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		for y := y1; y <= y2; y++ {
			dst.Set(x1, y, c)
		}

	case dx >= dy:
		e := dx
		for ; x1 != x2; x1++ {
			dst.Set(x1, y1, c)
			if e -= 2 * dy; e < 0 {
				y1 += step
				e += 2 * dx
			}
		}
		dst.Set(x2, y2, c)

	default:
		e := dy
		for ; y1 != y2; y1 += step {
			dst.Set(x1, y1, c)
			if e -= 2 * dx; e < 0 {
				x1++
				e += 2 * dy
			}
		}
		dst.Set(x2, y2, c)
	}
}
