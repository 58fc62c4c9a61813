package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

// Indexed is an image of palette indices, one byte per pixel.
//
// Indexed images are produced by the preprocessing pipeline and are not
// modified after that; every index is smaller than the palette length.
type Indexed struct {
	// Pix holds the palette indices. The pixel at (x, y) is at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)].
	Pix []uint8

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int

	// Rect is the image bounding box.
	Rect image.Rectangle

	// ColorMap the indices refer to.
	ColorMap ColorMap
}

// NewIndexed returns an image with all pixels set to index 0 of cm.
func NewIndexed(r image.Rectangle, cm ColorMap) *Indexed {
	w, h := r.Dx(), r.Dy()
	return &Indexed{
		Pix:      make([]uint8, w*h),
		Stride:   w,
		Rect:     r,
		ColorMap: cm,
	}
}

func (p *Indexed) ColorModel() color.Model {
	return Model(p.ColorMap)
}

func (p *Indexed) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Indexed) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

func (p *Indexed) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	c, ok := p.ColorMap.Lookup(int(p.Pix[p.PixOffset(x, y)]))
	if !ok {
		return color.Transparent
	}
	return c
}

// ColorIndexAt implements [image.PalettedImage].
func (p *Indexed) ColorIndexAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return 0
	}
	return p.Pix[p.PixOffset(x, y)]
}

// SetColorIndex sets the palette index at (x, y). Indices outside of the
// palette are rejected, points outside of the image are ignored.
func (p *Indexed) SetColorIndex(x, y int, index uint8) error {
	if int(index) >= p.ColorMap.Len() {
		return &PaletteError{Index: int(index), Max: p.ColorMap.Len() - 1}
	}
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return nil
	}
	p.Pix[p.PixOffset(x, y)] = index
	return nil
}

// Set sets the pixel at (x, y) to the palette entry closest to c.
func (p *Indexed) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) || p.ColorMap.Len() == 0 {
		return
	}
	p.Pix[p.PixOffset(x, y)] = uint8(p.ColorMap.IndexOf(c))
}

// Fill sets all pixels to the palette entry closest to c.
func (p *Indexed) Fill(c color.Color) {
	index := uint8(p.ColorMap.IndexOf(c))
	for i := range p.Pix {
		p.Pix[i] = index
	}
}

// Valid reports whether every pixel refers to a palette entry.
func (p *Indexed) Valid() bool {
	n := p.ColorMap.Len()
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		i := p.PixOffset(p.Rect.Min.X, y)
		for _, v := range p.Pix[i : i+p.Rect.Dx()] {
			if int(v) >= n {
				return false
			}
		}
	}
	return true
}

// RGBA reconstructs the colors of the image, as used for previews.
func (p *Indexed) RGBA() *image.RGBA {
	out := image.NewRGBA(p.Rect)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			c, _ := p.ColorMap.Lookup(int(p.Pix[p.PixOffset(x, y)]))
			out.SetRGBA(x, y, c)
		}
	}
	return out
}

// Interface checks.
var (
	_ image.PalettedImage = (*Indexed)(nil)
	_ draw.Image          = (*Indexed)(nil)
)
