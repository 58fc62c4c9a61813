// Package prepare turns arbitrary rasters into indexed images for e-paper panels.
//
// Images are validated against the panel resolution, optionally dithered and then quantized
// against a [pixel.ColorMap]. The result carries both the palette indices, which are sent to the
// display, and their color reconstruction, which can be saved as a preview.
package prepare

import (
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/epaper/internal/debug"
	"github.com/BeatGlow/epaper/pixel"
)

func logf(format string, args ...interface{}) {
	debug.Printf("prepare: "+format, args...)
}

// Preprocessor quantizes images to a fixed resolution and color map.
type Preprocessor struct {
	colorMap pixel.ColorMap
	size     image.Point
}

// New returns a preprocessor for images of the given size.
func New(cm pixel.ColorMap, size image.Point) *Preprocessor {
	return &Preprocessor{
		colorMap: cm,
		size:     size,
	}
}

// ColorMap used for quantization.
func (p *Preprocessor) ColorMap() pixel.ColorMap {
	return p.colorMap
}

// Size is the expected image size.
func (p *Preprocessor) Size() image.Point {
	return p.size
}

// Prepare quantizes src. With dither set, Floyd-Steinberg error diffusion is
// applied before indexing; otherwise each pixel is mapped on its own.
func (p *Preprocessor) Prepare(src image.Image, dither bool) (*Image, error) {
	if err := pixel.CheckResolution(p.size, src.Bounds().Size()); err != nil {
		return nil, err
	}

	var indexed *pixel.Indexed
	if dither {
		indexed = Dither(src, p.colorMap)
	} else {
		indexed = Index(src, p.colorMap)
	}
	logf("quantized %s image to %d colors (dither=%t)", p.size, p.colorMap.Len(), dither)
	return newImage(indexed), nil
}

// Solid returns an image filled with the color map entry closest to c.
func (p *Preprocessor) Solid(c color.Color) (*Image, error) {
	if p.colorMap.Len() == 0 {
		return nil, fmt.Errorf("prepare: empty color map")
	}
	indexed := pixel.NewIndexed(image.Rectangle{Max: p.size}, p.colorMap)
	indexed.Fill(c)
	return newImage(indexed), nil
}

// Index maps every pixel of src to its closest color map entry.
func Index(src image.Image, cm pixel.ColorMap) *pixel.Indexed {
	var (
		b   = src.Bounds()
		dst = pixel.NewIndexed(image.Rectangle{Max: b.Size()}, cm)
		i   int
	)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Pix[i] = uint8(cm.IndexOf(src.At(x, y)))
			i++
		}
	}
	return dst
}

// Image is a quantized image together with its color reconstruction.
type Image struct {
	// Indexed holds the palette indices.
	Indexed *pixel.Indexed

	// Preview is the color reconstruction of Indexed.
	Preview *image.RGBA
}

func newImage(indexed *pixel.Indexed) *Image {
	return &Image{
		Indexed: indexed,
		Preview: indexed.RGBA(),
	}
}

// Size of the image.
func (img *Image) Size() image.Point {
	return img.Indexed.Rect.Size()
}
