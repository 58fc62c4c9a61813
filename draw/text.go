package draw

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the text size in points at 72 DPI, that is in pixels.
const DefaultFontSize = 32

var regularFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// Text draws text in the Go regular font, centered in r. Lines are split on
// newlines and each line is centered on its own. Text that does not fit is
// clipped to r.
func Text(dst Image, r image.Rectangle, text string, size float64, c color.Color) error {
	f, err := regularFont()
	if err != nil {
		return err
	}
	if size <= 0 {
		size = DefaultFontSize
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(r.Intersect(dst.Bounds()))
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))
	ctx.SetHinting(font.HintingFull)

	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	var (
		lines   = strings.Split(text, "\n")
		metrics = face.Metrics()
		height  = metrics.Height
		total   = height.Mul(fixed.I(len(lines)))
		top     = fixed.I(r.Min.Y) + (fixed.I(r.Dy())-total)/2
	)
	for i, line := range lines {
		var (
			width = font.MeasureString(face, line)
			x     = fixed.I(r.Min.X) + (fixed.I(r.Dx())-width)/2
			y     = top + height.Mul(fixed.I(i)) + metrics.Ascent
		)
		if _, err = ctx.DrawString(line, fixed.Point26_6{X: x, Y: y}); err != nil {
			return err
		}
	}
	return nil
}
