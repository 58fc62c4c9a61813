package prepare

import (
	"image"
	"image/color"

	"github.com/BeatGlow/epaper/pixel"
)

// Floyd-Steinberg error weights, in sixteenths.
const (
	weightRight      = 7
	weightLowerLeft  = 3
	weightLower      = 5
	weightLowerRight = 1
)

// Dither quantizes src with Floyd-Steinberg error diffusion. The image is
// scanned left to right, top to bottom; the quantization error of each pixel
// is spread over its right, lower left, lower and lower right neighbours.
// Error that would land outside of the image is dropped.
func Dither(src image.Image, cm pixel.ColorMap) *pixel.Indexed {
	var (
		b    = src.Bounds()
		w, h = b.Dx(), b.Dy()
		dst  = pixel.NewIndexed(image.Rectangle{Max: b.Size()}, cm)
		work = make([][3]int32, w*h)
	)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			work[y*w+x] = [3]int32{int32(c.R), int32(c.G), int32(c.B)}
		}
	}

	diffuse := func(x, y int, err [3]int32, weight int32) {
		if x < 0 || x >= w || y >= h {
			return
		}
		p := &work[y*w+x]
		for i := range p {
			p[i] = clamp(p[i] + err[i]*weight/16)
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := work[y*w+x]
			index := cm.IndexOf(color.RGBA{R: uint8(old[0]), G: uint8(old[1]), B: uint8(old[2]), A: 0xff})
			dst.Pix[y*w+x] = uint8(index)

			v, _ := cm.Lookup(index)
			err := [3]int32{
				old[0] - int32(v.R),
				old[1] - int32(v.G),
				old[2] - int32(v.B),
			}
			diffuse(x+1, y, err, weightRight)
			diffuse(x-1, y+1, err, weightLowerLeft)
			diffuse(x, y+1, err, weightLower)
			diffuse(x+1, y+1, err, weightLowerRight)
		}
	}
	return dst
}

func clamp(v int32) int32 {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	default:
		return v
	}
}
