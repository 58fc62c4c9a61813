package pixel

import (
	"errors"
	"fmt"
)

// PixelsPerByte is the number of 2-bit indices in a packed byte.
const PixelsPerByte = 4

// MaxPackedIndex is the largest index the 2-bit wire format can carry.
const MaxPackedIndex = 1<<(8/PixelsPerByte) - 1

// ErrOutOfPalette is returned for indices that fall outside of a palette.
var ErrOutOfPalette = errors.New("pixel: color outside of the supported palette")

// PaletteError is an out-of-palette index.
type PaletteError struct {
	Index int
	Max   int
}

func (err *PaletteError) Error() string {
	return fmt.Sprintf("pixel: index %d is palettized incorrectly, pixel values must be in [0, %d]", err.Index, err.Max)
}

// Is matches [ErrOutOfPalette].
func (err *PaletteError) Is(target error) bool {
	return target == ErrOutOfPalette
}

// PackedLen is the number of bytes needed to pack n indices.
func PackedLen(n int) int {
	return (n + PixelsPerByte - 1) / PixelsPerByte
}

// Pack packs palette indices into 2 bits per pixel, four pixels per byte with
// the first pixel in the most significant bits:
//
//	[p0 p1 p2 p3] → p0<<6 | p1<<4 | p2<<2 | p3
//
// A trailing partial group is padded with index 0. Any index above
// [MaxPackedIndex] is an error, regardless of the palette it came from.
func Pack(pixels []uint8) ([]byte, error) {
	for _, v := range pixels {
		if v > MaxPackedIndex {
			return nil, &PaletteError{Index: int(v), Max: MaxPackedIndex}
		}
	}

	out := make([]byte, PackedLen(len(pixels)))
	for i, v := range pixels {
		shift := (3 - i&3) << 1
		out[i>>2] |= v << shift
	}
	return out, nil
}

// PackImage packs the indices of img in row-major order.
func PackImage(img *Indexed) ([]byte, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride == w && len(img.Pix) == w*h {
		return Pack(img.Pix)
	}

	pix := make([]uint8, 0, w*h)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		i := img.PixOffset(img.Rect.Min.X, y)
		pix = append(pix, img.Pix[i:i+w]...)
	}
	return Pack(pix)
}

// Unpack is the inverse of [Pack], it returns the first n indices.
func Unpack(packed []byte, n int) []uint8 {
	if limit := len(packed) * PixelsPerByte; n > limit {
		n = limit
	}
	out := make([]uint8, n)
	for i := range out {
		shift := (3 - i&3) << 1
		out[i] = packed[i>>2] >> shift & MaxPackedIndex
	}
	return out
}
