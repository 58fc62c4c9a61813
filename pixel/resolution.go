package pixel

import (
	"errors"
	"fmt"
	"image"
)

// ErrResolution is returned when an image does not match the display resolution.
var ErrResolution = errors.New("pixel: unsupported resolution")

// ResolutionError is a resolution mismatch. Panels have no scaler, images are
// never resized or cropped to fit.
type ResolutionError struct {
	Expected image.Point
	Found    image.Point
}

func (err *ResolutionError) Error() string {
	return fmt.Sprintf("pixel: unsupported resolution, expected %dx%d found %dx%d",
		err.Expected.X, err.Expected.Y, err.Found.X, err.Found.Y)
}

// Is matches [ErrResolution].
func (err *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// CheckResolution returns a [ResolutionError] unless size equals expected.
func CheckResolution(expected, size image.Point) error {
	if size != expected {
		return &ResolutionError{Expected: expected, Found: size}
	}
	return nil
}
