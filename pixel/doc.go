// Package pixel implements the fixed color palettes of e-paper panels, indexed images over those
// palettes and the 2 bits per pixel wire format the JD79668 controller expects.
//
// The types are compatible with Go's native [color.Color], [color.Model] and [image.PalettedImage]
// interfaces, so indexed images can be drawn, encoded and compared with the standard library.
package pixel
