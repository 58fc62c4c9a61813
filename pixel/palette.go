package pixel

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Color is one of the inks a panel can render. The numeric value is the color's index in the
// [FourColor] palette, which is also the value sent over the wire.
type Color uint8

// Supported colors.
const (
	Black Color = iota
	White
	Yellow
	Red
)

var colorValues = [...]color.RGBA{
	Black:  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	White:  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	Yellow: {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	Red:    {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
}

var colorNames = [...]string{
	Black:  "black",
	White:  "white",
	Yellow: "yellow",
	Red:    "red",
}

// Colors lists all supported colors in index order.
var Colors = []Color{Black, White, Yellow, Red}

// RGBA implements [color.Color]. Unknown colors render as transparent.
func (c Color) RGBA() (r, g, b, a uint32) {
	if int(c) >= len(colorValues) {
		return 0, 0, 0, 0
	}
	return colorValues[c].RGBA()
}

// Value is the 8-bit RGB value of the color.
func (c Color) Value() color.RGBA {
	if int(c) >= len(colorValues) {
		return color.RGBA{}
	}
	return colorValues[c]
}

func (c Color) String() string {
	if int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// ParseColor looks up a color by its (case insensitive) name.
func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if strings.EqualFold(n, name) {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("pixel: unknown color %q", name)
}

// ColorMap maps arbitrary colors onto a bounded set of palette indices and back.
type ColorMap interface {
	// IndexOf returns the index of the closest palette entry.
	IndexOf(color.Color) int

	// Lookup returns the palette entry for index, ok is false if index is out of range.
	Lookup(index int) (c color.RGBA, ok bool)

	// Map replaces c with the closest palette entry.
	Map(c *color.RGBA)

	// Len is the number of palette entries.
	Len() int
}

// Palette is an immutable, ordered list of colors. Palette indices start at 0.
type Palette struct {
	name   string
	colors []Color
}

// Palettes.
var (
	// FourColor is the black, white, yellow and red palette of JD79668 panels.
	FourColor = Palette{name: "four-color", colors: []Color{Black, White, Yellow, Red}}

	// MonoPalette holds only black and white.
	MonoPalette = Palette{name: "mono", colors: []Color{Black, White}}
)

// Palettes lists all palettes by name.
var Palettes = []Palette{FourColor, MonoPalette}

// ParsePalette looks up a palette by its name.
func ParsePalette(name string) (Palette, error) {
	for _, p := range Palettes {
		if strings.EqualFold(p.name, name) {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("pixel: unknown palette %q", name)
}

func (p Palette) String() string {
	return p.name
}

// Len is the number of colors in the palette.
func (p Palette) Len() int {
	return len(p.colors)
}

// Color returns the palette entry at index, ok is false if index is out of range.
func (p Palette) Color(index int) (c Color, ok bool) {
	if index < 0 || index >= len(p.colors) {
		return 0, false
	}
	return p.colors[index], true
}

// IndexOf returns the index of the palette entry with the smallest squared
// euclidean distance in RGB space. Ties resolve to the lowest index.
func (p Palette) IndexOf(c color.Color) int {
	r, g, b := rgb(c)

	var (
		best     int
		distance = int32(math.MaxInt32)
	)
	for i, entry := range p.colors {
		v := entry.Value()
		dr := r - int32(v.R)
		dg := g - int32(v.G)
		db := b - int32(v.B)
		if d := dr*dr + dg*dg + db*db; d < distance {
			best, distance = i, d
		}
	}
	return best
}

// Lookup returns the RGB value of the palette entry at index.
func (p Palette) Lookup(index int) (color.RGBA, bool) {
	c, ok := p.Color(index)
	if !ok {
		return color.RGBA{}, false
	}
	return c.Value(), true
}

// Map replaces c with its closest palette entry.
func (p Palette) Map(c *color.RGBA) {
	if len(p.colors) == 0 {
		return
	}
	// IndexOf always yields a valid index.
	*c = p.colors[p.IndexOf(*c)].Value()
}

// Model returns a color model converting to the closest palette entry.
func (p Palette) Model() color.Model {
	return Model(p)
}

// Model returns a color model converting to the closest entry of cm.
func Model(cm ColorMap) color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		if cm == nil || cm.Len() == 0 {
			return color.Transparent
		}
		v, _ := cm.Lookup(cm.IndexOf(c))
		return v
	})
}

// rgb returns the non-premultiplied 8-bit channels of c. Alpha is dropped.
func rgb(c color.Color) (r, g, b int32) {
	switch c := c.(type) {
	case Color:
		v := c.Value()
		return int32(v.R), int32(v.G), int32(v.B)
	case color.NRGBA:
		return int32(c.R), int32(c.G), int32(c.B)
	case color.RGBA:
		if c.A == 0xff {
			return int32(c.R), int32(c.G), int32(c.B)
		}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int32(n.R), int32(n.G), int32(n.B)
}

// Interface checks.
var (
	_ ColorMap    = Palette{}
	_ color.Color = Color(0)
)
