package pixel

import (
	"image/color"
	"math/rand"
	"testing"
)

func TestFourColorIndexOf(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  int
	}{
		{"near black", color.RGBA{10, 10, 10, 0xff}, 0},
		{"near white", color.RGBA{250, 250, 240, 0xff}, 1},
		{"near yellow", color.RGBA{200, 190, 10, 0xff}, 2},
		{"near red", color.RGBA{230, 20, 20, 0xff}, 3},
		{"black", color.Black, 0},
		{"white", color.White, 1},
		{"palette color", Red, 3},
		{"nrgba", color.NRGBA{255, 255, 0, 0x80}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FourColor.IndexOf(tt.color); got != tt.want {
				t.Errorf("IndexOf(%v) = %d, want %d", tt.color, got, tt.want)
			}
		})
	}
}

func TestIndexOfTiesResolveToLowestIndex(t *testing.T) {
	p := Palette{name: "test", colors: []Color{White, Black}}
	gray := color.RGBA{0x7f, 0x7f, 0x7f, 0xff}
	if got := p.IndexOf(gray); got != 1 {
		t.Fatalf("IndexOf(%v) = %d, want 1 (black is closer)", gray, got)
	}

	tie := Palette{name: "tie", colors: []Color{Red, Red}}
	if got := tie.IndexOf(color.Black); got != 0 {
		t.Errorf("IndexOf() = %d, want first seen entry 0", got)
	}
}

func TestMonoIndexOf(t *testing.T) {
	tests := []struct {
		color color.Color
		want  int
	}{
		{color.RGBA{0, 0, 0, 0xff}, 0},
		{color.RGBA{255, 255, 255, 0xff}, 1},
		{color.RGBA{255, 0, 0, 0xff}, 0},
		{color.RGBA{255, 255, 0, 0xff}, 1},
		{color.RGBA{100, 100, 100, 0xff}, 0},
		{color.RGBA{200, 200, 200, 0xff}, 1},
	}
	for _, tt := range tests {
		if got := MonoPalette.IndexOf(tt.color); got != tt.want {
			t.Errorf("IndexOf(%v) = %d, want %d", tt.color, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, p := range Palettes {
		t.Run(p.String(), func(t *testing.T) {
			for i := 0; i < p.Len(); i++ {
				c, ok := p.Lookup(i)
				if !ok {
					t.Fatalf("Lookup(%d) not found", i)
				}
				if got := p.IndexOf(c); got != i {
					t.Errorf("IndexOf(Lookup(%d)) = %d", i, got)
				}
			}
			for _, i := range []int{-1, p.Len(), 255} {
				if _, ok := p.Lookup(i); ok {
					t.Errorf("Lookup(%d) should not be found", i)
				}
			}
		})
	}
}

func TestMapIsIdempotent(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, p := range Palettes {
		t.Run(p.String(), func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				c := color.RGBA{uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), 0xff}
				once := p.IndexOf(c)
				mapped := c
				p.Map(&mapped)
				if got := p.IndexOf(mapped); got != once {
					t.Fatalf("IndexOf(Map(%v)) = %d, want %d", c, got, once)
				}
				again := mapped
				p.Map(&again)
				if again != mapped {
					t.Fatalf("Map is not idempotent for %v: %v != %v", c, again, mapped)
				}
			}
		})
	}
}

func TestPaletteModel(t *testing.T) {
	if got := FourColor.Model().Convert(color.RGBA{230, 20, 20, 0xff}); got != Red.Value() {
		t.Errorf("Convert() = %v, want red", got)
	}
	if got := MonoPalette.Model().Convert(Yellow); got != White.Value() {
		t.Errorf("Convert() = %v, want white", got)
	}
}

func TestParseColor(t *testing.T) {
	for _, c := range Colors {
		got, err := ParseColor(c.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != c {
			t.Errorf("ParseColor(%q) = %v", c.String(), got)
		}
	}
	if got, err := ParseColor("RED"); err != nil || got != Red {
		t.Errorf("ParseColor(RED) = %v, %v", got, err)
	}
	if _, err := ParseColor("green"); err == nil {
		t.Error("expected an error for green")
	}
}

func TestParsePalette(t *testing.T) {
	if p, err := ParsePalette("mono"); err != nil || p.Len() != 2 {
		t.Errorf("ParsePalette(mono) = %v (%d colors), %v", p, p.Len(), err)
	}
	if p, err := ParsePalette("four-color"); err != nil || p.Len() != 4 {
		t.Errorf("ParsePalette(four-color) = %v (%d colors), %v", p, p.Len(), err)
	}
	if _, err := ParsePalette("seven-color"); err == nil {
		t.Error("expected an error")
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Yellow.RGBA()
	if r != 0xffff || g != 0xffff || b != 0 || a != 0xffff {
		t.Errorf("Yellow.RGBA() = %#x %#x %#x %#x", r, g, b, a)
	}
	if _, _, _, a := Color(9).RGBA(); a != 0 {
		t.Errorf("unknown color should be transparent")
	}
	if s := Color(9).String(); s != "Color(9)" {
		t.Errorf("String() = %q", s)
	}
}
