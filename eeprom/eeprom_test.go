package eeprom

import (
	"errors"
	"strings"
	"testing"
)

func testRecord(width, height uint16, color, pcb, variant byte) []byte {
	data := make([]byte, Length)
	data[0], data[1] = byte(width), byte(width>>8)
	data[2], data[3] = byte(height), byte(height>>8)
	data[4] = color
	data[5] = pcb
	data[6] = variant
	return data
}

func TestIsBlank(t *testing.T) {
	ff := make([]byte, Length)
	for i := range ff {
		ff[i] = 0xff
	}
	mixed := make([]byte, Length)
	mixed[0], mixed[1] = 0xff, 0x00

	tests := []struct {
		Name  string
		Data  []byte
		Blank bool
	}{
		{"zero", make([]byte, Length), true},
		{"erased", ff, true},
		{"mixed erased", mixed, true},
		{"programmed", testRecord(400, 300, 1, 12, 24), false},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			if blank := IsBlank(test.Data); blank != test.Blank {
				it.Errorf("expected blank=%t, got %t", test.Blank, blank)
			}
		})
	}
}

func TestParse(t *testing.T) {
	info, err := Parse(testRecord(400, 300, 1, 12, 24))
	if err != nil {
		t.Fatal(err)
	}
	want := Info{Width: 400, Height: 300, Color: 1, PCBVariant: 12, DisplayVariant: 24}
	if info != want {
		t.Errorf("expected %+v, got %+v", want, info)
	}
	if v := info.PCBVersion(); v < 1.19 || v > 1.21 {
		t.Errorf("expected PCB version 1.2, got %f", v)
	}
	if s, want := info.String(), "400x300 colour=1 pcb_variant=1.2 display_variant=24 (Red/Yellow wHAT (JD79668))"; s != want {
		t.Errorf("expected %q, got %q", want, s)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		Name   string
		Data   []byte
		Reason string
	}{
		{"short", make([]byte, 7), "record too short"},
		{"zero width", testRecord(0, 300, 1, 12, 24), "width/height out of range (width=0, height=300)"},
		{"zero height", testRecord(400, 0, 1, 12, 24), "width/height out of range (width=400, height=0)"},
		{"erased width", testRecord(0xffff, 300, 1, 12, 24), "width/height out of range (width=65535, height=300)"},
		{"erased height", testRecord(400, 0xffff, 1, 12, 24), "width/height out of range (width=400, height=65535)"},
		{"variant", testRecord(400, 300, 1, 12, 0xff), "display variant invalid (255)"},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			_, err := Parse(test.Data)
			if !errors.Is(err, ErrInvalid) {
				it.Fatalf("expected %v, got %v", ErrInvalid, err)
			}
			if !strings.Contains(err.Error(), test.Reason) {
				it.Errorf("expected reason %q, got %q", test.Reason, err)
			}
		})
	}
}

func TestVariantName(t *testing.T) {
	tests := []struct {
		Variant uint8
		Name    string
	}{
		{0, "Unknown"},
		{1, "Red pHAT (High-Temp)"},
		{14, "7-Colour (UC8159) 600x448"},
		{23, "Red/Yellow pHAT (JD79661)"},
		{24, "Red/Yellow wHAT (JD79668)"},
		{25, "Unknown"},
		{200, "Unknown"},
	}
	for _, test := range tests {
		if name := (Info{DisplayVariant: test.Variant}).VariantName(); name != test.Name {
			t.Errorf("variant %d: expected %q, got %q", test.Variant, test.Name, name)
		}
	}
}

func TestDisplaySpec(t *testing.T) {
	spec, ok := Info{Width: 400, Height: 300, DisplayVariant: VariantJD79668}.DisplaySpec()
	if !ok {
		t.Fatal("expected a display spec for the JD79668")
	}
	if spec.Controller != "JD79668" || spec.Width != 400 || spec.Height != 300 {
		t.Errorf("unexpected spec %+v", spec)
	}
	if s := spec.String(); s != "JD79668 (400x300)" {
		t.Errorf("unexpected name %q", s)
	}

	for _, variant := range []uint8{0, 14, 23} {
		if _, ok := (Info{Width: 400, Height: 300, DisplayVariant: variant}).DisplaySpec(); ok {
			t.Errorf("variant %d: expected no display spec", variant)
		}
	}
}
