// Package eeprom identifies the attached e-paper display from the EEPROM on its board.
//
// Pimoroni Inky boards carry a small I²C EEPROM at address 0x50. The first 29 bytes describe the
// panel: its resolution, color capability, PCB revision and display variant. The variant selects the
// controller driver and its configuration.
package eeprom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

const (
	// Address is the I²C address of the EEPROM.
	Address = 0x50

	// Length is the size of the identity record.
	Length = 29
)

// VariantJD79668 is the display variant of the red/yellow wHAT.
const VariantJD79668 = 24

var variantNames = [25]string{
	"Unknown",
	"Red pHAT (High-Temp)",
	"Yellow wHAT",
	"Black wHAT",
	"Black pHAT",
	"Yellow pHAT",
	"Red wHAT",
	"Red wHAT (High-Temp)",
	"Red wHAT",
	"Unknown",
	"Black pHAT (SSD1608)",
	"Red pHAT (SSD1608)",
	"Yellow pHAT (SSD1608)",
	"Unknown",
	"7-Colour (UC8159) 600x448",
	"7-Colour 640x400 (UC8159)",
	"7-Colour 640x400 (UC8159)",
	"Black wHAT (SSD1683)",
	"Red wHAT (SSD1683)",
	"Yellow wHAT (SSD1683)",
	"7-Colour 800x480 (AC073TC1A)",
	"Spectra 6 13.3 1600x1200 (EL133UF1)",
	"Spectra 6 7.3 800x480 (E673)",
	"Red/Yellow pHAT (JD79661)",
	"Red/Yellow wHAT (JD79668)",
}

// ErrInvalid is returned for records that are programmed but malformed.
var ErrInvalid = errors.New("eeprom: invalid data")

// Info is a parsed identity record.
type Info struct {
	Width          uint16
	Height         uint16
	Color          uint8
	PCBVariant     uint8
	DisplayVariant uint8
}

// VariantName is the human readable name of the display variant.
func (info Info) VariantName() string {
	if int(info.DisplayVariant) < len(variantNames) {
		return variantNames[info.DisplayVariant]
	}
	return "Unknown"
}

// PCBVersion is the board revision, stored in tenths.
func (info Info) PCBVersion() float64 {
	return float64(info.PCBVariant) / 10
}

func (info Info) String() string {
	return fmt.Sprintf("%dx%d colour=%d pcb_variant=%.1f display_variant=%d (%s)",
		info.Width, info.Height, info.Color, info.PCBVersion(), info.DisplayVariant, info.VariantName())
}

// DisplaySpec returns the controller configuration for the display variant.
// Only variants with a driver in this module are known; others parse fine
// but have no spec.
func (info Info) DisplaySpec() (DisplaySpec, bool) {
	switch info.DisplayVariant {
	case VariantJD79668:
		return DisplaySpec{
			Controller: "JD79668",
			Width:      int(info.Width),
			Height:     int(info.Height),
		}, true
	default:
		return DisplaySpec{}, false
	}
}

// DisplaySpec describes a supported display.
type DisplaySpec struct {
	Controller string
	Width      int
	Height     int
}

// Size is the display resolution.
func (spec DisplaySpec) Size() image.Point {
	return image.Pt(spec.Width, spec.Height)
}

func (spec DisplaySpec) String() string {
	return fmt.Sprintf("%s (%dx%d)", spec.Controller, spec.Width, spec.Height)
}

// IsBlank reports whether data looks like an unprogrammed EEPROM.
func IsBlank(data []byte) bool {
	for _, b := range data {
		if b != 0x00 && b != 0xff {
			return false
		}
	}
	return true
}

// Parse decodes an identity record.
func Parse(data []byte) (Info, error) {
	if len(data) < Length {
		return Info{}, fmt.Errorf("%w: record too short (%d bytes, need %d)", ErrInvalid, len(data), Length)
	}

	info := Info{
		Width:          binary.LittleEndian.Uint16(data[0:]),
		Height:         binary.LittleEndian.Uint16(data[2:]),
		Color:          data[4],
		PCBVariant:     data[5],
		DisplayVariant: data[6],
	}
	if info.Width == 0 || info.Height == 0 || info.Width == 0xffff || info.Height == 0xffff {
		return Info{}, fmt.Errorf("%w: width/height out of range (width=%d, height=%d)", ErrInvalid, info.Width, info.Height)
	}
	if info.DisplayVariant == 0xff {
		return Info{}, fmt.Errorf("%w: display variant invalid (255)", ErrInvalid)
	}
	return info, nil
}
