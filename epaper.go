// Package epaper contains drivers for e-paper displays.
package epaper

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/BeatGlow/epaper/internal/debug"
	"github.com/BeatGlow/epaper/pixel"
)

func logf(format string, args ...interface{}) {
	debug.Printf("epaper: "+format, args...)
}

// Clock, replaced in tests.
var (
	sleep = time.Sleep
	now   = time.Now
)

// Errors
var (
	ErrUninitialized = errors.New("epaper: display is not initialized")
	ErrBusyTimeout   = errors.New("epaper: timeout waiting for display")
	ErrNoImage       = errors.New("epaper: no image")
)

// BusyTimeoutError is returned when the busy line did not report ready in time.
type BusyTimeoutError struct {
	Timeout time.Duration
}

func (err *BusyTimeoutError) Error() string {
	return fmt.Sprintf("epaper: timeout waiting for display after %s", err.Timeout)
}

// Is matches [ErrBusyTimeout].
func (err *BusyTimeoutError) Is(target error) bool {
	return target == ErrBusyTimeout
}

// State of the display driver.
type State uint8

// Driver states.
const (
	Uninitialized State = iota
	Initialized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Display is an e-paper display.
type Display interface {
	// Close the display driver.
	Close() error

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// ColorMap is the palette the panel can show.
	ColorMap() pixel.ColorMap

	// Initialize resets the controller and loads its configuration.
	Initialize() error

	// Show sends the image and refreshes the panel.
	Show(*pixel.Indexed) error

	// State of the driver.
	State() State

	String() string
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// SPI bus and GPIO lines.
	SPI SPIConfig
}

// DefaultConfig is the Inky wHAT (JD79668) configuration.
var DefaultConfig = Config{
	Width:  jd79668DefaultWidth,
	Height: jd79668DefaultHeight,
	SPI:    DefaultSPIConfig,
}

// Size is the configured resolution.
func (config *Config) Size() image.Point {
	return image.Pt(config.Width, config.Height)
}
