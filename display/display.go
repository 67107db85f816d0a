// Package display contains drivers for e-paper displays.
package display

import (
	"errors"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Errors
var (
	ErrBusyTimeout = errors.New("display: timeout waiting for busy pin")
	ErrBusyPin     = errors.New("display: busy GPIO pin is invalid")
	ErrBufferSize  = errors.New("display: buffer size does not match display")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// ParseRotation parses the rotation names accepted on the command line.
func ParseRotation(s string) (Rotation, error) {
	switch s {
	case "", "no", "0":
		return NoRotation, nil
	case "90", "right", "cw":
		return Rotate90, nil
	case "180", "flip":
		return Rotate180, nil
	case "270", "left", "ccw":
		return Rotate270, nil
	default:
		return NoRotation, fmt.Errorf("display: invalid rotation %q", s)
	}
}

// Display is an e-paper panel.
//
// Frames are sent as packed buffers: one bit per pixel, rows MSB first, a set
// bit is white. Use Buffer to convert an image.
type Display interface {
	fmt.Stringer

	// Init wakes the panel and loads its configuration. It must be called
	// before the first Display and after Sleep.
	Init() error

	// Clear the panel to white.
	Clear() error

	// Display shows a packed frame.
	Display(buf []byte) error

	// Buffer packs img for Display.
	Buffer(img image.Image) []byte

	// Sleep puts the panel in deep sleep.
	Sleep() error

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// Close the display driver.
	Close() error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// Rotation of the frames on the panel.
	Rotation Rotation

	// Busy pin, low while the controller is working.
	Busy gpio.PinIn

	// BusyTimeout bounds every wait on the busy pin.
	BusyTimeout time.Duration
}
