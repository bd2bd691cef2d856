// Package frontend defines the display and input consumers of the engine and
// the shared key layout and rendering helpers they use.
package frontend

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrogolib/input"
)

// ErrUnavailable is returned when a frontend is not included in the build.
var ErrUnavailable = errors.New("frontend not available in this build")

// Frontend renders the display buffer and feeds host key events into the
// keypad until the user quits or the context is cancelled. After a value is
// received on the halt channel the last frame stays visible until the user
// quits. Run must be called from the main goroutine.
type Frontend interface {
	Run(ctx context.Context, display *engine.Display, keypad *engine.Keypad, halt <-chan error) error
}

// Config contains the settings shared by all frontends.
type Config struct {
	Title     string
	Scale     int
	RefreshHz int
}

// Layout maps the logical keys to host keys, the index is the logical key:
//
//	1 2 3 4
//	Q W E R
//	A S D F
//	Z X C V
var Layout = [chip8.KeyCount]input.Key{
	input.Key1, input.Key2, input.Key3, input.Key4,
	input.Q, input.W, input.E, input.R,
	input.A, input.S, input.D, input.F,
	input.Z, input.X, input.C, input.V,
}

// LogicalKey returns the logical key that a host key is mapped to.
func LogicalKey(key input.Key) (uint8, bool) {
	for i, k := range Layout {
		if k == key {
			return uint8(i), true
		}
	}
	return 0, false
}

// RuneKey returns the host key for a typed digit or letter, ignoring case.
func RuneKey(r rune) (input.Key, bool) {
	switch {
	case r >= '0' && r <= '9':
		return input.Key0 + input.Key(r-'0'), true
	case r >= 'a' && r <= 'z':
		return input.A + input.Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return input.A + input.Key(r-'A'), true
	default:
		return input.Unknown, false
	}
}

// Pixel colors of the rendered display.
var (
	PixelOn  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	PixelOff = color.RGBA{A: 0xFF}
)

// NewImage returns an image with the size of the display grid.
func NewImage() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, chip8.ScreenWidth, chip8.ScreenHeight))
}

// Render draws a frame into an image of the display grid size.
func Render(frame *engine.Frame, img *image.RGBA) {
	for y := range chip8.ScreenHeight {
		for x := range chip8.ScreenWidth {
			if frame.Pixel(x, y) {
				img.SetRGBA(x, y, PixelOn)
			} else {
				img.SetRGBA(x, y, PixelOff)
			}
		}
	}
}
