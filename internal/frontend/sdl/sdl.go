// Package sdl implements a frontend that renders into an SDL2 window. The SDL2
// library is loaded at runtime, no cgo is required.
package sdl

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/gui"
	"github.com/retroenv/retrogolib/gui/sdl2"
	"github.com/retroenv/retrogolib/input"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const haltLabel = "HALT"

var haltColor = color.RGBA{R: 0xF0, G: 0x40, B: 0x40, A: 0xFF}

// SDL renders the display into an SDL2 window through the retrogolib gui backend.
type SDL struct {
	logger *log.Logger
	cfg    frontend.Config
	setup  gui.Initializer
}

// New returns an SDL frontend.
func New(logger *log.Logger, cfg frontend.Config) *SDL {
	return &SDL{
		logger: logger,
		cfg:    cfg,
		setup:  sdl2.Setup,
	}
}

// Run opens the window and blocks until it is closed.
func (s *SDL) Run(ctx context.Context, display *engine.Display, keypad *engine.Keypad, halt <-chan error) error {
	b := newBackend(s.cfg, display, keypad)

	render, cleanup, err := s.setup(b)
	if err != nil {
		return fmt.Errorf("setting up SDL window: %w", err)
	}
	defer cleanup()

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.RefreshHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-halt:
			b.halted = true
			halt = nil // keep showing the last frame
			s.logger.Debug("Window halted, close the window to exit", log.Err(err))
		case <-ticker.C:
			running, err := render()
			if err != nil {
				return fmt.Errorf("rendering SDL window: %w", err)
			}
			if !running {
				return nil
			}
		}
	}
}

// backend implements gui.Backend on top of the shared display and keypad.
type backend struct {
	cfg     frontend.Config
	display *engine.Display
	keypad  *engine.Keypad
	pixels  *image.RGBA
	halted  bool
}

func newBackend(cfg frontend.Config, display *engine.Display, keypad *engine.Keypad) *backend {
	return &backend{
		cfg:     cfg,
		display: display,
		keypad:  keypad,
		pixels:  frontend.NewImage(),
	}
}

// Image renders the current display snapshot.
func (b *backend) Image() *image.RGBA {
	frame := b.display.Snapshot()
	frontend.Render(&frame, b.pixels)

	if b.halted {
		drawer := font.Drawer{
			Dst:  b.pixels,
			Src:  image.NewUniform(haltColor),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(2, basicfont.Face7x13.Ascent+1),
		}
		drawer.DrawString(haltLabel)
	}
	return b.pixels
}

func (b *backend) Dimensions() gui.Dimensions {
	return gui.Dimensions{
		ScaleFactor: float64(b.cfg.Scale),
		Width:       chip8.ScreenWidth,
		Height:      chip8.ScreenHeight,
	}
}

func (b *backend) WindowTitle() string {
	return b.cfg.Title
}

func (b *backend) KeyDown(key input.Key) {
	if logical, ok := frontend.LogicalKey(key); ok {
		b.keypad.Press(logical)
	}
}

func (b *backend) KeyUp(key input.Key) {
	if logical, ok := frontend.LogicalKey(key); ok {
		b.keypad.Release(logical)
	}
}
