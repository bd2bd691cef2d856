//go:build !headless

// Package window implements a frontend that renders into a desktop window.
package window

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/input"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

var haltColor = color.RGBA{R: 0xF0, G: 0x40, B: 0x40, A: 0xFF}

// keyMapping maps the layout keys to ebiten keys.
var keyMapping = map[input.Key]ebiten.Key{
	input.Key1: ebiten.KeyDigit1,
	input.Key2: ebiten.KeyDigit2,
	input.Key3: ebiten.KeyDigit3,
	input.Key4: ebiten.KeyDigit4,
	input.Q:    ebiten.KeyQ,
	input.W:    ebiten.KeyW,
	input.E:    ebiten.KeyE,
	input.R:    ebiten.KeyR,
	input.A:    ebiten.KeyA,
	input.S:    ebiten.KeyS,
	input.D:    ebiten.KeyD,
	input.F:    ebiten.KeyF,
	input.Z:    ebiten.KeyZ,
	input.X:    ebiten.KeyX,
	input.C:    ebiten.KeyC,
	input.V:    ebiten.KeyV,
}

// Window renders the display scaled into a desktop window using ebiten.
type Window struct {
	logger *log.Logger
	cfg    frontend.Config

	ctx     context.Context
	display *engine.Display
	keypad  *engine.Keypad
	halt    <-chan error

	keys   [chip8.KeyCount]ebiten.Key
	pixels *image.RGBA
	image  *ebiten.Image
	fault  error
}

// New returns a window frontend.
func New(logger *log.Logger, cfg frontend.Config) (*Window, error) {
	w := &Window{
		logger: logger,
		cfg:    cfg,
		pixels: frontend.NewImage(),
	}

	for i, key := range frontend.Layout {
		ebitenKey, ok := keyMapping[key]
		if !ok {
			return nil, fmt.Errorf("no window key mapping for logical key %X", i)
		}
		w.keys[i] = ebitenKey
	}
	return w, nil
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run(ctx context.Context, display *engine.Display, keypad *engine.Keypad, halt <-chan error) error {
	w.ctx = ctx
	w.display = display
	w.keypad = keypad
	w.halt = halt

	width, height := w.size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetTPS(w.cfg.RefreshHz)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update handles input, it is called at the refresh rate.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	select {
	case <-w.ctx.Done():
		return ebiten.Termination
	case err := <-w.halt:
		w.fault = err
		w.halt = nil // keep showing the last frame
		w.logger.Debug("Window halted, close the window to exit")
	default:
	}

	for i, key := range w.keys {
		switch {
		case inpututil.IsKeyJustPressed(key):
			w.keypad.Press(uint8(i))
		case inpututil.IsKeyJustReleased(key):
			w.keypad.Release(uint8(i))
		}
	}
	return nil
}

// Draw renders the current display snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight)
	}

	frame := w.display.Snapshot()
	frontend.Render(&frame, w.pixels)
	w.image.WritePixels(w.pixels.Pix)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(w.cfg.Scale), float64(w.cfg.Scale))
	screen.DrawImage(w.image, opts)

	if w.fault != nil {
		face := basicfont.Face7x13
		text.Draw(screen, "halted: "+w.fault.Error(), face, 4, face.Height+2, haltColor)
	}
}

// Layout returns the fixed logical screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.size()
}

func (w *Window) size() (int, int) {
	return chip8.ScreenWidth * w.cfg.Scale, chip8.ScreenHeight * w.cfg.Scale
}
