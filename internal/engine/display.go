package engine

import (
	"sync"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// Frame is a copy of the display grid, indexed by row then column.
// A cell is 1 when the pixel is lit and 0 otherwise.
type Frame [chip8.ScreenHeight][chip8.ScreenWidth]uint8

// Pixel reports whether the pixel at column x and row y is lit.
// Coordinates outside the grid are reported as unlit.
func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= chip8.ScreenWidth || y < 0 || y >= chip8.ScreenHeight {
		return false
	}
	return f[y][x] != 0
}

// Display is the monochrome display buffer shared between the engine and a frontend.
// All access goes through its methods, each holding the lock for a single operation.
type Display struct {
	mu    sync.Mutex
	cells Frame
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.mu.Lock()
	d.cells = Frame{}
	d.mu.Unlock()
}

// Draw XORs an 8 pixel wide sprite onto the grid with its top left corner at
// (x mod 64, y mod 32). Sprite pixels that land outside the grid are clipped.
// It returns true if any lit sprite pixel turned off a lit screen pixel.
func (d *Display) Draw(x, y uint8, sprite []byte) bool {
	startX := int(x) % chip8.ScreenWidth
	startY := int(y) % chip8.ScreenHeight
	collision := false

	d.mu.Lock()
	defer d.mu.Unlock()

	for row, bits := range sprite {
		py := startY + row
		if py >= chip8.ScreenHeight {
			break
		}

		for col := range chip8.SpriteWidth {
			px := startX + col
			if px >= chip8.ScreenWidth {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}

			if d.cells[py][px] == 1 {
				collision = true
			}
			d.cells[py][px] ^= 1
		}
	}
	return collision
}

// Snapshot returns a consistent copy of the whole grid.
func (d *Display) Snapshot() Frame {
	d.mu.Lock()
	frame := d.cells
	d.mu.Unlock()
	return frame
}
