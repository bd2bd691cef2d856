//go:build !windows

// Package terminal implements a frontend that renders into a text terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// KeyHold is how long a key counts as pressed after its last input byte.
// Terminals only report key presses, the release is synthesized.
const KeyHold = 200 * time.Millisecond

// Control sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearLine   = "\x1b[K"

	keyEscape = 0x1B
	keyCtrlC  = 0x03
)

// Terminal renders two display rows per text row using half block glyphs and
// reads keys from raw mode stdin.
type Terminal struct {
	logger *log.Logger
	cfg    frontend.Config

	in   int
	out  io.Writer
	hold time.Duration

	lastSeen [chip8.KeyCount]time.Time
}

// New returns a terminal frontend using stdin and stdout.
func New(logger *log.Logger, cfg frontend.Config) *Terminal {
	return &Terminal{
		logger: logger,
		cfg:    cfg,
		in:     int(os.Stdin.Fd()),
		out:    os.Stdout,
		hold:   KeyHold,
	}
}

// Run switches the terminal to raw mode and renders until Escape or Ctrl-C
// is pressed or the context is cancelled. The terminal state is restored
// on return.
func (t *Terminal) Run(ctx context.Context, display *engine.Display, keypad *engine.Keypad, halt <-chan error) error {
	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if width < chip8.ScreenWidth || height < chip8.ScreenHeight/2+1 {
			t.logger.Warn("Terminal is smaller than the display",
				log.Int("width", width),
				log.Int("height", height))
		}
	}

	oldState, err := term.MakeRaw(t.in)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() { _ = term.Restore(t.in, oldState) }()

	if err := unix.SetNonblock(t.in, true); err != nil {
		return fmt.Errorf("setting nonblocking stdin: %w", err)
	}
	defer func() { _ = unix.SetNonblock(t.in, false) }()

	_, _ = io.WriteString(t.out, hideCursor+clearScreen)
	defer func() { _, _ = io.WriteString(t.out, showCursor+"\r\n") }()

	ticker := time.NewTicker(time.Second / time.Duration(t.cfg.RefreshHz))
	defer ticker.Stop()

	var status string
	buf := make([]byte, 64)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-halt:
			status = "halted: " + err.Error() + ", press Escape to exit"
			halt = nil // keep showing the last frame

		case <-ticker.C:
			now := time.Now()
			data, err := t.read(buf)
			if err != nil {
				return err
			}
			if t.handleInput(data, keypad, now) {
				return nil
			}
			t.releaseExpired(keypad, now)

			frame := display.Snapshot()
			if _, err := io.WriteString(t.out, RenderFrame(&frame, status)); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
		}
	}
}

// read returns the pending input bytes without blocking.
func (t *Terminal) read(buf []byte) ([]byte, error) {
	n, err := unix.Read(t.in, buf)
	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EWOULDBLOCK):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading stdin: %w", err)
	case n <= 0:
		return nil, nil
	}
	return buf[:n], nil
}

// handleInput presses the logical keys for the input bytes and reports
// whether the user asked to quit. Escape quits unless it starts a CSI or SS3
// control sequence, which is skipped.
func (t *Terminal) handleInput(data []byte, keypad *engine.Keypad, now time.Time) bool {
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch b {
		case keyCtrlC:
			return true

		case keyEscape:
			end, ok := controlSequenceEnd(data, i)
			if !ok {
				return true
			}
			i = end
			continue
		}

		key, ok := frontend.RuneKey(rune(b))
		if !ok {
			continue
		}
		logical, ok := frontend.LogicalKey(key)
		if !ok {
			continue
		}
		keypad.Press(logical)
		t.lastSeen[logical] = now
	}
	return false
}

// controlSequenceEnd returns the index of the last byte of the control
// sequence starting with the Escape at index start. It returns false if the
// Escape does not introduce a sequence.
func controlSequenceEnd(data []byte, start int) (int, bool) {
	next := start + 1
	if next >= len(data) {
		return 0, false
	}

	switch data[next] {
	case '[':
		// parameter and intermediate bytes are followed by one final byte
		i := next + 1
		for i < len(data) && data[i] >= 0x20 && data[i] <= 0x3F {
			i++
		}
		return min(i, len(data)-1), true

	case 'O':
		return min(next+1, len(data)-1), true

	default:
		return 0, false
	}
}

// releaseExpired releases all keys without input for longer than the hold time.
func (t *Terminal) releaseExpired(keypad *engine.Keypad, now time.Time) {
	for i, seen := range t.lastSeen {
		if seen.IsZero() || now.Sub(seen) < t.hold {
			continue
		}
		keypad.Release(uint8(i))
		t.lastSeen[i] = time.Time{}
	}
}

// RenderFrame returns the terminal output for a frame, starting at the top
// left corner. Every text row shows two display rows.
func RenderFrame(frame *engine.Frame, status string) string {
	var sb strings.Builder
	sb.Grow(len(cursorHome) + chip8.ScreenHeight/2*(chip8.ScreenWidth*3+2) + len(status) + len(clearLine))
	sb.WriteString(cursorHome)

	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := range chip8.ScreenWidth {
			top := frame.Pixel(x, y)
			bottom := frame.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	sb.WriteString(status)
	sb.WriteString(clearLine)
	return sb.String()
}
