//go:build windows

// Package terminal implements a frontend that renders into a text terminal.
package terminal

import (
	"context"
	"fmt"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// Terminal is not available on Windows.
type Terminal struct{}

// New returns a terminal frontend that reports itself as unavailable.
func New(_ *log.Logger, _ frontend.Config) *Terminal {
	return &Terminal{}
}

// Run reports that the terminal frontend is not available on Windows.
func (t *Terminal) Run(_ context.Context, _ *engine.Display, _ *engine.Keypad, _ <-chan error) error {
	return fmt.Errorf("terminal: %w", frontend.ErrUnavailable)
}
