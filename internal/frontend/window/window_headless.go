//go:build headless

// Package window implements a frontend that renders into a desktop window.
package window

import (
	"context"
	"fmt"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// Window is not available in headless builds.
type Window struct{}

// New reports that the window frontend is not part of headless builds.
func New(_ *log.Logger, _ frontend.Config) (*Window, error) {
	return nil, fmt.Errorf("window: %w", frontend.ErrUnavailable)
}

// Run reports that the window frontend is not part of headless builds.
func (w *Window) Run(_ context.Context, _ *engine.Display, _ *engine.Keypad, _ <-chan error) error {
	return fmt.Errorf("window: %w", frontend.ErrUnavailable)
}
