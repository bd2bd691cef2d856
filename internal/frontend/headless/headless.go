// Package headless implements a frontend without any output or input,
// used for automated runs and tests.
package headless

import (
	"context"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrogolib/log"
)

// Headless waits for the run to end without rendering anything.
type Headless struct {
	logger *log.Logger
}

// New returns a headless frontend.
func New(logger *log.Logger) *Headless {
	return &Headless{logger: logger}
}

// Run returns when the context is cancelled or the machine halts.
// There is nobody to show a halted display to, so a halt ends the run
// immediately.
func (h *Headless) Run(ctx context.Context, _ *engine.Display, _ *engine.Keypad, halt <-chan error) error {
	select {
	case <-ctx.Done():
		return nil
	case err := <-halt:
		h.logger.Debug("Machine halted", log.Err(err))
		return nil
	}
}
