package headless

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := New(log.NewTestLogger(t))
	err := h.Run(ctx, &engine.Display{}, &engine.Keypad{}, make(chan error))
	assert.NoError(t, err)
}

func TestRun_Halt(t *testing.T) {
	halt := make(chan error, 1)
	halt <- errors.New("stack overflow")

	h := New(log.NewTestLogger(t))
	err := h.Run(context.Background(), &engine.Display{}, &engine.Keypad{}, halt)
	assert.NoError(t, err)
}
