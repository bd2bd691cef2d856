package app

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "retrochip8 - pong.ch8", WindowTitle("/games/pong.ch8"))
	assert.Equal(t, "retrochip8 - pong.ch8", WindowTitle("pong.ch8"))
}

func TestPrintInfo(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{
		Positional: options.Positional{File: "pong.ch8"},
	}
	opts.ApplyDefaults()

	assert.NotPanics(t, func() {
		PrintBanner(logger, opts, "dev", "abcdef0", "")
		PrintInfo(logger, opts, arch.CHIP8System, 246)
	})

	opts.Quiet = true
	assert.NotPanics(t, func() {
		PrintInfo(logger, opts, arch.CHIP8System, 246)
	})
}
