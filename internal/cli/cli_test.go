package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"retrochip8"}, args...)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			want: options.Program{
				Positional: options.Positional{File: "pong.ch8"},
				Flags:      options.Flags{Frontend: options.FrontendWindow},
				Timing:     options.Timing{CPUHz: 1000, RefreshHz: 30, Scale: 10},
			},
		},
		{
			name: "timing flags",
			args: []string{"-cpu", "500", "-refresh", "60", "-scale", "4", "pong.ch8"},
			want: options.Program{
				Positional: options.Positional{File: "pong.ch8"},
				Flags:      options.Flags{Frontend: options.FrontendWindow},
				Timing:     options.Timing{CPUHz: 500, RefreshHz: 60, Scale: 4},
			},
		},
		{
			name: "behavior flags",
			args: []string{"-f", "Terminal", "-mute", "-debug", "-s", "chip8", "pong.ch8"},
			want: options.Program{
				Positional: options.Positional{File: "pong.ch8"},
				Flags: options.Flags{
					System:   "chip8",
					Frontend: options.FrontendTerminal,
					Mute:     true,
					Debug:    true,
				},
				Timing: options.Timing{CPUHz: 1000, RefreshHz: 30, Scale: 10},
			},
		},
		{
			name: "long frontend flag",
			args: []string{"-frontend", "headless", "-q", "pong.ch8"},
			want: options.Program{
				Positional: options.Positional{File: "pong.ch8"},
				Flags:      options.Flags{Frontend: options.FrontendHeadless, Quiet: true},
				Timing:     options.Timing{CPUHz: 1000, RefreshHz: 30, Scale: 10},
			},
		},
		{
			name: "listing",
			args: []string{"-l", "pong.ch8"},
			want: options.Program{
				Positional: options.Positional{File: "pong.ch8"},
				Flags:      options.Flags{Frontend: options.FrontendWindow, List: true},
				Timing:     options.Timing{CPUHz: 1000, RefreshHz: 30, Scale: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip8.conf")
	assert.NoError(t, os.WriteFile(path, []byte("[timing]\ncpu = 700\n\n[display]\nscale = 6\n"), 0o600))

	setArgs(t, "-c", path, "-scale", "3", "pong.ch8")

	got, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, 700, got.CPUHz)
	assert.Equal(t, 3, got.Scale)
	assert.Equal(t, options.DefaultRefreshHz, got.RefreshHz)
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		errContain string
	}{
		{
			name: "missing program file",
			args: []string{"-debug"},
		},
		{
			name:       "flag after program file",
			args:       []string{"pong.ch8", "-debug"},
			errContain: "after program file",
		},
		{
			name:       "second positional argument",
			args:       []string{"pong.ch8", "tetris.ch8"},
			errContain: "unexpected argument tetris.ch8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.NotNil(t, usageErr.flags)
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
			}
		})
	}
}

func TestParseFlags_InvalidOptions(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		errContain string
	}{
		{"unknown frontend", []string{"-f", "vulkan", "pong.ch8"}, "unsupported frontend: vulkan"},
		{"cpu rate too high", []string{"-cpu", "1000000", "pong.ch8"}, "invalid cpu rate"},
		{"negative refresh rate", []string{"-refresh", "-5", "pong.ch8"}, "invalid refresh rate"},
		{"scale too high", []string{"-scale", "100", "pong.ch8"}, "invalid scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()
			assert.ErrorContains(t, err, tt.errContain)

			var usageErr *UsageError
			assert.False(t, errors.As(err, &usageErr))
		})
	}
}
