// Package options contains the program options.
package options

import "github.com/retroenv/retrochip8/internal/arch/chip8"

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendSDL      = "sdl"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendWindow, FrontendSDL, FrontendTerminal, FrontendHeadless}

// Default settings used when neither the command line nor a configuration
// file sets a value.
const (
	DefaultCPUHz     = 1000
	DefaultRefreshHz = 30
	DefaultScale     = 10
	DefaultFrontend  = FrontendWindow
)

// Ranges accepted for the timing settings.
const (
	MaxCPUHz     = 100000
	MaxRefreshHz = 1000
	MaxScale     = 64
)

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"CHIP-8 program image to run" required:"true"`
}

// Parameters contains file path options.
type Parameters struct {
	Config string `flag:"c" usage:"configuration file with timing, display and audio settings"`
}

// Flags contains behavior options.
type Flags struct {
	System   string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Frontend string `flag:"f,frontend" usage:"frontend: window, sdl, terminal, headless (default: window)"`
	Mute     bool   `flag:"mute" usage:"disable the beeper"`
	List     bool   `flag:"l,list" usage:"print a disassembly listing of the program and exit"`
	Debug    bool   `flag:"debug" usage:"enable debug logging including an instruction trace"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// Timing contains the tunable rates and the display scale.
// A zero value means not set.
type Timing struct {
	CPUHz     int `flag:"cpu" usage:"instructions executed per second (default: 1000)"`
	RefreshHz int `flag:"refresh" usage:"display refresh rate in Hz (default: 30)"`
	Scale     int `flag:"scale" usage:"window pixel scale factor (default: 10)"`
}

// Program options of the emulator.
type Program struct {
	Positional
	Parameters
	Flags
	Timing
}

// File is the layout of the optional configuration file:
//
//	[timing]
//	cpu = 700
//	refresh = 60
//
//	[display]
//	scale = 12
//	frontend = "terminal"
//
//	[audio]
//	mute = true
type File struct {
	CPUHz     int    `config:"timing.cpu"`
	RefreshHz int    `config:"timing.refresh"`
	Scale     int    `config:"display.scale"`
	Frontend  string `config:"display.frontend"`
	Mute      bool   `config:"audio.mute"`
}

// Merge fills all settings that are not set with the values from the
// configuration file.
func (p *Program) Merge(file File) {
	if p.CPUHz == 0 {
		p.CPUHz = file.CPUHz
	}
	if p.RefreshHz == 0 {
		p.RefreshHz = file.RefreshHz
	}
	if p.Scale == 0 {
		p.Scale = file.Scale
	}
	if p.Frontend == "" {
		p.Frontend = file.Frontend
	}
	if file.Mute {
		p.Mute = true
	}
}

// ApplyDefaults fills all settings that are still not set with the defaults.
func (p *Program) ApplyDefaults() {
	if p.CPUHz == 0 {
		p.CPUHz = DefaultCPUHz
	}
	if p.RefreshHz == 0 {
		p.RefreshHz = DefaultRefreshHz
	}
	if p.Scale == 0 {
		p.Scale = DefaultScale
	}
	if p.Frontend == "" {
		p.Frontend = DefaultFrontend
	}
}

// Resolution returns the window size in pixels for the configured scale.
func (t Timing) Resolution() (int, int) {
	return chip8.ScreenWidth * t.Scale, chip8.ScreenHeight * t.Scale
}
