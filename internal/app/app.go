// Package app provides the main application helpers for the emulator.
package app

import (
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Name of the application, used for the banner and the window title.
const Name = "retrochip8"

// PrintBanner prints the application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info(Name, log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the loaded program and the
// settings it is run with.
func PrintInfo(logger *log.Logger, opts options.Program, system arch.System, imageSize int) {
	if opts.Quiet {
		return
	}

	width, height := opts.Resolution()
	logger.Info("Running program",
		log.String("file", filepath.Base(opts.File)),
		log.Stringer("system", system),
		log.Int("size", imageSize),
		log.String("frontend", opts.Frontend),
	)
	logger.Info("Settings",
		log.Int("scale", opts.Scale),
		log.Int("width", width),
		log.Int("height", height),
		log.Int("refresh_hz", opts.RefreshHz),
		log.Int("cpu_hz", opts.CPUHz),
		log.Bool("mute", opts.Mute),
	)
}

// WindowTitle returns the title of the frontend window for a program file.
func WindowTitle(file string) string {
	return Name + " - " + filepath.Base(file)
}
