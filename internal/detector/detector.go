// Package detector handles system architecture detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned when a system other than CHIP-8 is requested.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Detector handles system architecture detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from options or file auto-detection.
// It first checks if a system is explicitly specified in options, otherwise
// attempts to detect the system from the program filename extension.
// Only CHIP-8 programs can be run, any other explicit system is rejected.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	if opts.System != "" {
		system, ok := arch.SystemFromString(opts.System)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedSystem, opts.System)
		}
		if system != arch.CHIP8System {
			return "", fmt.Errorf("%w: %s, only %s programs can be run",
				ErrUnsupportedSystem, system, arch.CHIP8System)
		}
		return system, nil
	}

	system, known := d.detectFromFile(opts.File)
	if known {
		d.logger.Debug("Auto-detected system",
			log.Stringer("system", system),
			log.String("file", opts.File))
	} else {
		d.logger.Debug("Unknown file extension, assuming CHIP-8 program",
			log.String("file", opts.File))
	}
	return system, nil
}

// detectFromFile determines the system type based on file extension.
// Raw images carry no header, so unknown extensions are treated as CHIP-8
// as well and reported as not known.
func (d *Detector) detectFromFile(filename string) (arch.System, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System, true
	default:
		return arch.CHIP8System, false
	}
}
