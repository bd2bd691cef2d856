// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/config"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Apply completes the program options: settings not given on the command line
// are taken from the configuration file if one was passed, all remaining unset
// settings get their defaults.
func Apply(opts *options.Program) error {
	if opts.Config != "" {
		var file options.File
		if err := config.Load(opts.Config, &file); err != nil {
			return fmt.Errorf("loading configuration file %s: %w", opts.Config, err)
		}
		opts.Merge(file)
	}

	opts.ApplyDefaults()
	return nil
}
