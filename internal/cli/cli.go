// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/cli"
)

// ParseFlags parses the command line flags and the optional configuration
// file and returns the complete program options.
func ParseFlags() (options.Program, error) {
	var opts options.Program

	flags := cli.NewFlagSet("retrochip8")
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)
	flags.AddSection("Timing", &opts.Timing)
	flags.AddPositional(&opts.Positional)

	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		var missingArgs *cli.MissingArgsError
		if errors.As(err, &missingArgs) {
			return opts, &UsageError{flags: flags}
		}
		// The flag set already printed the usage for help requests and
		// malformed flags.
		if errors.Is(err, cli.ErrHelpRequested) {
			return opts, &UsageError{}
		}
		return opts, &UsageError{msg: err.Error()}
	}

	if err := validateArgs(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if err := config.Apply(&opts); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *cli.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the error message and the usage unless the flag set
// already printed it.
func (e *UsageError) ShowUsage() {
	if e.flags == nil {
		return
	}
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	e.flags.ShowUsage()
}

// validateArgs checks that no arguments follow the program file.
func validateArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	if strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("potential argument %s found after program file, please pass the program file as last argument", args[0])
	}
	return fmt.Errorf("unexpected argument %s after program file", args[0])
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if err := checkRange("cpu rate", opts.CPUHz, options.MaxCPUHz); err != nil {
		return err
	}
	if err := checkRange("refresh rate", opts.RefreshHz, options.MaxRefreshHz); err != nil {
		return err
	}
	return checkRange("scale", opts.Scale, options.MaxScale)
}

func checkRange(name string, value, maximum int) error {
	if value < 1 || value > maximum {
		return fmt.Errorf("invalid %s %d, valid range is 1-%d", name, value, maximum)
	}
	return nil
}
