// Package pipeline orchestrates the emulator run: it loads the program and
// runs the CPU loop, the timer loop and the frontend until they end together.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/sdl"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// Pipeline orchestrates the complete emulator run.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader

	frontend      frontend.Frontend
	beeper        audio.Beeper
	engineOptions []engine.Option
	output        io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFrontend uses the given frontend instead of the one selected by the
// program options.
func WithFrontend(fe frontend.Frontend) Option {
	return func(p *Pipeline) {
		p.frontend = fe
	}
}

// WithBeeper uses the given beeper instead of the audio device.
func WithBeeper(beeper audio.Beeper) Option {
	return func(p *Pipeline) {
		p.beeper = beeper
	}
}

// WithOutput sets the destination of the program listing.
func WithOutput(output io.Writer) Option {
	return func(p *Pipeline) {
		p.output = output
	}
}

// WithEngineOptions passes options to the engine when it is created.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(p *Pipeline) {
		p.engineOptions = append(p.engineOptions, opts...)
	}
}

// New creates a new emulator pipeline.
func New(logger *log.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		output:   os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute runs the program selected by the options. It returns after the
// user quit the frontend or the context was cancelled. A machine fault is
// returned once the frontend was closed. In listing mode the program is
// written as disassembly instead of being run.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	system, err := p.detector.Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	image, err := p.loader.Load(opts.File)
	if err != nil {
		return fmt.Errorf("loading program image: %w", err)
	}

	if opts.List {
		w := writer.New(p.output, writer.Options{OffsetComments: true, HexComments: true})
		if err := w.Write(image); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	eng, err := engine.New(p.logger, engine.DefaultFont, image, p.engineOptions...)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	app.PrintInfo(p.logger, opts, system, len(image))

	fe, err := p.createFrontend(opts)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	return p.run(ctx, eng, fe, p.createBeeper(opts.Mute), opts.CPUHz)
}

// run starts the CPU and timer loops and runs the frontend on the calling
// goroutine. A CPU fault stops both loops and is handed to the frontend,
// which keeps showing the last frame until it is closed.
func (p *Pipeline) run(ctx context.Context, eng *engine.Engine, fe frontend.Frontend,
	beeper audio.Beeper, cpuHz int) error {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	halt := make(chan error, 1)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		err := RunCPU(groupCtx, eng, cpuHz)
		if err != nil {
			p.logger.Error("Machine halted", log.Err(err))
			halt <- err
		}
		return err
	})
	group.Go(func() error {
		return timer.Run(groupCtx, p.logger, eng.DelayTimer(), eng.SoundTimer(), beeper)
	})

	frontendErr := fe.Run(ctx, eng.Display(), eng.Keypad(), halt)
	cancel()
	groupErr := group.Wait()

	if frontendErr != nil {
		return fmt.Errorf("running frontend: %w", frontendErr)
	}
	if groupErr != nil {
		return fmt.Errorf("running program: %w", groupErr)
	}
	return nil
}

// RunCPU executes one instruction per tick at the given rate until the
// context is cancelled or the machine faults.
func RunCPU(ctx context.Context, eng *engine.Engine, hz int) error {
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := eng.Step(); err != nil {
				return err
			}
		}
	}
}

// createFrontend returns the injected frontend or the one named in the options.
func (p *Pipeline) createFrontend(opts options.Program) (frontend.Frontend, error) {
	if p.frontend != nil {
		return p.frontend, nil
	}

	cfg := frontend.Config{
		Title:     app.WindowTitle(opts.File),
		Scale:     opts.Scale,
		RefreshHz: opts.RefreshHz,
	}

	switch opts.Frontend {
	case options.FrontendWindow:
		w, err := window.New(p.logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("creating window: %w", err)
		}
		return w, nil
	case options.FrontendSDL:
		return sdl.New(p.logger, cfg), nil
	case options.FrontendTerminal:
		return terminal.New(p.logger, cfg), nil
	case options.FrontendHeadless:
		return headless.New(p.logger), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

// createBeeper returns the injected beeper, a silent one when muted or the
// audio device beeper. Audio is optional, a device error only disables it.
func (p *Pipeline) createBeeper(mute bool) audio.Beeper {
	if p.beeper != nil {
		return p.beeper
	}
	if mute {
		return audio.Silent{}
	}

	beeper, err := audio.NewOtoBeeper()
	if err != nil {
		p.logger.Warn("Audio not available, beeper disabled", log.Err(err))
		return audio.Silent{}
	}
	return beeper
}
