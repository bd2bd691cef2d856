package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// beepFrontend is a frontend and beeper that ends the run on the first beep.
type beepFrontend struct {
	beeps chan struct{}
}

func (f *beepFrontend) Beep() {
	select {
	case f.beeps <- struct{}{}:
	default:
	}
}

func (f *beepFrontend) Run(ctx context.Context, _ *engine.Display, _ *engine.Keypad, _ <-chan error) error {
	select {
	case <-f.beeps:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
	assert.Nil(t, p.frontend)
}

func TestExecute_Fault(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := testOptions(t, 0x60, 0x42, 0x00, 0xEE) // ld V0, $42; ret

	err := p.Execute(context.Background(), opts)
	assert.ErrorIs(t, err, engine.ErrStackUnderflow)

	var fault *engine.Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x202), fault.Address)
	assert.Equal(t, uint16(0x00EE), fault.Opcode)
}

func TestExecute_Cancelled(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := testOptions(t, 0x12, 0x00) // jp $200

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, p.Execute(ctx, opts))
}

func TestExecute_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		p := New(log.NewTestLogger(t))
		opts := testOptions(t, 0x12, 0x00)
		opts.File = filepath.Join(t.TempDir(), "missing.ch8")

		err := p.Execute(context.Background(), opts)
		assert.ErrorContains(t, err, "loading program image")
	})

	t.Run("empty file", func(t *testing.T) {
		p := New(log.NewTestLogger(t))
		opts := testOptions(t)

		err := p.Execute(context.Background(), opts)
		assert.ErrorIs(t, err, loader.ErrEmptyImage)
	})

	t.Run("unsupported system", func(t *testing.T) {
		p := New(log.NewTestLogger(t))
		opts := testOptions(t, 0x12, 0x00)
		opts.System = "nes"

		err := p.Execute(context.Background(), opts)
		assert.ErrorIs(t, err, detector.ErrUnsupportedSystem)
	})

	t.Run("unsupported frontend", func(t *testing.T) {
		p := New(log.NewTestLogger(t))
		opts := testOptions(t, 0x12, 0x00)
		opts.Frontend = "printer"

		err := p.Execute(context.Background(), opts)
		assert.ErrorContains(t, err, "unsupported frontend 'printer'")
	})
}

func TestExecute_SoundTimerBeeps(t *testing.T) {
	fe := &beepFrontend{beeps: make(chan struct{}, 1)}
	random := engine.WithRandom(func() uint8 { return 0x02 })
	p := New(log.NewTestLogger(t), WithFrontend(fe), WithBeeper(fe), WithEngineOptions(random))

	// rnd V0, $FF; ld ST, V0; jp $204
	opts := testOptions(t, 0xC0, 0xFF, 0xF0, 0x18, 0x12, 0x04)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, p.Execute(ctx, opts))
}

func TestExecute_List(t *testing.T) {
	var buf bytes.Buffer
	p := New(log.NewTestLogger(t), WithOutput(&buf))
	opts := testOptions(t, 0x00, 0xE0, 0x12, 0x02)
	opts.List = true

	assert.NoError(t, p.Execute(context.Background(), opts))
	assert.Contains(t, buf.String(), "cls")
	assert.Contains(t, buf.String(), "jp $202")
	assert.Contains(t, buf.String(), "$0202  12 02")
}

func TestRunCPU(t *testing.T) {
	logger := log.NewTestLogger(t)

	t.Run("stops on fault", func(t *testing.T) {
		// ld V3, $07; add V3, $01; ret
		eng, err := engine.New(logger, engine.DefaultFont, []byte{0x63, 0x07, 0x73, 0x01, 0x00, 0xEE})
		assert.NoError(t, err)

		err = RunCPU(context.Background(), eng, 10000)
		assert.ErrorIs(t, err, engine.ErrStackUnderflow)
		assert.Equal(t, uint8(0x08), eng.Registers()[3])
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		eng, err := engine.New(logger, engine.DefaultFont, []byte{0x12, 0x00})
		assert.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.NoError(t, RunCPU(ctx, eng, 1000))
	})
}

func TestCreateBeeper(t *testing.T) {
	p := New(log.NewTestLogger(t))
	assert.NotNil(t, p.createBeeper(true))

	fe := &beepFrontend{beeps: make(chan struct{}, 1)}
	p = New(log.NewTestLogger(t), WithBeeper(fe))
	assert.Equal(t, fe, p.createBeeper(false))
}

func testOptions(t *testing.T, image ...byte) options.Program {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.ch8")
	assert.NoError(t, os.WriteFile(path, image, 0o600))

	opts := options.Program{
		Positional: options.Positional{File: path},
		Flags: options.Flags{
			Frontend: options.FrontendHeadless,
			Mute:     true,
			Quiet:    true,
		},
	}
	opts.ApplyDefaults()
	return opts
}
