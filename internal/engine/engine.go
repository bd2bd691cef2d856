// Package engine implements the CHIP-8 instruction decode and execute engine
// together with the shared display, keypad and timer cells it lends out to
// the frontend and timer loops.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Engine owns the machine state and executes one instruction per Step.
// Only the display, keypad and timers may be touched by other goroutines,
// through the handles returned by their accessors.
type Engine struct {
	logger *log.Logger

	registers [chip8.RegisterCount]uint8
	index     uint16
	pc        uint16
	stack     [chip8.StackDepth]uint16
	sp        int
	memory    [chip8.MemorySize]uint8
	opcode    uint16

	display    *Display
	keypad     *Keypad
	delayTimer *Timer
	soundTimer *Timer

	random func() uint8
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandom replaces the random byte source used by the random instruction.
func WithRandom(random func() uint8) Option {
	return func(e *Engine) {
		e.random = random
	}
}

// New returns an engine with the font loaded at FontStart, the program image
// loaded at ProgramStart and the program counter pointing to it.
func New(logger *log.Logger, font Font, image []byte, options ...Option) (*Engine, error) {
	if len(image) > chip8.MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrImageTooLarge, len(image), chip8.MaxImageSize)
	}

	e := &Engine{
		logger:     logger,
		pc:         chip8.ProgramStart,
		display:    &Display{},
		keypad:     &Keypad{},
		delayTimer: &Timer{},
		soundTimer: &Timer{},
		random: func() uint8 {
			return uint8(rand.UintN(256))
		},
	}
	for _, option := range options {
		option(e)
	}

	copy(e.memory[chip8.FontStart:], font[:])
	copy(e.memory[chip8.ProgramStart:], image)
	return e, nil
}

// Step fetches, decodes and executes a single instruction.
// Unhandled instructions are logged and skipped, machine faults are returned
// as a *Fault wrapping ErrStackOverflow or ErrStackUnderflow.
func (e *Engine) Step() error {
	address := e.pc
	e.opcode = uint16(e.read(address))<<8 | uint16(e.read(address+1))
	e.pc += chip8.OpcodeSize

	if e.tracing() {
		e.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.String("instruction", chip8.Disassemble(e.opcode)))
	}

	err := e.execute()
	e.pc &= chip8.AddressMask

	switch {
	case err == nil:
		return nil

	case errors.Is(err, ErrUnhandledInstruction):
		e.logger.Warn("Unhandled instruction",
			log.Hex("opcode", e.opcode),
			log.Hex("address", address))
		return nil

	default:
		return &Fault{Address: address, Opcode: e.opcode, Err: err}
	}
}

// tracing reports whether executed instructions are logged.
func (e *Engine) tracing() bool {
	return e.logger.Level() <= log.DebugLevel
}

// Display returns the shared display buffer.
func (e *Engine) Display() *Display {
	return e.display
}

// Keypad returns the shared input buffer.
func (e *Engine) Keypad() *Keypad {
	return e.keypad
}

// DelayTimer returns the shared delay timer cell.
func (e *Engine) DelayTimer() *Timer {
	return e.delayTimer
}

// SoundTimer returns the shared sound timer cell.
func (e *Engine) SoundTimer() *Timer {
	return e.soundTimer
}

// Registers returns a copy of the general purpose registers.
func (e *Engine) Registers() [chip8.RegisterCount]uint8 {
	return e.registers
}

// Index returns the index register.
func (e *Engine) Index() uint16 {
	return e.index
}

// ProgramCounter returns the address of the next instruction to fetch,
// always within the 12 bit address space.
func (e *Engine) ProgramCounter() uint16 {
	return e.pc
}

// StackDepth returns the number of occupied stack entries.
func (e *Engine) StackDepth() int {
	return e.sp
}

// Opcode returns the most recently fetched instruction.
func (e *Engine) Opcode() uint16 {
	return e.opcode
}

// Memory returns a copy of count bytes starting at address, wrapping at the
// end of the address space.
func (e *Engine) Memory(address uint16, count int) []byte {
	data := make([]byte, count)
	for i := range data {
		data[i] = e.read(address + uint16(i))
	}
	return data
}

func (e *Engine) read(address uint16) uint8 {
	return e.memory[address&chip8.AddressMask]
}

func (e *Engine) write(address uint16, value uint8) {
	e.memory[address&chip8.AddressMask] = value
}

func (e *Engine) push(value uint16) error {
	if e.sp >= len(e.stack) {
		return ErrStackOverflow
	}
	e.stack[e.sp] = value
	e.sp++
	return nil
}

func (e *Engine) pop() (uint16, error) {
	if e.sp == 0 {
		return 0, ErrStackUnderflow
	}
	e.sp--
	return e.stack[e.sp], nil
}
