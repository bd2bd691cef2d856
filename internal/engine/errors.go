package engine

import (
	"errors"
	"fmt"
)

// Machine fault conditions.
var (
	// ErrStackOverflow is returned when a call is executed with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrImageTooLarge is returned when a program image does not fit behind the program start.
	ErrImageTooLarge = errors.New("program image too large")
	// ErrUnhandledInstruction marks an instruction that matches no defined semantics.
	// It is reported but never halts the engine.
	ErrUnhandledInstruction = errors.New("unhandled instruction")
)

// Fault describes a fatal machine condition together with the instruction that raised it.
type Fault struct {
	Address uint16 // address of the faulting instruction
	Opcode  uint16
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("opcode $%04X at $%03X: %s", f.Opcode, f.Address, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
