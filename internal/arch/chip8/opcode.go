package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Opcode represents a CHIP-8 instruction opcode matched against the retrogolib opcode table.
type Opcode struct {
	op chip8.Opcode
}

// Decode looks up the opcode table entry for a fetched 16-bit instruction word.
// It returns false if no table entry matches the word.
func Decode(word uint16) (Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			if op.Instruction == nil {
				return Opcode{}, false
			}
			return Opcode{op: op}, true
		}
	}
	return Opcode{}, false
}

// Name returns the instruction name.
func (o Opcode) Name() string {
	if o.op.Instruction == nil {
		return ""
	}
	return o.op.Instruction.Name
}
