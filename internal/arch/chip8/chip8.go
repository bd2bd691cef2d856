// Package chip8 provides the CHIP-8 machine layout and an instruction formatter
// backed by the retrogolib CHIP-8 opcode table.
package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Unused interpreter area
//	0x050-0x09F: Built-in font, 16 glyphs of 5 bytes
//	0x0A0-0x1FF: Unused interpreter area
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer (64x32 pixels) and stack are maintained separately from
// the 4KB main memory address space.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// AddressMask masks any computed address into the 4KB address space.
	AddressMask = MemorySize - 1

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	// Program images are stored starting at offset 0x0 in ROM files.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// MaxImageSize is the largest program image that fits behind ProgramStart.
	MaxImageSize = MemorySize - ProgramStart

	// FontStart is the address of the first built-in font glyph.
	FontStart = 0x50

	// FontGlyphSize is the number of bytes per font glyph.
	FontGlyphSize = 5

	// FontSize is the size of the complete built-in font table.
	FontSize = 16 * FontGlyphSize
)

// Register file, stack, display and keypad dimensions.
const (
	RegisterCount = 16
	FlagRegister  = 0xF
	StackDepth    = 16
	KeyCount      = 16

	ScreenWidth  = 64
	ScreenHeight = 32

	// SpriteWidth is the fixed width of a sprite row in pixels.
	SpriteWidth = 8

	// OpcodeSize is the size of CHIP-8 instructions in bytes.
	OpcodeSize = 2
)

// Disassemble returns the assembly representation of the given opcode,
// for example "ld V1, $FF". Unknown opcodes are returned as a data word.
// 5xyN and 9xyN execute as 5xy0 and 9xy0 and are shown as such.
func Disassemble(opcode uint16) string {
	op, ok := Decode(opcode)
	if !ok && isRegisterCompare(opcode) {
		op, ok = Decode(opcode &^ 0x000F)
	}
	if !ok {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	name := op.Name()
	if params := formatInstruction(name, opcode); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

func isRegisterCompare(opcode uint16) bool {
	group := opcode & 0xF000
	return group == 0x5000 || group == 0x9000
}

// formatInstruction formats a CHIP-8 instruction with its parameters.
// Returns the formatted parameter string for the given instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return "" // No parameters
	case chip8.JpName:
		return formatJumpInstruction(opcode)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.SeName, chip8.SneName:
		return formatCompareInstruction(opcode)
	case chip8.LdName:
		return formatLoadInstruction(opcode)
	case chip8.AddName:
		return formatAddInstruction(opcode)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return formatBinaryInstruction(opcode)
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", extractRegisterX(opcode))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", extractRegisterX(opcode), opcode&0x00FF)
	case chip8.DrwName:
		return formatDrawInstruction(opcode)
	}
	return ""
}

// formatJumpInstruction formats jump instructions (JP addr, JP V0+addr).
func formatJumpInstruction(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompareInstruction formats comparison instructions (SE, SNE).
func formatCompareInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	}
	return ""
}

// formatLoadInstruction formats the load family, which covers registers,
// the index register, both timers, the keypad and the memory block forms.
func formatLoadInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		return formatLoadSpecial(x, opcode&0x00FF)
	}
	return ""
}

func formatLoadSpecial(x, kind uint16) string {
	switch kind {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAddInstruction formats add instructions (ADD Vx, byte/Vy and ADD I, Vx).
func formatAddInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// formatBinaryInstruction formats binary operation instructions (OR, AND, XOR, SUB, SUBN).
func formatBinaryInstruction(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X", extractRegisterX(opcode), extractRegisterY(opcode))
}

// formatDrawInstruction formats draw instructions (DRW).
func formatDrawInstruction(opcode uint16) string {
	n := opcode & 0x000F
	return fmt.Sprintf("V%X, V%X, $%X", extractRegisterX(opcode), extractRegisterY(opcode), n)
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
