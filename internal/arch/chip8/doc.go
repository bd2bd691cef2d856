// Package chip8 describes the CHIP-8 machine that the engine emulates.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x1FF: Interpreter area, the built-in font lives at FontStart
//   - ProgramStart-MaxAddress: User program and data area
//
// # Instruction Set
//
// CHIP-8 has a simple instruction set with 35 opcodes:
//   - All instructions are 2 bytes (16 bits), stored big-endian
//   - Instructions use direct addressing with 12-bit addresses
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - Special-purpose registers: I (16-bit), PC, SP
//
// # Instruction Formatting
//
// Decode matches an instruction word against the retrogolib opcode table and
// Disassemble renders it in assembly form. The engine uses both for its
// instruction trace and for reporting unhandled instructions:
//
//	chip8.Disassemble(0x6AFF) // ld VA, $FF
//	chip8.Disassemble(0xD125) // drw V1, V2, $5
package chip8
