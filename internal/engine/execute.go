package engine

import (
	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// instruction holds the fields of a decoded instruction word.
//
//	[ group | x | y | n ]  4 bits each
//	kk  = low byte
//	nnn = low 12 bits
type instruction struct {
	group uint8
	x     uint8
	y     uint8
	n     uint8
	kk    uint8
	nnn   uint16
}

func decode(opcode uint16) instruction {
	return instruction{
		group: uint8(opcode >> 12),
		x:     uint8(opcode>>8) & 0x0F,
		y:     uint8(opcode>>4) & 0x0F,
		n:     uint8(opcode) & 0x0F,
		kk:    uint8(opcode),
		nnn:   opcode & 0x0FFF,
	}
}

func (e *Engine) execute() error {
	ins := decode(e.opcode)

	switch ins.group {
	case 0x0:
		return e.executeSystem(ins)

	// 1nnn  JP addr
	case 0x1:
		e.pc = ins.nnn

	// 2nnn  CALL addr
	case 0x2:
		if err := e.push(e.pc); err != nil {
			return err
		}
		e.pc = ins.nnn

	// 3xkk  SE Vx, byte
	case 0x3:
		e.skipIf(e.registers[ins.x] == ins.kk)

	// 4xkk  SNE Vx, byte
	case 0x4:
		e.skipIf(e.registers[ins.x] != ins.kk)

	// 5xy0  SE Vx, Vy
	case 0x5:
		e.skipIf(e.registers[ins.x] == e.registers[ins.y])

	// 6xkk  LD Vx, byte
	case 0x6:
		e.registers[ins.x] = ins.kk

	// 7xkk  ADD Vx, byte
	case 0x7:
		e.registers[ins.x] += ins.kk

	case 0x8:
		return e.executeALU(ins)

	// 9xy0  SNE Vx, Vy
	case 0x9:
		e.skipIf(e.registers[ins.x] != e.registers[ins.y])

	// Annn  LD I, addr
	case 0xA:
		e.index = ins.nnn

	// Bnnn  JP V0, addr
	case 0xB:
		e.pc = ins.nnn + uint16(e.registers[0])

	// Cxkk  RND Vx, byte
	case 0xC:
		e.registers[ins.x] = e.random() & ins.kk

	// Dxyn  DRW Vx, Vy, nibble
	case 0xD:
		e.draw(ins)

	case 0xE:
		return e.executeKey(ins)

	case 0xF:
		return e.executeMisc(ins)
	}
	return nil
}

// 00E0  CLS
// 00EE  RET
func (e *Engine) executeSystem(ins instruction) error {
	switch ins.nnn {
	case 0x0E0:
		e.display.Clear()

	case 0x0EE:
		address, err := e.pop()
		if err != nil {
			return err
		}
		e.pc = address

	default:
		return ErrUnhandledInstruction
	}
	return nil
}

// executeALU runs the register to register group. Both operands are captured
// before any register is written, the result is stored before the flag so
// that VF holds the flag when it is also the destination.
//
// 8xy0  LD Vx, Vy
// 8xy1  OR Vx, Vy
// 8xy2  AND Vx, Vy
// 8xy3  XOR Vx, Vy
// 8xy4  ADD Vx, Vy   VF = carry
// 8xy5  SUB Vx, Vy   VF = not borrow
// 8xy6  SHR Vx       VF = lsb before shift
// 8xy7  SUBN Vx, Vy  VF = not borrow
// 8xyE  SHL Vx       VF = msb before shift
func (e *Engine) executeALU(ins instruction) error {
	vx := e.registers[ins.x]
	vy := e.registers[ins.y]

	var result, flag uint8

	switch ins.n {
	case 0x0:
		e.registers[ins.x] = vy
		return nil
	case 0x1:
		e.registers[ins.x] = vx | vy
		return nil
	case 0x2:
		e.registers[ins.x] = vx & vy
		return nil
	case 0x3:
		e.registers[ins.x] = vx ^ vy
		return nil

	case 0x4:
		sum := uint16(vx) + uint16(vy)
		result = uint8(sum)
		flag = boolToFlag(sum > 0xFF)

	case 0x5:
		result = vx - vy
		flag = boolToFlag(vx >= vy)

	case 0x6:
		result = vx >> 1
		flag = vx & 0x01

	case 0x7:
		result = vy - vx
		flag = boolToFlag(vy >= vx)

	case 0xE:
		result = vx << 1
		flag = vx >> 7

	default:
		return ErrUnhandledInstruction
	}

	e.registers[ins.x] = result
	e.registers[chip8.FlagRegister] = flag
	return nil
}

// draw composites an n byte sprite read from memory at I. VF is cleared
// before drawing and set to 1 on collision.
func (e *Engine) draw(ins instruction) {
	sprite := e.Memory(e.index, int(ins.n))

	e.registers[chip8.FlagRegister] = 0
	if e.display.Draw(e.registers[ins.x], e.registers[ins.y], sprite) {
		e.registers[chip8.FlagRegister] = 1
	}
}

// Ex9E  SKP Vx
// ExA1  SKNP Vx
func (e *Engine) executeKey(ins instruction) error {
	switch ins.kk {
	case 0x9E:
		e.skipIf(e.keypad.IsPressed(e.registers[ins.x]))
	case 0xA1:
		e.skipIf(!e.keypad.IsPressed(e.registers[ins.x]))
	default:
		return ErrUnhandledInstruction
	}
	return nil
}

// Fx07  LD Vx, DT
// Fx0A  LD Vx, K
// Fx15  LD DT, Vx
// Fx18  LD ST, Vx
// Fx1E  ADD I, Vx
// Fx29  LD F, Vx
// Fx33  LD B, Vx
// Fx55  LD [I], Vx
// Fx65  LD Vx, [I]
func (e *Engine) executeMisc(ins instruction) error {
	vx := e.registers[ins.x]

	switch ins.kk {
	case 0x07:
		e.registers[ins.x] = e.delayTimer.Value()

	case 0x0A:
		// No key held: rewind so the instruction is polled again next cycle.
		if key, ok := e.keypad.FirstPressed(); ok {
			e.registers[ins.x] = key
		} else {
			e.pc -= chip8.OpcodeSize
		}

	case 0x15:
		e.delayTimer.Set(vx)

	case 0x18:
		e.soundTimer.Set(vx)

	case 0x1E:
		e.index += uint16(vx)

	case 0x29:
		e.index = chip8.FontStart + chip8.FontGlyphSize*uint16(vx&0x0F)

	case 0x33:
		e.write(e.index, vx/100)
		e.write(e.index+1, vx/10%10)
		e.write(e.index+2, vx%10)

	case 0x55:
		for i := uint16(0); i <= uint16(ins.x); i++ {
			e.write(e.index+i, e.registers[i])
		}

	case 0x65:
		for i := uint16(0); i <= uint16(ins.x); i++ {
			e.registers[i] = e.read(e.index + i)
		}

	default:
		return ErrUnhandledInstruction
	}
	return nil
}

func (e *Engine) skipIf(condition bool) {
	if condition {
		e.pc += chip8.OpcodeSize
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
