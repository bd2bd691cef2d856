// Package writer implements the program listing output.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// Options of the writer.
type Options struct {
	OffsetComments bool // prefix every comment with the instruction address
	HexComments    bool // add the raw instruction bytes as comment
}

// Writer writes a listing of a program image, one instruction per line.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write writes the listing of a program image that is loaded at the program
// start address. Every aligned word is formatted as an instruction, a trailing
// odd byte is written as data.
func (w Writer) Write(image []byte) error {
	i := 0
	for ; i+1 < len(image); i += chip8.OpcodeSize {
		opcode := uint16(image[i])<<8 | uint16(image[i+1])
		if err := w.writeLine(chip8.Disassemble(opcode), i, image[i:i+chip8.OpcodeSize]); err != nil {
			return err
		}
	}

	if i < len(image) {
		line := fmt.Sprintf(".byte $%02X", image[i])
		if err := w.writeLine(line, i, image[i:]); err != nil {
			return err
		}
	}
	return nil
}

func (w Writer) writeLine(line string, index int, data []byte) error {
	comment := w.comment(chip8.ProgramStart+index, data)

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "  %s\n", line)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w Writer) comment(address int, data []byte) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", address))
	}
	if w.options.HexComments {
		var hex strings.Builder
		for i, b := range data {
			if i > 0 {
				hex.WriteByte(' ')
			}
			fmt.Fprintf(&hex, "%02X", b)
		}
		parts = append(parts, hex.String())
	}
	return strings.Join(parts, "  ")
}
