// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/engine"
)

// ErrEmptyImage is returned for program files without any content.
var ErrEmptyImage = errors.New("empty program image")

// Loader handles loading program image files from disk.
type Loader struct{}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 program image. Images have no header, the whole
// file is loaded to the program start address. Images that do not fit into
// memory are rejected instead of being truncated.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// Read one byte past the limit to detect oversized images without
	// reading arbitrarily large files.
	image, err := io.ReadAll(io.LimitReader(file, chip8.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	switch {
	case len(image) == 0:
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, path)
	case len(image) > chip8.MaxImageSize:
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", engine.ErrImageTooLarge, path, chip8.MaxImageSize)
	}
	return image, nil
}
