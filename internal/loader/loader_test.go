package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load CHIP8 file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, image)
	})

	t.Run("load image of maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxImageSize))

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, image, chip8.MaxImageSize)
	})

	t.Run("reject oversized image", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxImageSize+1))

		_, err := New().Load(tmpFile)
		assert.ErrorIs(t, err, engine.ErrImageTooLarge)
	})

	t.Run("reject empty image", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := New().Load(tmpFile)
		assert.ErrorIs(t, err, ErrEmptyImage)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "missing.ch8"))
		assert.ErrorContains(t, err, "opening file")
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.ch8")
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
