//go:build !headless

package audio

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestEncodeFloat32LE(t *testing.T) {
	buf := encodeFloat32LE([]float32{1.0, -0.5})
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F, 0x00, 0x00, 0x00, 0xBF}, buf)
}
