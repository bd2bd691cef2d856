package writer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestWrite(t *testing.T) {
	image := []byte{0x60, 0x42, 0x12, 0x00, 0xAB}

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, New(&buf, Options{}).Write(image))

		expected := "  ld V0, $42\n" +
			"  jp $200\n" +
			"  .byte $AB\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("with comments", func(t *testing.T) {
		var buf bytes.Buffer
		options := Options{OffsetComments: true, HexComments: true}
		assert.NoError(t, New(&buf, options).Write(image))

		expected := fmt.Sprintf("  %-30s ; %s\n", "ld V0, $42", "$0200  60 42") +
			fmt.Sprintf("  %-30s ; %s\n", "jp $200", "$0202  12 00") +
			fmt.Sprintf("  %-30s ; %s\n", ".byte $AB", "$0204  AB")
		assert.Equal(t, expected, buf.String())
	})

	t.Run("offset comments only", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, New(&buf, Options{OffsetComments: true}).Write([]byte{0x00, 0xE0}))
		assert.Equal(t, fmt.Sprintf("  %-30s ; $0200\n", "cls"), buf.String())
	})
}
