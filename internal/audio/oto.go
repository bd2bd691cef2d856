//go:build !headless

package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoBeeper plays a fixed square wave tone through the system audio device.
type OtoBeeper struct {
	ctx  *oto.Context
	tone []byte

	mu     sync.Mutex
	player *oto.Player
}

// NewOtoBeeper opens the audio device and renders the beep tone.
func NewOtoBeeper() (Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	return &OtoBeeper{
		ctx:  ctx,
		tone: encodeFloat32LE(SquareWave(ToneFrequency, ToneDuration)),
	}, nil
}

// Beep starts the tone unless the previous one is still playing.
func (b *OtoBeeper) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player != nil {
		if b.player.IsPlaying() {
			return
		}
		_ = b.player.Close()
	}

	b.player = b.ctx.NewPlayer(bytes.NewReader(b.tone))
	b.player.Play()
}

func encodeFloat32LE(samples []float32) []byte {
	buf := make([]byte, 0, len(samples)*4)
	for _, sample := range samples {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(sample))
	}
	return buf
}
