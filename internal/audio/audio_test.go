package audio

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWave(t *testing.T) {
	samples := SquareWave(ToneFrequency, ToneDuration)
	assert.Len(t, samples, SampleRate*ToneDuration/1000)

	period := SampleRate / ToneFrequency
	assert.Equal(t, float32(toneVolume), samples[0])
	assert.Equal(t, float32(toneVolume), samples[period/2-1])
	assert.Equal(t, float32(-toneVolume), samples[period/2])
	assert.Equal(t, float32(toneVolume), samples[period])
}

func TestSilent(t *testing.T) {
	var beeper Beeper = Silent{}
	assert.NotPanics(t, beeper.Beep)
}
