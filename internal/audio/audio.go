// Package audio provides the beeper that sounds while the sound timer runs.
package audio

// Tone parameters of a single beep.
const (
	SampleRate    = 44100
	ToneFrequency = 800 // Hz
	ToneDuration  = 50  // milliseconds
	toneVolume    = 0.25
)

// Beeper plays a short tone.
type Beeper interface {
	Beep()
}

// Silent is a beeper that produces no sound.
type Silent struct{}

// Beep does nothing.
func (Silent) Beep() {}

// SquareWave returns the samples of a square wave tone with the given
// frequency and duration in milliseconds at SampleRate.
func SquareWave(frequency, durationMs int) []float32 {
	count := SampleRate * durationMs / 1000
	period := SampleRate / frequency
	half := period / 2

	samples := make([]float32, count)
	for i := range samples {
		if i%period < half {
			samples[i] = toneVolume
		} else {
			samples[i] = -toneVolume
		}
	}
	return samples
}
