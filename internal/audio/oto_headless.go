//go:build headless

package audio

// NewOtoBeeper returns a silent beeper, headless builds have no audio device.
func NewOtoBeeper() (Beeper, error) {
	return Silent{}, nil
}
