// Package timer runs the 60 Hz countdown of the delay and sound timers.
package timer

import (
	"context"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrogolib/log"
)

// Rate is the countdown frequency of both timers in Hz.
const Rate = 60

// Tick decrements both timers once. The beeper is triggered while the sound
// timer was non-zero. Each timer is locked separately.
func Tick(delay, sound *engine.Timer, beeper audio.Beeper) {
	delay.Tick()
	if sound.Tick() {
		beeper.Beep()
	}
}

// Run ticks the timers at Rate until the context is cancelled.
func Run(ctx context.Context, logger *log.Logger, delay, sound *engine.Timer, beeper audio.Beeper) error {
	ticker := time.NewTicker(time.Second / Rate)
	defer ticker.Stop()

	logger.Debug("Timer loop started", log.Int("rate", Rate))

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Timer loop stopped")
			return nil
		case <-ticker.C:
			Tick(delay, sound, beeper)
		}
	}
}
