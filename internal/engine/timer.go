package engine

import "sync"

// Timer is an 8-bit countdown cell written by the engine and decremented by
// the timer loop.
type Timer struct {
	mu    sync.Mutex
	value uint8
}

// Set stores a new countdown value.
func (t *Timer) Set(value uint8) {
	t.mu.Lock()
	t.value = value
	t.mu.Unlock()
}

// Value returns the current countdown value.
func (t *Timer) Value() uint8 {
	t.mu.Lock()
	value := t.value
	t.mu.Unlock()
	return value
}

// Tick decrements a non-zero timer and reports whether it was non-zero.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.value == 0 {
		return false
	}
	t.value--
	return true
}
