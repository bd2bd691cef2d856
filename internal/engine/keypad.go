package engine

import (
	"sync"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
)

// Keypad is the input buffer of the 16 logical keys, shared between the engine
// and the input loop of a frontend. Key indexes are masked to 4 bits.
type Keypad struct {
	mu   sync.Mutex
	keys [chip8.KeyCount]uint8
}

// Press marks the key as held down.
func (k *Keypad) Press(key uint8) {
	k.set(key, 1)
}

// Release marks the key as up.
func (k *Keypad) Release(key uint8) {
	k.set(key, 0)
}

func (k *Keypad) set(key, state uint8) {
	k.mu.Lock()
	k.keys[key&0x0F] = state
	k.mu.Unlock()
}

// IsPressed reports whether the key is held down.
func (k *Keypad) IsPressed(key uint8) bool {
	k.mu.Lock()
	pressed := k.keys[key&0x0F] == 1
	k.mu.Unlock()
	return pressed
}

// FirstPressed returns the lowest indexed key that is held down.
func (k *Keypad) FirstPressed() (uint8, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i, state := range k.keys {
		if state == 1 {
			return uint8(i), true
		}
	}
	return 0, false
}

// Snapshot returns a copy of all key states.
func (k *Keypad) Snapshot() [chip8.KeyCount]uint8 {
	k.mu.Lock()
	keys := k.keys
	k.mu.Unlock()
	return keys
}
