//go:build !tinygo

package irqx

import "sync"

// State is the opaque value returned by Lock and consumed by Unlock.
type State uintptr

// Lock is a critical-section guard. On host builds it is a plain mutex so
// tests can drive the "interrupt" side from another goroutine; on MCU builds
// it disables interrupts for the duration of the section.
type Lock struct {
	mu sync.Mutex
}

func (l *Lock) Lock() State {
	l.mu.Lock()
	return 0
}

func (l *Lock) Unlock(State) {
	l.mu.Unlock()
}
