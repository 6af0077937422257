//go:build tinygo

package irqx

import "runtime/interrupt"

// State is the opaque value returned by Lock and consumed by Unlock.
type State = interrupt.State

// Lock is a critical-section guard. On MCU builds entering the section
// disables interrupts and leaving restores the previous state, so a section
// may be entered from foreground code while an ISR uses the same protocol.
type Lock struct{}

func (l *Lock) Lock() State {
	return interrupt.Disable()
}

func (l *Lock) Unlock(s State) {
	interrupt.Restore(s)
}
