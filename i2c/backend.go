package i2c

// Backend is the platform-supplied half of the manager: it drives the
// physical bus lines. Every backend provides bring-up and clock control, and
// exactly one of the two execution models below.
type Backend interface {
	// Init performs one-time hardware bring-up. Called from Begin.
	Init() error
	// SetClock changes the bus clock. The manager calls this with the
	// negotiated speed, and temporarily during address probing.
	SetClock(hz uint32) error
}

// SyncBackend executes a whole try and blocks the caller until the hardware
// has finished. Typical for vendor drivers with their own internal timeout
// (the Wire-style fallback).
type SyncBackend interface {
	Backend
	// Execute runs one try of rb and returns its status. On success the
	// backend records the transfer length via rb.SetBytesRead.
	Execute(rb *Request) Status
}

// AsyncBackend executes a try as a state machine advanced by repeated
// Service calls, from an interrupt handler, the scheduler loop, or both.
type AsyncBackend interface {
	Backend
	// Start begins a try of rb. Only called when Idle reports true.
	Start(rb *Request)
	// Service advances the state machine by at most one bus-level step and
	// returns without blocking. It must be a no-op when there is no step
	// pending, so the scheduler may call it redundantly alongside an ISR.
	Service()
	// Idle reports whether the bus has returned to rest since Start.
	Idle() bool
	// Result returns the status of the last try. Valid only while Idle.
	Result() Status
	// Abort forces an in-flight try off the bus and back to idle. Used by
	// the scheduler's timeout handling.
	Abort()
}

// LineSenser is optionally implemented by backends that can read the raw
// line levels. Begin uses it to warn about stuck-low (short-circuit) wiring;
// both lines float high on a healthy idle bus.
type LineSenser interface {
	SDALow() bool
	SCLLow() bool
}
