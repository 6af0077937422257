package i2c

import (
	"errors"
	"io"
	"time"

	"i2cmanager-go/x/fmtx"
	"i2cmanager-go/x/irqx"
	"i2cmanager-go/x/mathx"
	"i2cmanager-go/x/timex"
)

const (
	// DefaultClockHz is the initial bus clock before any negotiation.
	DefaultClockHz = 400_000
	// DefaultTimeout bounds one try. A full 32-byte transfer takes about
	// 8 ms at 100 kHz, so this leaves plenty of headroom.
	DefaultTimeout = 100 * time.Millisecond
	// DefaultRetries is the retry budget per request: one automatic
	// re-issue after a transient failure.
	DefaultRetries = 1

	// Probing runs in standard mode for best device compatibility, with a
	// short timeout so absent devices do not stall bring-up.
	probeClockHz = 100_000
	probeTimeout = 1 * time.Millisecond

	maxRetrySetting = 9
)

var errNoExecutionModel = errors.New("i2c: backend implements neither SyncBackend nor AsyncBackend")

// Config carries the tunables of a Manager. The zero value of any field
// selects its default.
type Config struct {
	// ClockHz is the starting bus clock, lowered later by SetClock
	// negotiation. Default 400 kHz.
	ClockHz uint32
	// Timeout bounds each try, not the whole request. Default 100 ms.
	Timeout time.Duration
	// Retries is how many times a transient failure is re-issued before the
	// status becomes terminal. Clamped to single digits. Default 1.
	Retries uint8
	// Log receives line-oriented diagnostics (probe results, clock changes,
	// wiring warnings). Nil discards them.
	Log io.Writer
	// Now supplies a microsecond clock for timeout monitoring. Defaults to
	// timex.NowMicros; tests inject a simulated clock.
	Now func() int64
}

// Manager owns one physical bus: it admits queued requests to the backend
// one at a time, advances the non-blocking state machine, applies the
// timeout and retry policy, and publishes completion statuses. Construct
// exactly one Manager per bus and share it by pointer.
type Manager struct {
	backend Backend
	sync    SyncBackend
	async   AsyncBackend
	lines   LineSenser

	log io.Writer
	now func() int64

	// lock guards the queue, the in-flight pointer and status writes
	// against the interrupt context that may drive AsyncBackend.Service.
	lock irqx.Lock

	begun      bool
	clockHz    uint32
	clockFixed bool
	timeoutUS  int64
	retries    uint8

	head, tail *Request
	current    *Request
	tryStart   int64
}

// New wires a Manager to its backend. The execution model is detected once:
// a backend offering both interfaces is driven asynchronously.
func New(b Backend, cfg Config) (*Manager, error) {
	m := &Manager{
		backend: b,
		log:     cfg.Log,
		now:     cfg.Now,
		clockHz: cfg.ClockHz,
		retries: mathx.Clamp(cfg.Retries, 0, maxRetrySetting),
	}
	if m.now == nil {
		m.now = timex.NowMicros
	}
	if m.clockHz == 0 {
		m.clockHz = DefaultClockHz
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries == 0 {
		m.retries = DefaultRetries
	}
	m.timeoutUS = cfg.Timeout.Microseconds()

	m.async, _ = b.(AsyncBackend)
	if m.async == nil {
		m.sync, _ = b.(SyncBackend)
	}
	if m.async == nil && m.sync == nil {
		return nil, errNoExecutionModel
	}
	m.lines, _ = b.(LineSenser)
	return m, nil
}

// Begin performs one-time bus bring-up: backend init, a stuck-line check,
// and a probe of every 7-bit address at a conservative clock. Idempotent.
func (m *Manager) Begin() error {
	if m.begun {
		return nil
	}
	m.begun = true

	if err := m.backend.Init(); err != nil {
		return err
	}

	if m.lines != nil {
		if m.lines.SDALow() {
			m.logf("warning: possible short-circuit on I2C SDA line")
		}
		if m.lines.SCLLow() {
			m.logf("warning: possible short-circuit on I2C SCL line")
		}
	}

	m.setBackendClock(probeClockHz)
	prevTimeout := m.timeoutUS
	m.timeoutUS = probeTimeout.Microseconds()
	found := false
	for addr := uint8(1); addr < 0x7F; addr++ {
		if m.CheckAddress(addr) == StatusOK {
			found = true
			m.logf("I2C device found at 0x%x", addr)
		}
	}
	if !found {
		m.logf("no I2C devices found")
	}
	m.setBackendClock(m.clockHz)
	m.timeoutUS = prevTimeout
	return nil
}

// SetClock lowers the bus clock to hz if that is slower than the current
// speed and no caller has forced a fixed speed. The shared bus always runs
// at the slowest speed any caller asked for.
func (m *Manager) SetClock(hz uint32) {
	if hz < m.clockHz && !m.clockFixed {
		m.clockHz = hz
		m.logf("I2C clock speed set to %d Hz", hz)
	}
	m.setBackendClock(m.clockHz)
}

// ForceClock unconditionally sets and locks the bus clock, overriding any
// later SetClock negotiation.
func (m *Manager) ForceClock(hz uint32) {
	m.clockHz = hz
	m.clockFixed = true
	m.setBackendClock(hz)
	m.logf("I2C clock speed forced to %d Hz", hz)
}

// ClockHz returns the effective bus clock.
func (m *Manager) ClockHz() uint32 { return m.clockHz }

// SetTimeout changes the per-try timeout.
func (m *Manager) SetTimeout(d time.Duration) {
	m.timeoutUS = mathx.Max(d.Microseconds(), 1)
}

// Timeout returns the per-try timeout.
func (m *Manager) Timeout() time.Duration {
	return time.Duration(m.timeoutUS) * time.Microsecond
}

// QueueRequest submits rb. The block must carry a populated operation and
// must not already be queued. Completion is observed through rb's status;
// with a blocking backend all queued work is executed before returning.
func (m *Manager) QueueRequest(rb *Request) {
	rb.mgr = m
	rb.next = nil
	rb.tries = 0
	rb.nRead = 0
	rb.status = StatusPending

	s := m.lock.Lock()
	if m.tail == nil {
		m.head = rb
	} else {
		m.tail.next = rb
	}
	m.tail = rb
	if m.async != nil {
		if m.current == nil {
			m.admit()
		}
		m.lock.Unlock(s)
		return
	}
	m.lock.Unlock(s)

	m.drainSync()
}

// Loop advances pending work. Call it repeatedly from the foreground when
// the backend is asynchronous: it drives polled state machines, collects
// finished tries, enforces the per-try timeout and admits the next request.
// With a blocking backend there is never anything left to do here.
func (m *Manager) Loop() {
	if m.async == nil {
		return
	}
	s := m.lock.Lock()
	rb := m.current
	if rb == nil {
		m.lock.Unlock(s)
		return
	}
	if !m.async.Idle() {
		m.async.Service()
	}
	if m.async.Idle() {
		m.finishTry(rb, m.async.Result())
	} else if m.now()-m.tryStart >= m.timeoutUS {
		m.async.Abort()
		m.finishTry(rb, StatusTimeout)
	}
	m.lock.Unlock(s)
}

// admit starts the head request on an idle bus. Caller holds the lock.
func (m *Manager) admit() {
	rb := m.head
	m.current = rb
	m.tryStart = m.now()
	m.async.Start(rb)
}

// finishTry applies the retry policy to a completed try: transient failures
// are re-issued while the budget lasts, everything else is terminal. Caller
// holds the lock.
func (m *Manager) finishTry(rb *Request, st Status) {
	if retryable(st) && !rb.noRetry() && rb.tries < m.retries {
		rb.tries++
		m.tryStart = m.now()
		m.async.Start(rb)
		return
	}
	m.complete(rb, st)
	if m.head != nil {
		m.admit()
	}
}

// complete unlinks the head request and publishes its terminal status.
// Caller holds the lock. The status write is the last touch: once a caller
// observes a non-Pending status the block is entirely theirs again.
func (m *Manager) complete(rb *Request, st Status) {
	m.head = rb.next
	if m.head == nil {
		m.tail = nil
	}
	rb.next = nil
	m.current = nil
	rb.status = st
}

// drainSync executes every queued request to completion through the
// blocking backend, retries included.
func (m *Manager) drainSync() {
	for {
		s := m.lock.Lock()
		rb := m.head
		m.lock.Unlock(s)
		if rb == nil {
			return
		}

		st := m.sync.Execute(rb)
		for retryable(st) && !rb.noRetry() && rb.tries < m.retries {
			rb.tries++
			st = m.sync.Execute(rb)
		}

		s = m.lock.Lock()
		m.head = rb.next
		if m.head == nil {
			m.tail = nil
		}
		rb.next = nil
		rb.status = st
		m.lock.Unlock(s)
	}
}

func (m *Manager) setBackendClock(hz uint32) {
	if err := m.backend.SetClock(hz); err != nil {
		m.logf("I2C clock change to %d Hz failed: %s", hz, err.Error())
	}
}

func (m *Manager) logf(format string, a ...any) {
	if m.log == nil {
		return
	}
	fmtx.Fprintf(m.log, format+"\n", a...)
}
