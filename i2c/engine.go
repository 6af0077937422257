package i2c

// Port is the low-level contract a platform implements to get the
// non-blocking engine: one bus primitive per call, never blocking. Each
// operation reports OK on completion, Pending when the bus made no progress
// this tick (a stretched clock), or an error status. A NAK at any byte is
// reported as NegativeAcknowledge; the engine reclassifies it by phase.
type Port interface {
	Init() error
	SetClock(hz uint32) error

	// Start asserts a start condition, Restart a repeated start.
	Start() Status
	Restart() Status
	// Stop releases the bus. It must always succeed.
	Stop()
	// WriteByte shifts one byte out and samples the acknowledge bit.
	WriteByte(b byte) Status
	// ReadByte shifts one byte in, acknowledging unless last is set.
	ReadByte(last bool) (byte, Status)
}

type enginePhase uint8

const (
	phaseIdle enginePhase = iota
	phaseStart
	phaseAddrWrite
	phaseWrite
	phaseRestart
	phaseAddrRead
	phaseRead
	phaseStop
)

// Engine drives a Port through the transaction state machine
// Idle -> Start -> Address -> (WriteBytes|ReadBytes) -> Stop -> Idle,
// advancing exactly one primitive per Service call. Errors transition to
// Stop with the per-try status recorded. It implements AsyncBackend.
type Engine struct {
	port  Port
	lines LineSenser // optional view of the port

	rb     *Request
	phase  enginePhase
	wi, ri int
	result Status
}

func NewEngine(p Port) *Engine {
	e := &Engine{port: p, result: StatusOK}
	e.lines, _ = p.(LineSenser)
	return e
}

func (e *Engine) Init() error              { return e.port.Init() }
func (e *Engine) SetClock(hz uint32) error { return e.port.SetClock(hz) }
func (e *Engine) Idle() bool               { return e.phase == phaseIdle }
func (e *Engine) Result() Status           { return e.result }

func (e *Engine) Start(rb *Request) {
	e.rb = rb
	e.wi, e.ri = 0, 0
	e.result = StatusPending
	e.phase = phaseStart
}

func (e *Engine) Abort() {
	if e.phase == phaseIdle {
		return
	}
	e.port.Stop()
	e.rb.SetBytesRead(e.ri)
	e.result = StatusTimeout
	e.phase = phaseIdle
}

// Service advances the state machine one bus-level step. Safe to call when
// idle or when the port reports no progress.
func (e *Engine) Service() {
	rb := e.rb
	if rb == nil {
		return
	}
	switch e.phase {
	case phaseIdle:
		return

	case phaseStart:
		if st := e.port.Start(); st == StatusOK {
			if rb.HasWrite() {
				e.phase = phaseAddrWrite
			} else {
				e.phase = phaseAddrRead
			}
		} else if st != StatusPending {
			e.finish(st)
		}

	case phaseAddrWrite:
		switch st := e.port.WriteByte(rb.addr << 1); st {
		case StatusOK:
			switch {
			case e.wi < len(rb.wbuf):
				e.phase = phaseWrite
			case rb.HasRead():
				e.phase = phaseRestart
			default:
				e.finish(StatusOK)
			}
		case StatusPending:
		default:
			e.finish(st)
		}

	case phaseWrite:
		switch st := e.port.WriteByte(rb.wbuf[e.wi]); st {
		case StatusOK:
			e.wi++
			if e.wi == len(rb.wbuf) {
				if rb.HasRead() {
					e.phase = phaseRestart
				} else {
					e.finish(StatusOK)
				}
			}
		case StatusPending:
		case StatusNegativeAcknowledge:
			// Device rejected a data byte.
			e.finish(StatusTransmitError)
		default:
			e.finish(st)
		}

	case phaseRestart:
		if st := e.port.Restart(); st == StatusOK {
			e.phase = phaseAddrRead
		} else if st != StatusPending {
			e.finish(st)
		}

	case phaseAddrRead:
		switch st := e.port.WriteByte(rb.addr<<1 | 1); st {
		case StatusOK:
			if len(rb.rbuf) > 0 {
				e.phase = phaseRead
			} else {
				e.finish(StatusOK)
			}
		case StatusPending:
		default:
			e.finish(st)
		}

	case phaseRead:
		last := e.ri == len(rb.rbuf)-1
		b, st := e.port.ReadByte(last)
		switch st {
		case StatusOK:
			rb.rbuf[e.ri] = b
			e.ri++
			if e.ri == len(rb.rbuf) {
				e.finish(StatusOK)
			}
		case StatusPending:
		case StatusTruncated:
			// Device ran out of data early.
			e.finish(StatusTruncated)
		default:
			e.finish(st)
		}

	case phaseStop:
		e.port.Stop()
		rb.SetBytesRead(e.ri)
		e.phase = phaseIdle
	}
}

// finish records the per-try status and schedules the stop condition; the
// engine reports idle only after the stop step has run.
func (e *Engine) finish(st Status) {
	e.result = st
	e.phase = phaseStop
}

// SDALow and SCLLow delegate to the port when it can sense line levels.
func (e *Engine) SDALow() bool { return e.lines != nil && e.lines.SDALow() }
func (e *Engine) SCLLow() bool { return e.lines != nil && e.lines.SCLLow() }
