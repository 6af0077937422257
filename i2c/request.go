package i2c

// Operation bits. The low bits select the transaction shape; the no-retry
// bit is independent so probes can fail fast without changing the shape.
const (
	opSend    uint8 = 0x01
	opRead    uint8 = 0x02
	opRequest uint8 = opSend | opRead
	opNoRetry uint8 = 0x80
)

// Request describes one I2C operation. The caller owns the block and both
// buffers; the manager never allocates or frees a Request. While queued, the
// block is linked into exactly one manager's FIFO through the intrusive next
// pointer. A block must not be resubmitted while its status is Pending, and
// Wait/IsBusy must not be called on the same block from two execution
// contexts.
type Request struct {
	mgr  *Manager
	next *Request

	wbuf []byte
	rbuf []byte

	nRead int

	addr   uint8
	op     uint8
	tries  uint8
	status Status
}

// SetWriteParams re-initializes the block as a plain write of wbuf to addr.
// Previous contents, including the no-retry bit, are discarded. A nil or
// empty wbuf produces an address-only transaction (device probe).
func (rb *Request) SetWriteParams(addr uint8, wbuf []byte) {
	*rb = Request{addr: addr & 0x7F, wbuf: wbuf, op: opSend, status: StatusOK}
}

// SetReadParams re-initializes the block as a read of len(rbuf) bytes.
func (rb *Request) SetReadParams(addr uint8, rbuf []byte) {
	*rb = Request{addr: addr & 0x7F, rbuf: rbuf, op: opRead, status: StatusOK}
}

// SetRequestParams re-initializes the block as a write of wbuf followed by a
// repeated-start read into rbuf.
func (rb *Request) SetRequestParams(addr uint8, rbuf, wbuf []byte) {
	*rb = Request{addr: addr & 0x7F, wbuf: wbuf, rbuf: rbuf, op: opRequest, status: StatusOK}
}

// SuppressRetries toggles the no-retry bit without disturbing other fields.
func (rb *Request) SuppressRetries(suppress bool) {
	if suppress {
		rb.op |= opNoRetry
	} else {
		rb.op &^= opNoRetry
	}
}

// Addr returns the 7-bit target address.
func (rb *Request) Addr() uint8 { return rb.addr }

// WriteBuffer returns the caller's outbound bytes. Read-only to backends.
func (rb *Request) WriteBuffer() []byte { return rb.wbuf }

// ReadBuffer returns the caller's inbound destination.
func (rb *Request) ReadBuffer() []byte { return rb.rbuf }

// HasWrite reports whether the transaction has a write phase. Note that an
// address-only probe is a write with an empty buffer.
func (rb *Request) HasWrite() bool { return rb.op&opSend != 0 }

// HasRead reports whether the transaction has a read phase.
func (rb *Request) HasRead() bool { return rb.op&opRead != 0 }

// Status returns the current status. Pending means the request has been
// submitted and has not reached a terminal state yet.
func (rb *Request) Status() Status { return rb.status }

// BytesRead returns how many bytes actually landed in the read buffer. It is
// less than len(ReadBuffer()) exactly when the status is Truncated.
func (rb *Request) BytesRead() int { return rb.nRead }

// SetBytesRead records a partial transfer. It is intended for backends.
func (rb *Request) SetBytesRead(n int) { rb.nRead = n }

// IsBusy reports whether the request is still in progress. While pending it
// drives the owning manager's scheduler one tick so polled backends make
// progress. Calling it after completion changes nothing.
func (rb *Request) IsBusy() bool {
	if rb.status != StatusPending {
		return false
	}
	if rb.mgr != nil {
		rb.mgr.Loop()
	}
	return true
}

// Wait spins, driving the owning manager's scheduler, until the status
// leaves Pending, then returns it. Foreground context only: waiting inside
// an interrupt handler would starve the state machine the wait depends on.
func (rb *Request) Wait() Status {
	for rb.status == StatusPending {
		rb.mgr.Loop()
	}
	return rb.status
}

func (rb *Request) noRetry() bool { return rb.op&opNoRetry != 0 }
