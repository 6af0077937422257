package i2c

// Synchronous convenience operations. Each builds a transient request block,
// queues it, and spins until completion. Foreground context only.

// CheckAddress tests whether a device responds at addr using a zero-payload
// write. Retries are suppressed: a device that does not answer the first
// time is out of the running, which keeps full-bus scans fast.
func (m *Manager) CheckAddress(addr uint8) Status {
	var rb Request
	rb.SetWriteParams(addr, nil)
	rb.SuppressRetries(true)
	m.QueueRequest(&rb)
	return rb.Wait()
}

// Write transmits data to addr and returns the completion status. The
// variadic form covers both literal byte lists and existing buffers
// (pass buf...).
func (m *Manager) Write(addr uint8, data ...byte) Status {
	var rb Request
	rb.SetWriteParams(addr, data)
	m.QueueRequest(&rb)
	return rb.Wait()
}

// WriteString transmits s to addr, for callers whose payloads are string
// constants (initialization sequences and the like).
func (m *Manager) WriteString(addr uint8, s string) Status {
	var rb Request
	rb.SetWriteParams(addr, []byte(s))
	m.QueueRequest(&rb)
	return rb.Wait()
}

// Read fills rbuf from addr. When cmd bytes are given they are written
// first, followed by a repeated-start read (the register-pointer idiom).
func (m *Manager) Read(addr uint8, rbuf []byte, cmd ...byte) Status {
	var rb Request
	if len(cmd) > 0 {
		rb.SetRequestParams(addr, rbuf, cmd)
	} else {
		rb.SetReadParams(addr, rbuf)
	}
	m.QueueRequest(&rb)
	return rb.Wait()
}
