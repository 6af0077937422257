// i2c/request_test.go
package i2c

import "testing"

func TestSetupOpsResetBlock(t *testing.T) {
	var rb Request
	rb.SetRequestParams(0x48, make([]byte, 4), []byte{0x01})
	rb.SuppressRetries(true)
	rb.SetBytesRead(4)

	// Reconfiguring discards everything from the previous use, the
	// no-retry bit included.
	rb.SetWriteParams(0x50, []byte{0xAA})

	if rb.Addr() != 0x50 {
		t.Errorf("Addr = %#x, want 0x50", rb.Addr())
	}
	if rb.HasRead() {
		t.Error("read phase survived SetWriteParams")
	}
	if !rb.HasWrite() {
		t.Error("write phase missing")
	}
	if rb.ReadBuffer() != nil {
		t.Error("read buffer survived SetWriteParams")
	}
	if rb.noRetry() {
		t.Error("no-retry bit survived SetWriteParams")
	}
	if rb.BytesRead() != 0 {
		t.Errorf("BytesRead = %d, want 0", rb.BytesRead())
	}
	if rb.Status() != StatusOK {
		t.Errorf("Status = %v, want OK", rb.Status())
	}
}

func TestSuppressRetriesLeavesShapeAlone(t *testing.T) {
	var rb Request
	rb.SetRequestParams(0x48, make([]byte, 2), []byte{0x0F})

	rb.SuppressRetries(true)
	if !rb.noRetry() {
		t.Error("no-retry bit not set")
	}
	if !rb.HasWrite() || !rb.HasRead() {
		t.Error("transaction shape disturbed by SuppressRetries")
	}
	if rb.Addr() != 0x48 {
		t.Errorf("Addr = %#x, want 0x48", rb.Addr())
	}

	rb.SuppressRetries(false)
	if rb.noRetry() {
		t.Error("no-retry bit not cleared")
	}
	if !rb.HasWrite() || !rb.HasRead() {
		t.Error("transaction shape disturbed by clearing SuppressRetries")
	}
}

func TestAddressMaskedTo7Bits(t *testing.T) {
	var rb Request
	rb.SetReadParams(0xFF, make([]byte, 1))
	if rb.Addr() != 0x7F {
		t.Errorf("Addr = %#x, want 0x7F", rb.Addr())
	}
}

func TestTerminalBlockNotBusy(t *testing.T) {
	var rb Request
	rb.SetWriteParams(0x50, nil)
	// Never queued: status is OK from setup, so the block reads as free.
	if rb.IsBusy() {
		t.Error("unqueued block reports busy")
	}
	if rb.Wait() != StatusOK {
		t.Errorf("Wait = %v, want OK", rb.Wait())
	}
}
