package i2c

import "tinygo.org/x/drivers"

// baudSetter is satisfied by machine.I2C and friends.
type baudSetter interface {
	SetBaudRate(br uint32) error
}

// TxBackend executes whole transactions through a blocking drivers.I2C port.
// This is the fallback for platforms whose vendor driver already blocks
// until hardware completion; timeout detection is then the driver's job and
// surfaces here as a mapped error.
type TxBackend struct {
	bus drivers.I2C
}

var _ SyncBackend = (*TxBackend)(nil)

// NewTxBackend wraps an already-configured drivers.I2C bus.
func NewTxBackend(bus drivers.I2C) *TxBackend {
	return &TxBackend{bus: bus}
}

func (b *TxBackend) Init() error { return nil }

func (b *TxBackend) SetClock(hz uint32) error {
	if s, ok := b.bus.(baudSetter); ok {
		return s.SetBaudRate(hz)
	}
	return nil
}

func (b *TxBackend) Execute(rb *Request) Status {
	if err := b.bus.Tx(uint16(rb.Addr()), rb.WriteBuffer(), rb.ReadBuffer()); err != nil {
		return StatusOf(err)
	}
	rb.SetBytesRead(len(rb.ReadBuffer()))
	return StatusOK
}
