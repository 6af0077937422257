// Package i2ctest provides a simulated I2C bus and scriptable target
// devices for host-side tests. The Bus speaks both the byte-level i2c.Port
// contract (for the non-blocking engine) and the drivers.I2C Tx shape (for
// the blocking backend), so the same device fixtures exercise both
// execution models.
package i2ctest

import "i2cmanager-go/i2c"

// Device models one simulated target. Every method corresponds to a bus
// event as seen from the device side; the bool results are acknowledge
// bits, and a false from Read means the device has run out of data.
type Device interface {
	SelectWrite() bool
	SelectRead() bool
	Write(b byte) bool
	Read(last bool) (byte, bool)
	Stop()
}

// Bus is the simulated bus. The exported fields inject faults: Stall makes
// every primitive report no progress (a stretched clock), FailNext makes
// the next primitive fail once with the given status, and the stuck flags
// feed the line-level wiring check.
type Bus struct {
	Stall    bool
	FailNext i2c.Status
	SDAStuck bool
	SCLStuck bool

	// ClockHz records the last SetClock value, Inited whether Init ran.
	ClockHz uint32
	Inited  bool

	devs      map[uint8]Device
	cur       Device
	started   bool
	addressed bool
}

func NewBus() *Bus {
	return &Bus{devs: make(map[uint8]Device)}
}

// AddDevice attaches d at the given 7-bit address.
func (b *Bus) AddDevice(addr uint8, d Device) {
	b.devs[addr&0x7F] = d
}

// inject consumes a pending fault, if any.
func (b *Bus) inject() (i2c.Status, bool) {
	if b.Stall {
		return i2c.StatusPending, true
	}
	if b.FailNext != i2c.StatusOK {
		st := b.FailNext
		b.FailNext = i2c.StatusOK
		return st, true
	}
	return i2c.StatusOK, false
}

// ---- i2c.Port ----

func (b *Bus) Init() error {
	b.Inited = true
	b.started = false
	b.addressed = false
	b.cur = nil
	return nil
}

func (b *Bus) SetClock(hz uint32) error {
	b.ClockHz = hz
	return nil
}

func (b *Bus) Start() i2c.Status {
	if st, hit := b.inject(); hit {
		return st
	}
	b.started = true
	b.addressed = false
	return i2c.StatusOK
}

func (b *Bus) Restart() i2c.Status {
	if st, hit := b.inject(); hit {
		return st
	}
	b.addressed = false
	return i2c.StatusOK
}

func (b *Bus) Stop() {
	if b.cur != nil {
		b.cur.Stop()
	}
	b.cur = nil
	b.started = false
	b.addressed = false
}

func (b *Bus) WriteByte(v byte) i2c.Status {
	if st, hit := b.inject(); hit {
		return st
	}
	if !b.addressed {
		d := b.devs[v>>1]
		if d == nil {
			return i2c.StatusNegativeAcknowledge
		}
		var ack bool
		if v&1 == 0 {
			ack = d.SelectWrite()
		} else {
			ack = d.SelectRead()
		}
		if !ack {
			return i2c.StatusNegativeAcknowledge
		}
		b.cur = d
		b.addressed = true
		return i2c.StatusOK
	}
	if !b.cur.Write(v) {
		return i2c.StatusNegativeAcknowledge
	}
	return i2c.StatusOK
}

func (b *Bus) ReadByte(last bool) (byte, i2c.Status) {
	if st, hit := b.inject(); hit {
		return 0, st
	}
	if b.cur == nil {
		return 0, i2c.StatusBusError
	}
	v, ok := b.cur.Read(last)
	if !ok {
		return 0, i2c.StatusTruncated
	}
	return v, i2c.StatusOK
}

// ---- i2c.LineSenser ----

func (b *Bus) SDALow() bool { return b.SDAStuck }
func (b *Bus) SCLLow() bool { return b.SCLStuck }

// ---- drivers.I2C shape (blocking path) ----

// Tx runs a whole transaction against the same device fixtures. Fault
// injection via Stall does not apply here; FailNext does.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if b.FailNext != i2c.StatusOK {
		st := b.FailNext
		b.FailNext = i2c.StatusOK
		return st
	}
	d := b.devs[uint8(addr)&0x7F]
	if d == nil {
		return i2c.StatusNegativeAcknowledge
	}
	if len(w) > 0 || len(r) == 0 {
		if !d.SelectWrite() {
			return i2c.StatusNegativeAcknowledge
		}
		for _, c := range w {
			if !d.Write(c) {
				d.Stop()
				return i2c.StatusTransmitError
			}
		}
	}
	if len(r) > 0 {
		if !d.SelectRead() {
			d.Stop()
			return i2c.StatusNegativeAcknowledge
		}
		for i := range r {
			v, ok := d.Read(i == len(r)-1)
			if !ok {
				d.Stop()
				return i2c.StatusTruncated
			}
			r[i] = v
		}
	}
	d.Stop()
	return nil
}
