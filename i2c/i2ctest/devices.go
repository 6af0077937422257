package i2ctest

// Sink is a device that acknowledges everything, records what was written
// to it, and serves a canned byte sequence to reads. NAKAt makes it reject
// the data byte with that per-try index; NAKTries limits the rejection to
// the first n tries (negative means every try).
type Sink struct {
	// Writes holds the data bytes of each try, in submission order.
	Writes [][]byte
	// ReadData is served to reads; when exhausted the device signals it has
	// no more data, which the bus reports as a truncation.
	ReadData []byte

	NAKAt    int
	NAKTries int

	// RefuseSelect makes the device NAK its own address while still
	// counting the attempt.
	RefuseSelect bool

	tries int
	ri    int
}

func NewSink() *Sink {
	return &Sink{NAKAt: -1, NAKTries: -1}
}

// Tries returns how many times the device was selected for writing: one per
// try, so it doubles as an attempt counter in retry tests.
func (d *Sink) Tries() int { return d.tries }

func (d *Sink) SelectWrite() bool {
	d.tries++
	d.Writes = append(d.Writes, nil)
	return !d.RefuseSelect
}

func (d *Sink) SelectRead() bool {
	d.ri = 0
	return true
}

func (d *Sink) Write(b byte) bool {
	i := len(d.Writes) - 1
	if d.NAKAt >= 0 && len(d.Writes[i]) == d.NAKAt {
		if d.NAKTries < 0 || d.tries <= d.NAKTries {
			return false
		}
	}
	d.Writes[i] = append(d.Writes[i], b)
	return true
}

func (d *Sink) Read(last bool) (byte, bool) {
	if d.ri >= len(d.ReadData) {
		return 0, false
	}
	b := d.ReadData[d.ri]
	d.ri++
	return b, true
}

func (d *Sink) Stop() {}

// Mem is an EEPROM-style register file: the first written byte of a try
// sets the address pointer, later bytes store through it, reads return data
// from the pointer onward. Both directions auto-increment and wrap.
// BusyAfterWrite simulates an internal write cycle: after a try that stored
// data, the device NAKs its address that many times before acknowledging
// again (exercises acknowledge polling).
type Mem struct {
	Data []byte

	BusyAfterWrite int

	// PageSize, when set, wraps data writes within the page holding the
	// initial pointer, as the real parts do. Reads are unaffected.
	PageSize int

	ptr     int
	havePtr bool
	wrote   bool
	busy    int
}

func NewMem(size int) *Mem {
	return &Mem{Data: make([]byte, size)}
}

func (d *Mem) SelectWrite() bool {
	if d.busy > 0 {
		d.busy--
		return false
	}
	d.havePtr = false
	d.wrote = false
	return true
}

func (d *Mem) SelectRead() bool {
	if d.busy > 0 {
		d.busy--
		return false
	}
	return true
}

func (d *Mem) Write(b byte) bool {
	if !d.havePtr {
		d.ptr = int(b) % len(d.Data)
		d.havePtr = true
		return true
	}
	d.Data[d.ptr] = b
	if d.PageSize > 0 {
		page := d.ptr &^ (d.PageSize - 1)
		d.ptr = page | (d.ptr+1)&(d.PageSize-1)
	} else {
		d.ptr = (d.ptr + 1) % len(d.Data)
	}
	d.wrote = true
	return true
}

func (d *Mem) Read(last bool) (byte, bool) {
	b := d.Data[d.ptr]
	d.ptr = (d.ptr + 1) % len(d.Data)
	return b, true
}

func (d *Mem) Stop() {
	if d.wrote {
		d.busy = d.BusyAfterWrite
		d.wrote = false
	}
}
