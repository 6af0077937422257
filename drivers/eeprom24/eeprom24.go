// Package eeprom24 provides a driver for 24-series I2C EEPROMs, exposed as
// an io.Reader/io.Writer/io.Seeker over the managed bus.
//
// Device model:
// • One data byte sets the register pointer; reads auto-increment from it.
// • Writes land in a RAM page buffer and must not cross a page boundary.
// • Parts larger than 256 bytes map further 256-byte blocks onto
//   consecutive 7-bit device addresses (A0..A2 reuse).
// • After a write the device goes silent for its internal write cycle and
//   NAKs its own address until done; the driver acknowledge-polls.
package eeprom24

import (
	"errors"
	"io"

	"i2cmanager-go/i2c"
	"i2cmanager-go/x/mathx"
)

var (
	ErrInvalidConfig = errors.New("eeprom24: size and page size must be powers of two, page <= 256")
	ErrWhence        = errors.New("eeprom24: invalid whence")
	ErrSeekRange     = errors.New("eeprom24: position outside the array")
)

type Config struct {
	// Address is the base 7-bit device address. Default 0x50.
	Address uint8
	// Size is the array size in bytes, PageSize the write page.
	Size     int
	PageSize int
	// PollAttempts bounds acknowledge polling after a page write.
	// Default 20, which covers a 10 ms write cycle comfortably.
	PollAttempts int
}

// Common parts.
var (
	Conf24C02 = Config{Size: 256, PageSize: 8}
	Conf24C04 = Config{Size: 512, PageSize: 16}
	Conf24C16 = Config{Size: 2048, PageSize: 16}
)

type Device struct {
	m   *i2c.Manager
	cfg Config
	pos int

	// Page buffer for pointer+data writes, sized once.
	w []byte
}

// New validates cfg and binds the device to a managed bus.
func New(m *i2c.Manager, cfg Config) (*Device, error) {
	if cfg.Address == 0 {
		cfg.Address = 0x50
	}
	if cfg.PollAttempts == 0 {
		cfg.PollAttempts = 20
	}
	if cfg.Size <= 0 || cfg.PageSize <= 0 ||
		cfg.Size&(cfg.Size-1) != 0 || cfg.PageSize&(cfg.PageSize-1) != 0 ||
		cfg.PageSize > 256 || cfg.PageSize > cfg.Size {
		return nil, ErrInvalidConfig
	}
	return &Device{
		m:   m,
		cfg: cfg,
		w:   make([]byte, cfg.PageSize+1),
	}, nil
}

// blockAddr returns the device address serving position p: the base address
// plus one per 256-byte block.
func (d *Device) blockAddr(p int) uint8 {
	return d.cfg.Address + uint8(p>>8)
}

// Read fills b from the current position, stopping at the end of the array.
func (d *Device) Read(b []byte) (int, error) {
	if d.pos >= d.cfg.Size {
		return 0, io.EOF
	}
	total := 0
	b = b[:mathx.Min(len(b), d.cfg.Size-d.pos)]
	for len(b) > 0 {
		// One transaction per 256-byte block: the register pointer is a
		// single byte and wraps within its block.
		n := mathx.Min(len(b), 256-d.pos&0xFF)

		var rb i2c.Request
		rb.SetRequestParams(d.blockAddr(d.pos), b[:n], []byte{byte(d.pos)})
		d.m.QueueRequest(&rb)
		st := rb.Wait()
		total += rb.BytesRead()
		d.pos += rb.BytesRead()
		if st != i2c.StatusOK {
			return total, st
		}
		b = b[n:]
	}
	return total, nil
}

// Write stores b at the current position, splitting it into page writes and
// acknowledge-polling the device between pages.
func (d *Device) Write(b []byte) (int, error) {
	total := 0
	for len(b) > 0 && d.pos < d.cfg.Size {
		aip := d.pos & (d.cfg.PageSize - 1)
		n := mathx.Min(len(b), d.cfg.PageSize-aip)

		d.w[0] = byte(d.pos)
		copy(d.w[1:], b[:n])
		if st := d.m.Write(d.blockAddr(d.pos), d.w[:n+1]...); st != i2c.StatusOK {
			return total, st
		}
		if err := d.waitReady(); err != nil {
			return total, err
		}

		d.pos += n
		total += n
		b = b[n:]
	}
	if len(b) > 0 {
		return total, io.ErrShortWrite
	}
	return total, nil
}

// Seek implements io.Seeker over the array.
func (d *Device) Seek(offset int64, whence int) (int64, error) {
	var p int64
	switch whence {
	case io.SeekStart:
		p = offset
	case io.SeekCurrent:
		p = int64(d.pos) + offset
	case io.SeekEnd:
		p = int64(d.cfg.Size) + offset
	default:
		return int64(d.pos), ErrWhence
	}
	if p < 0 || p > int64(d.cfg.Size) {
		return int64(d.pos), ErrSeekRange
	}
	d.pos = int(p)
	return p, nil
}

// waitReady acknowledge-polls until the device answers its address again
// after an internal write cycle.
func (d *Device) waitReady() error {
	addr := d.blockAddr(d.pos)
	for i := 0; i < d.cfg.PollAttempts; i++ {
		if d.m.CheckAddress(addr) == i2c.StatusOK {
			return nil
		}
	}
	return i2c.StatusTimeout
}
