//go:build rp2040 || rp2350

package i2c

import "machine"

// MachineConfig selects an RP2 hardware I2C controller and its pins.
type MachineConfig struct {
	Bus     *machine.I2C
	SDA     machine.Pin
	SCL     machine.Pin
	ClockHz uint32 // 0 => DefaultClockHz
}

// MachineBackend drives an RP2 hardware controller through the machine
// package. The controller blocks per transaction, so the backend is
// synchronous; it also senses the raw line levels for the wiring check.
type MachineBackend struct {
	TxBackend
	cfg MachineConfig
}

var _ SyncBackend = (*MachineBackend)(nil)
var _ LineSenser = (*MachineBackend)(nil)

func NewMachineBackend(cfg MachineConfig) *MachineBackend {
	if cfg.ClockHz == 0 {
		cfg.ClockHz = DefaultClockHz
	}
	return &MachineBackend{TxBackend: TxBackend{bus: cfg.Bus}, cfg: cfg}
}

func (b *MachineBackend) Init() error {
	return b.cfg.Bus.Configure(machine.I2CConfig{
		Frequency: b.cfg.ClockHz,
		SDA:       b.cfg.SDA,
		SCL:       b.cfg.SCL,
	})
}

// Line levels are readable regardless of the pins' I2C function; a healthy
// idle bus floats both lines high through the pull-ups.
func (b *MachineBackend) SDALow() bool { return !b.cfg.SDA.Get() }
func (b *MachineBackend) SCLLow() bool { return !b.cfg.SCL.Get() }
