// Command selftest runs the bus manager against the simulated bus and
// prints a PASS/FAIL line per scenario. It needs no hardware, so it doubles
// as a quick smoke check on a development host.
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"i2cmanager-go/drivers/eeprom24"
	"i2cmanager-go/i2c"
	"i2cmanager-go/i2c/i2ctest"
)

var failed bool

func report(name string, ok bool, detail string) {
	if ok {
		fmt.Printf("PASS %s\n", name)
		return
	}
	failed = true
	fmt.Printf("FAIL %s: %s\n", name, detail)
}

func main() {
	bus := i2ctest.NewBus()
	sensor := i2ctest.NewSink()
	sensor.ReadData = []byte{0x12, 0x34}
	bus.AddDevice(0x48, sensor)
	mem := i2ctest.NewMem(256)
	mem.PageSize = 8
	mem.BusyAfterWrite = 2
	bus.AddDevice(0x50, mem)

	m, err := i2c.New(i2c.NewEngine(bus), i2c.Config{Log: os.Stdout})
	if err != nil {
		fmt.Println("cannot build manager:", err)
		os.Exit(1)
	}
	if err := m.Begin(); err != nil {
		fmt.Println("bus init failed:", err)
		os.Exit(1)
	}

	// Probing
	report("probe present", m.CheckAddress(0x48) == i2c.StatusOK, "device at 0x48 not seen")
	report("probe absent", m.CheckAddress(0x31) == i2c.StatusNegativeAcknowledge, "ghost device at 0x31")

	// Register read
	rbuf := make([]byte, 2)
	st := m.Read(0x48, rbuf, 0x00)
	report("register read", st == i2c.StatusOK && rbuf[0] == 0x12 && rbuf[1] == 0x34,
		fmt.Sprintf("status %v data %x", st, rbuf))

	// EEPROM round trip through the io interfaces
	ee, err := eeprom24.New(m, eeprom24.Conf24C02)
	if err != nil {
		fmt.Println("eeprom config:", err)
		os.Exit(1)
	}
	payload := []byte("managed bus self test")
	_, werr := ee.Write(payload)
	_, _ = ee.Seek(0, 0)
	got := make([]byte, len(payload))
	_, rerr := ee.Read(got)
	report("eeprom round trip", werr == nil && rerr == nil && bytes.Equal(got, payload),
		fmt.Sprintf("write %v read %v data %q", werr, rerr, got))

	// Retry policy: first try rejected, second accepted
	flaky := i2ctest.NewSink()
	flaky.NAKAt = 0
	flaky.NAKTries = 1
	bus.AddDevice(0x60, flaky)
	st = m.Write(0x60, 0xAA)
	report("transparent retry", st == i2c.StatusOK && flaky.Tries() == 2,
		fmt.Sprintf("status %v tries %d", st, flaky.Tries()))

	// Timeout: a held clock must not wedge the scheduler
	m.SetTimeout(2 * time.Millisecond)
	bus.Stall = true
	st = m.Write(0x48, 0x00)
	bus.Stall = false
	report("stalled bus timeout", st == i2c.StatusTimeout, fmt.Sprintf("status %v", st))

	// The bus must still work after the aborted transaction
	st = m.Read(0x48, rbuf, 0x00)
	report("recovery after timeout", st == i2c.StatusOK, fmt.Sprintf("status %v", st))

	if failed {
		os.Exit(1)
	}
	fmt.Println("all scenarios passed")
}
