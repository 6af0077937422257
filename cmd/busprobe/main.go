//go:build rp2040 || rp2350

// Command busprobe scans the I2C bus on boot and reports every responding
// device over USB CDC and UART0, then keeps rescanning so wiring can be
// checked interactively with a serial console attached.
package main

import (
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"i2cmanager-go/i2c"
	"i2cmanager-go/x/conv"
)

const rescanEvery = 5 * time.Second

// line writes s to the USB console and the UART, newline-terminated.
type console struct{ u *uartx.UART }

func (c *console) line(parts ...string) {
	for _, p := range parts {
		print(p)
		if c.u != nil {
			_, _ = c.u.Write([]byte(p))
		}
	}
	println()
	if c.u != nil {
		_, _ = c.u.Write([]byte("\r\n"))
	}
}

// Write lets the manager log straight to both outputs.
func (c *console) Write(p []byte) (int, error) {
	print(string(p))
	if c.u != nil {
		_, _ = c.u.Write(p)
	}
	return len(p), nil
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		u = nil
	}
	con := &console{u: u}
	con.line("[busprobe] boot")

	backend := i2c.NewMachineBackend(i2c.MachineConfig{
		Bus: machine.I2C0,
		SDA: machine.I2C0_SDA_PIN,
		SCL: machine.I2C0_SCL_PIN,
	})
	m, err := i2c.New(backend, i2c.Config{Log: con})
	if err != nil {
		con.line("[busprobe] FAIL: ", err.Error())
		return
	}
	if err := m.Begin(); err != nil {
		con.line("[busprobe] FAIL: bus init: ", err.Error())
		return
	}

	var present [128]bool
	var hb [4]byte
	for {
		time.Sleep(rescanEvery)
		for addr := uint8(1); addr < 0x7F; addr++ {
			ok := m.CheckAddress(addr) == i2c.StatusOK
			if ok != present[addr] {
				verb := "[busprobe] device appeared at 0x"
				if !ok {
					verb = "[busprobe] device vanished from 0x"
				}
				con.line(verb, string(conv.Uhex(hb[:], uint64(addr))))
			}
			present[addr] = ok
		}
	}
}
