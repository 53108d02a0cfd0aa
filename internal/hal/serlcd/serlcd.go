// Package serlcd drives a 16x2 RGB character LCD behind a USB/serial backpack
// that speaks the Matrix-Orbital command set.
package serlcd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tarm/serial"

	"github.com/vburojevic/pirtimer/internal/hal"
)

const (
	cmdPrefix    = 0xFE
	cmdClear     = 0x58
	cmdCursorPos = 0x47
	cmdRGB       = 0xD0

	// DefaultBaud is the backpack's factory speed
	DefaultBaud = 9600
)

// Frame encodes one full redraw: backlight, clear, then both lines
func Frame(line1, line2 string, c hal.Color) []byte {
	buf := make([]byte, 0, 5+2+4+hal.LCDWidth*2+4)
	buf = append(buf, cmdPrefix, cmdRGB, c.R, c.G, c.B)
	buf = append(buf, cmdPrefix, cmdClear)
	buf = append(buf, cmdPrefix, cmdCursorPos, 1, 1)
	buf = append(buf, hal.LCDText(line1, hal.LCDWidth)...)
	buf = append(buf, cmdPrefix, cmdCursorPos, 1, 2)
	buf = append(buf, hal.LCDText(line2, hal.LCDWidth)...)
	return buf
}

// Display writes frames to the backpack
type Display struct {
	mu   sync.Mutex
	port io.WriteCloser
	name string
}

// Config selects the serial device
type Config struct {
	Device string
	Baud   int
}

// Open opens the serial port of the backpack
func Open(cfg Config) (*Display, error) {
	if cfg.Device == "" {
		return nil, fmt.Errorf("serial device not set")
	}
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return New(port, cfg.Device), nil
}

// New wraps an already open port
func New(port io.WriteCloser, name string) *Display {
	return &Display{port: port, name: name}
}

func (d *Display) Render(line1, line2 string, c hal.Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.port.Write(Frame(line1, line2, c)); err != nil {
		return fmt.Errorf("write %s: %w", d.name, err)
	}
	return nil
}

// Close closes the port
func (d *Display) Close() error {
	if d.port != nil {
		return d.port.Close()
	}
	return nil
}
