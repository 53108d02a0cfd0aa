package rpi

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// GrovePi+ firmware commands
const (
	cmdDigitalRead  byte = 1
	cmdDigitalWrite byte = 2
	cmdPinMode      byte = 5

	pinModeInput  byte = 0
	pinModeOutput byte = 1

	// readDelay lets the firmware latch the value before it is read back
	readDelay = 10 * time.Millisecond
)

// DefaultGrovePiAddr is the shield's I2C address
const DefaultGrovePiAddr = 0x04

// Tx is the half of periph's conn.Conn the drivers need
type Tx interface {
	Tx(w, r []byte) error
}

// commandFrame builds a GrovePi command: register 1, command, pin, value, padding
func commandFrame(cmd, pin, val byte) []byte {
	return []byte{1, cmd, pin, val, 0}
}

// GrovePi talks to the GrovePi+ shield. Calls are serialized because the PIR
// and buzzer share the bus.
type GrovePi struct {
	mu    sync.Mutex
	dev   Tx
	clock clock.Clock
}

// NewGrovePi wraps an I2C device at the shield's address
func NewGrovePi(dev Tx, clk clock.Clock) *GrovePi {
	return &GrovePi{dev: dev, clock: clk}
}

// PinMode configures a digital port as input or output
func (g *GrovePi) PinMode(pin int, output bool) error {
	mode := pinModeInput
	if output {
		mode = pinModeOutput
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.dev.Tx(commandFrame(cmdPinMode, byte(pin), mode), nil); err != nil {
		return fmt.Errorf("grovepi pinMode D%d: %w", pin, err)
	}
	return nil
}

// DigitalRead returns the level of a digital port
func (g *GrovePi) DigitalRead(pin int) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.dev.Tx(commandFrame(cmdDigitalRead, byte(pin), 0), nil); err != nil {
		return false, fmt.Errorf("grovepi digitalRead D%d: %w", pin, err)
	}
	g.clock.Sleep(readDelay)
	buf := make([]byte, 1)
	if err := g.dev.Tx(nil, buf); err != nil {
		return false, fmt.Errorf("grovepi digitalRead D%d: %w", pin, err)
	}
	return buf[0] == 1, nil
}

// DigitalWrite drives a digital port
func (g *GrovePi) DigitalWrite(pin int, high bool) error {
	var val byte
	if high {
		val = 1
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.dev.Tx(commandFrame(cmdDigitalWrite, byte(pin), val), nil); err != nil {
		return fmt.Errorf("grovepi digitalWrite D%d: %w", pin, err)
	}
	return nil
}

// PIR is a Grove PIR sensor on a GrovePi digital port
type PIR struct {
	gp  *GrovePi
	pin int
}

// NewPIR configures pin as input and returns the sensor
func NewPIR(gp *GrovePi, pin int) (*PIR, error) {
	if err := gp.PinMode(pin, false); err != nil {
		return nil, err
	}
	return &PIR{gp: gp, pin: pin}, nil
}

func (p *PIR) ReadMotion() (bool, error) {
	return p.gp.DigitalRead(p.pin)
}

// Buzzer is a Grove buzzer on a GrovePi digital port
type Buzzer struct {
	gp  *GrovePi
	pin int
}

// NewBuzzer configures pin as output and returns the buzzer
func NewBuzzer(gp *GrovePi, pin int) (*Buzzer, error) {
	if err := gp.PinMode(pin, true); err != nil {
		return nil, err
	}
	return &Buzzer{gp: gp, pin: pin}, nil
}

// Tone holds the buzzer on for d. The buzzer is always switched off again,
// even when switching it on failed.
func (b *Buzzer) Tone(d time.Duration) error {
	onErr := b.gp.DigitalWrite(b.pin, true)
	b.gp.clock.Sleep(d)
	offErr := b.gp.DigitalWrite(b.pin, false)
	if onErr != nil {
		return onErr
	}
	return offErr
}
