// Package rpi drives the Raspberry Pi build: four push buttons on GPIO and a
// GrovePi+ shield carrying the PIR sensor, the buzzer and the RGB LCD.
package rpi

import (
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// Config is the pin map
type Config struct {
	// Buttons are BCM GPIO numbers for B1..B4
	Buttons     []int
	PIRPin      int
	BuzzerPin   int
	I2CBus      string
	GrovePiAddr uint16
	// WithLCD attaches the Grove RGB LCD as the display
	WithLCD bool
}

// Button is a push button wired to 3V3 with the internal pull-down enabled
type Button struct {
	pin gpio.PinIO
}

func (b *Button) Pressed() bool {
	return b.pin.Read() == gpio.High
}

// Device is an opened Raspberry Pi board
type Device struct {
	Board *hal.Board
	bus   i2c.BusCloser
}

// Close releases the I2C bus
func (d *Device) Close() error {
	if d.bus == nil {
		return nil
	}
	return d.bus.Close()
}

// Open initializes periph, the buttons and the GrovePi devices. Without
// WithLCD the returned board has no display; the caller attaches one.
func Open(cfg Config, clk clock.Clock, log *zap.Logger) (*Device, error) {
	if len(cfg.Buttons) != 4 {
		return nil, fmt.Errorf("need 4 button pins, got %d", len(cfg.Buttons))
	}
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}

	board := &hal.Board{}
	for i, n := range cfg.Buttons {
		name := fmt.Sprintf("GPIO%d", n)
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("button B%d: no pin %s", i+1, name)
		}
		if err := pin.In(gpio.PullDown, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("button B%d on %s: %w", i+1, name, err)
		}
		board.Buttons[i] = &Button{pin: pin}
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.I2CBus, err)
	}
	dev := &Device{Board: board, bus: bus}

	addr := cfg.GrovePiAddr
	if addr == 0 {
		addr = DefaultGrovePiAddr
	}
	gp := NewGrovePi(&i2c.Dev{Bus: bus, Addr: addr}, clk)

	// Sensor and buzzer init failures are logged, not fatal
	var initErrs []error
	if pir, err := NewPIR(gp, cfg.PIRPin); err != nil {
		initErrs = append(initErrs, err)
		board.Sensor = &PIR{gp: gp, pin: cfg.PIRPin}
	} else {
		board.Sensor = pir
	}
	if bz, err := NewBuzzer(gp, cfg.BuzzerPin); err != nil {
		initErrs = append(initErrs, err)
		board.Buzzer = &Buzzer{gp: gp, pin: cfg.BuzzerPin}
	} else {
		board.Buzzer = bz
	}
	if err := errors.Join(initErrs...); err != nil {
		log.Warn("grovepi init failed", zap.Error(err))
	}

	if cfg.WithLCD {
		board.Display = NewLCD(
			&i2c.Dev{Bus: bus, Addr: LCDTextAddr},
			&i2c.Dev{Bus: bus, Addr: LCDRGBAddr},
			clk,
		)
	}

	log.Info("raspberry pi board ready",
		zap.Ints("buttons", cfg.Buttons),
		zap.Int("pir_pin", cfg.PIRPin),
		zap.Int("buzzer_pin", cfg.BuzzerPin),
		zap.Bool("lcd", cfg.WithLCD),
	)
	return dev, nil
}

// PinMap lists every wired part with its connection, for display
func PinMap(cfg Config) [][]string {
	labels := []string{"B1 Val+", "B2 Next", "B3 Val-", "B4 Back / Stop"}
	rows := make([][]string, 0, len(cfg.Buttons)+4)
	for i, n := range cfg.Buttons {
		label := fmt.Sprintf("B%d", i+1)
		if i < len(labels) {
			label = labels[i]
		}
		rows = append(rows, []string{label, fmt.Sprintf("GPIO%d", n), "input, pull-down"})
	}
	addr := cfg.GrovePiAddr
	if addr == 0 {
		addr = DefaultGrovePiAddr
	}
	rows = append(rows,
		[]string{"PIR sensor", fmt.Sprintf("GrovePi D%d", cfg.PIRPin), fmt.Sprintf("i2c 0x%02x", addr)},
		[]string{"Buzzer", fmt.Sprintf("GrovePi D%d", cfg.BuzzerPin), fmt.Sprintf("i2c 0x%02x", addr)},
		[]string{"LCD text", "Grove I2C", fmt.Sprintf("i2c 0x%02x", LCDTextAddr)},
		[]string{"LCD backlight", "Grove I2C", fmt.Sprintf("i2c 0x%02x", LCDRGBAddr)},
	)
	return rows
}
