// Package sim is a terminal stand-in for the timer panel: keyboard buttons,
// a toggled motion sensor, and an LCD drawn with lipgloss.
package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// PressDuration is how long a key press keeps a button down. Terminals report
// no key release, so a press is a fixed pulse longer than the menu's poll.
const PressDuration = 200 * time.Millisecond

// Snapshot is the panel state drawn by the model
type Snapshot struct {
	Line1, Line2 string
	Color        hal.Color
	Motion       bool
	Held         bool
	Beeping      bool
	Pressed      [4]bool
}

// Device holds the simulated hardware state. All methods are safe to call
// from the menu goroutine and the bubbletea loop at once.
type Device struct {
	clock        clock.Clock
	pressedUntil [4]atomic.Int64
	held         atomic.Bool
	motion       atomic.Bool
	beepUntil    atomic.Int64

	mu    sync.Mutex
	line1 string
	line2 string
	color hal.Color
}

// NewDevice creates a device with every button released and no motion
func NewDevice(clk clock.Clock) *Device {
	if clk == nil {
		clk = clock.New()
	}
	return &Device{clock: clk}
}

// Board exposes the device through the hardware interfaces
func (d *Device) Board() *hal.Board {
	b := &hal.Board{
		Sensor:  sensor{d},
		Display: display{d},
		Buzzer:  buzzer{d},
	}
	for i := range b.Buttons {
		b.Buttons[i] = button{d: d, index: i}
	}
	return b
}

// Press pulses button i
func (d *Device) Press(i int) {
	d.pressedUntil[i].Store(d.clock.Now().Add(PressDuration).UnixNano())
}

// ToggleHold latches B4 down or releases it, for stop and hold-to-quit
func (d *Device) ToggleHold() bool {
	held := !d.held.Load()
	d.held.Store(held)
	return held
}

// ToggleMotion flips the PIR output
func (d *Device) ToggleMotion() bool {
	motion := !d.motion.Load()
	d.motion.Store(motion)
	return motion
}

func (d *Device) pressed(i int) bool {
	if i == hal.ButtonBack && d.held.Load() {
		return true
	}
	return d.clock.Now().UnixNano() < d.pressedUntil[i].Load()
}

// Snapshot copies the current state
func (d *Device) Snapshot() Snapshot {
	d.mu.Lock()
	s := Snapshot{Line1: d.line1, Line2: d.line2, Color: d.color}
	d.mu.Unlock()

	s.Motion = d.motion.Load()
	s.Held = d.held.Load()
	s.Beeping = d.clock.Now().UnixNano() < d.beepUntil.Load()
	for i := range s.Pressed {
		s.Pressed[i] = d.pressed(i)
	}
	return s
}

type button struct {
	d     *Device
	index int
}

func (b button) Pressed() bool { return b.d.pressed(b.index) }

type sensor struct{ d *Device }

func (s sensor) ReadMotion() (bool, error) { return s.d.motion.Load(), nil }

type display struct{ d *Device }

func (s display) Render(line1, line2 string, c hal.Color) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.line1, s.d.line2, s.d.color = line1, line2, c
	return nil
}

type buzzer struct{ d *Device }

func (b buzzer) Tone(dur time.Duration) error {
	b.d.beepUntil.Store(b.d.clock.Now().Add(dur).UnixNano())
	b.d.clock.Sleep(dur)
	return nil
}
