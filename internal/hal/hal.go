// Package hal defines the narrow hardware interfaces the timer core uses.
// Platform-specific packages (rpi, serlcd, sim) provide the implementations.
package hal

import (
	"fmt"
	"time"
)

// MotionSensor reads the raw level of a binary motion sensor
type MotionSensor interface {
	// ReadMotion returns true when the sensor output is high
	ReadMotion() (bool, error)
}

// Button reports the raw level of a push button
type Button interface {
	Pressed() bool
}

// Display renders two lines of text with a backlight color
type Display interface {
	Render(line1, line2 string, c Color) error
}

// Buzzer emits a tone, blocking for its duration
type Buzzer interface {
	Tone(d time.Duration) error
}

// Button positions on the panel
const (
	ButtonUp   = iota // B1: value +
	ButtonNext        // B2: next screen / start
	ButtonDown        // B3: value -
	ButtonBack        // B4: previous screen, stop, hold to quit
)

// Board bundles the devices of one timer panel
type Board struct {
	Sensor  MotionSensor
	Buttons [4]Button
	Display Display
	Buzzer  Buzzer
}

// Stop returns the button that stops a running session
func (b *Board) Stop() Button {
	return b.Buttons[ButtonBack]
}

// AnyPressed reports whether any panel button is pressed
func (b *Board) AnyPressed() bool {
	for _, btn := range b.Buttons {
		if btn != nil && btn.Pressed() {
			return true
		}
	}
	return false
}

// Validate checks that every device is wired
func (b *Board) Validate() error {
	if b.Sensor == nil {
		return fmt.Errorf("board has no motion sensor")
	}
	for i, btn := range b.Buttons {
		if btn == nil {
			return fmt.Errorf("board has no button B%d", i+1)
		}
	}
	if b.Display == nil {
		return fmt.Errorf("board has no display")
	}
	if b.Buzzer == nil {
		return fmt.Errorf("board has no buzzer")
	}
	return nil
}

// Color is an RGB backlight color
type Color struct {
	R, G, B uint8
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Backlight colors used by the screens
var (
	ColorGreen   = Color{0, 255, 0}
	ColorBlue    = Color{0, 100, 255}
	ColorRest    = Color{0, 150, 255}
	ColorWhite   = Color{255, 255, 255}
	ColorCyan    = Color{0, 255, 255}
	ColorOrange  = Color{255, 165, 0}
	ColorRed     = Color{255, 0, 0}
	ColorMagenta = Color{255, 0, 255}
	ColorGray    = Color{128, 128, 128}
)

// NoBuzzer discards tones
type NoBuzzer struct{}

func (NoBuzzer) Tone(time.Duration) error { return nil }
