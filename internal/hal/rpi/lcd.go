package rpi

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// Grove RGB LCD I2C addresses
const (
	LCDTextAddr = 0x3e
	LCDRGBAddr  = 0x62
)

const (
	lcdCommand = 0x80
	lcdData    = 0x40

	lcdClear       = 0x01
	lcdDisplayOn   = 0x08 | 0x04
	lcdTwoLines    = 0x28
	lcdSecondLine  = 0xc0
	lcdClearSettle = 50 * time.Millisecond
)

// rgbFrames is the PCA9633 sequence that sets the backlight color
func rgbFrames(c hal.Color) [][]byte {
	return [][]byte{
		{0x00, 0x00},
		{0x01, 0x00},
		{0x08, 0xaa},
		{0x04, c.R},
		{0x03, c.G},
		{0x02, c.B},
	}
}

// textFrames writes both lines after the clear and setup commands
func textFrames(line1, line2 string) (setup, body [][]byte) {
	setup = [][]byte{
		{lcdCommand, lcdDisplayOn},
		{lcdCommand, lcdTwoLines},
	}
	for _, ch := range hal.LCDText(line1, hal.LCDWidth) {
		body = append(body, []byte{lcdData, ch})
	}
	body = append(body, []byte{lcdCommand, lcdSecondLine})
	for _, ch := range hal.LCDText(line2, hal.LCDWidth) {
		body = append(body, []byte{lcdData, ch})
	}
	return setup, body
}

// LCD drives the Grove RGB LCD (text controller plus backlight controller)
type LCD struct {
	text  Tx
	rgb   Tx
	clock clock.Clock
}

// NewLCD wraps the two I2C devices of the display
func NewLCD(text, rgb Tx, clk clock.Clock) *LCD {
	return &LCD{text: text, rgb: rgb, clock: clk}
}

// Render sets the backlight and redraws both lines
func (l *LCD) Render(line1, line2 string, c hal.Color) error {
	for _, f := range rgbFrames(c) {
		if err := l.rgb.Tx(f, nil); err != nil {
			return fmt.Errorf("lcd backlight: %w", err)
		}
	}

	if err := l.text.Tx([]byte{lcdCommand, lcdClear}, nil); err != nil {
		return fmt.Errorf("lcd clear: %w", err)
	}
	l.clock.Sleep(lcdClearSettle)

	setup, body := textFrames(line1, line2)
	for _, f := range append(setup, body...) {
		if err := l.text.Tx(f, nil); err != nil {
			return fmt.Errorf("lcd text: %w", err)
		}
	}
	return nil
}
