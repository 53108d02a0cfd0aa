package session

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// Tone lengths
const (
	beepShort  = 120 * time.Millisecond
	beepCancel = 80 * time.Millisecond
	beepLong   = 400 * time.Millisecond
	beepChirp  = 50 * time.Millisecond
	beepGap    = 80 * time.Millisecond
)

// Cues plays the audible feedback patterns. Buzzer failures are ignored.
type Cues struct {
	buzzer hal.Buzzer
	clock  clock.Clock
	log    *zap.Logger
}

// NewCues creates the cue player
func NewCues(b hal.Buzzer, clk clock.Clock, log *zap.Logger) *Cues {
	if b == nil {
		b = hal.NoBuzzer{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cues{buzzer: b, clock: clk, log: log}
}

// OK is a single short beep (button press, resume)
func (c *Cues) OK() { c.beep(1, beepShort) }

// Cancel is a quick double beep (pause)
func (c *Cues) Cancel() { c.beep(2, beepCancel) }

// Start is a double beep (session or exercise phase start)
func (c *Cues) Start() { c.beep(2, beepShort) }

// Alert is a long beep (exercise phase end, quit)
func (c *Cues) Alert() { c.tone(beepLong) }

// Chirp marks a change of the debounced motion state
func (c *Cues) Chirp() { c.tone(beepChirp) }

func (c *Cues) beep(times int, d time.Duration) {
	for i := 0; i < times; i++ {
		c.tone(d)
		if times > 1 {
			c.clock.Sleep(beepGap)
		}
	}
}

func (c *Cues) tone(d time.Duration) {
	if err := c.buzzer.Tone(d); err != nil {
		c.log.Debug("buzzer failed", zap.Duration("tone", d), zap.Error(err))
	}
}
