// Package halfake provides scripted hardware for tests.
// Inputs are functions of the time elapsed on a mock clock, so a whole
// session can be replayed deterministically without sleeping.
package halfake

import (
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// Clock is a mock clock whose Sleep advances mock time instead of blocking
type Clock struct {
	*clock.Mock
	start time.Time
}

// NewClock returns a mock clock
func NewClock() *Clock {
	m := clock.NewMock()
	return &Clock{Mock: m, start: m.Now()}
}

// Sleep advances the mock clock by d
func (c *Clock) Sleep(d time.Duration) {
	c.Mock.Add(d)
}

// Elapsed returns the mock time passed since the clock was created
func (c *Clock) Elapsed() time.Duration {
	return c.Mock.Now().Sub(c.start)
}

// Script maps elapsed mock time to a level
type Script func(elapsed time.Duration) bool

// Always returns a constant script
func Always(v bool) Script {
	return func(time.Duration) bool { return v }
}

// After is high from d onwards
func After(d time.Duration) Script {
	return func(e time.Duration) bool { return e >= d }
}

// Between is high in [from, to)
func Between(from, to time.Duration) Script {
	return func(e time.Duration) bool { return e >= from && e < to }
}

// Sensor is a motion sensor driven by a script
type Sensor struct {
	Clock  *Clock
	Script Script
	// Fail makes every read return an error
	Fail bool

	mu    sync.Mutex
	reads int
}

// ErrSensor is returned by a failing Sensor
var ErrSensor = errors.New("sensor read failed")

func (s *Sensor) ReadMotion() (bool, error) {
	s.mu.Lock()
	s.reads++
	s.mu.Unlock()
	if s.Fail {
		return false, ErrSensor
	}
	return s.Script(s.Clock.Elapsed()), nil
}

// Reads returns the number of raw reads taken
func (s *Sensor) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Samples is a motion sensor replaying a fixed list of raw values.
// A nil entry in Errs at the same index means the read succeeds.
type Samples struct {
	Values []int
	Errs   []error
	next   int
}

func (s *Samples) ReadMotion() (bool, error) {
	i := s.next
	s.next++
	if i < len(s.Errs) && s.Errs[i] != nil {
		return false, s.Errs[i]
	}
	if i >= len(s.Values) {
		return false, nil
	}
	return s.Values[i] == 1, nil
}

// Button is a push button driven by a script
type Button struct {
	Clock  *Clock
	Script Script
}

func (b *Button) Pressed() bool {
	return b.Script(b.Clock.Elapsed())
}

// Frame is one rendered screen
type Frame struct {
	Line1, Line2 string
	Color        hal.Color
	At           time.Duration
}

// Display records every rendered frame
type Display struct {
	Clock  *Clock
	Frames []Frame
	Err    error
}

func (d *Display) Render(line1, line2 string, c hal.Color) error {
	var at time.Duration
	if d.Clock != nil {
		at = d.Clock.Elapsed()
	}
	d.Frames = append(d.Frames, Frame{Line1: line1, Line2: line2, Color: c, At: at})
	return d.Err
}

// Last returns the most recent frame
func (d *Display) Last() Frame {
	if len(d.Frames) == 0 {
		return Frame{}
	}
	return d.Frames[len(d.Frames)-1]
}

// Lines returns line1 of every frame
func (d *Display) Lines() []string {
	out := make([]string, len(d.Frames))
	for i, f := range d.Frames {
		out[i] = f.Line1
	}
	return out
}

// Buzzer records tone durations
type Buzzer struct {
	Tones []time.Duration
	Err   error
}

func (b *Buzzer) Tone(d time.Duration) error {
	b.Tones = append(b.Tones, d)
	return b.Err
}

// Board returns a board with every button released and constant motion
func Board(clk *Clock, motion Script) (*hal.Board, *Display, *Buzzer, [4]*Button) {
	display := &Display{Clock: clk}
	buzzer := &Buzzer{}
	var buttons [4]*Button
	board := &hal.Board{
		Sensor:  &Sensor{Clock: clk, Script: motion},
		Display: display,
		Buzzer:  buzzer,
	}
	for i := range buttons {
		buttons[i] = &Button{Clock: clk, Script: Always(false)}
		board.Buttons[i] = buttons[i]
	}
	return board, display, buzzer, buttons
}
