package session

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// Waiter sleeps in PollInterval steps while watching the stop button
type Waiter struct {
	stop  hal.Button
	clock clock.Clock
	tick  time.Duration
}

// NewWaiter creates a waiter polling stop every PollInterval
func NewWaiter(stop hal.Button, clk clock.Clock) *Waiter {
	return &Waiter{stop: stop, clock: clk, tick: PollInterval}
}

// Stopped reports whether the stop button is pressed or ctx is done
func (w *Waiter) Stopped(ctx context.Context) bool {
	return ctx.Err() != nil || w.stop.Pressed()
}

// Wait sleeps for d and returns true as soon as a stop is observed.
// The stop signal is checked before every sub-interval.
func (w *Waiter) Wait(ctx context.Context, d time.Duration) bool {
	ticks := int(d / w.tick)
	for i := 0; i < ticks; i++ {
		if w.Stopped(ctx) {
			return true
		}
		w.clock.Sleep(w.tick)
	}
	return false
}
