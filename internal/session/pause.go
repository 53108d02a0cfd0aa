package session

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/pirtimer/internal/domain"
)

// PauseGuard decides when a violated required state should pause the session
type PauseGuard struct {
	mode          domain.Mode
	lastSatisfied time.Time
}

// NewPauseGuard creates a guard whose required state was last met at now
func NewPauseGuard(mode domain.Mode, now time.Time) *PauseGuard {
	return &PauseGuard{mode: mode, lastSatisfied: now}
}

// Reset marks the required state as met at now
func (g *PauseGuard) Reset(now time.Time) {
	g.lastSatisfied = now
}

// Since returns how long the required state has not been met
func (g *PauseGuard) Since(now time.Time) time.Duration {
	return now.Sub(g.lastSatisfied)
}

// Check evaluates one reading. First match wins: an expired grace window
// pauses, a satisfied reading restarts the window, anything else keeps counting.
func (g *PauseGuard) Check(now time.Time, motion bool) domain.PauseReason {
	since := g.Since(now)
	switch {
	case g.mode == domain.ModeMotion && !motion && since >= NoMotionGrace:
		return domain.PauseNoMotion
	case g.mode == domain.ModeStillness && motion && since >= MotionGrace:
		return domain.PauseMotionDetected
	case motion == g.mode.RequiredState():
		g.lastSatisfied = now
	}
	return domain.PauseNone
}

// PauseController blocks a paused session until the required state returns
type PauseController struct {
	debouncer *Debouncer
	waiter    *Waiter
	clock     clock.Clock
}

// NewPauseController creates a controller reading motion through d and stop through w
func NewPauseController(d *Debouncer, w *Waiter, clk clock.Clock) *PauseController {
	return &PauseController{debouncer: d, waiter: w, clock: clk}
}

// AwaitResume polls every ResumePollInterval. It returns false once a
// debounced reading equals required and true when a stop is requested.
// There is no timeout.
func (c *PauseController) AwaitResume(ctx context.Context, required bool) bool {
	for !c.waiter.Stopped(ctx) {
		if c.debouncer.ReadStable() == required {
			return false
		}
		c.clock.Sleep(ResumePollInterval)
	}
	return true
}
