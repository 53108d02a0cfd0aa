package session

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/pirtimer/internal/domain"
)

// EventSink receives session events
type EventSink interface {
	Emit(event interface{}) error
}

// Tracker owns the progress of one session and emits its events
type Tracker struct {
	mu       sync.Mutex
	id       string
	cfg      domain.SessionConfig
	clock    clock.Clock
	sink     EventSink
	progress domain.SessionProgress
	started  time.Time
	pausedAt time.Time
	summary  domain.SessionSummary
	emitErr  error
}

// NewTracker creates a tracker for one session
func NewTracker(id string, cfg domain.SessionConfig, clk clock.Clock, sink EventSink) *Tracker {
	return &Tracker{
		id:    id,
		cfg:   cfg,
		clock: clk,
		sink:  sink,
	}
}

// ID returns the session identifier
func (t *Tracker) ID() string {
	return t.id
}

// Start records the session start
func (t *Tracker) Start() {
	t.mu.Lock()
	t.started = t.clock.Now()
	t.mu.Unlock()
	t.emit(domain.NewSessionStart(t.id, t.cfg, t.started))
}

// EnterPhase resets progress at a phase boundary
func (t *Tracker) EnterPhase(set int, phase domain.Phase) {
	t.mu.Lock()
	t.progress = domain.SessionProgress{Set: set, Phase: phase}
	seconds := t.cfg.ExerciseSeconds
	if phase == domain.PhaseRest {
		seconds = t.cfg.RestSeconds
	}
	t.mu.Unlock()
	t.emit(domain.NewPhaseStart(t.id, set, t.cfg.Sets, phase, seconds, t.clock.Now()))
}

// Tick counts one elapsed second of the current phase
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Elapsed++
	if t.progress.Phase == domain.PhaseRest {
		t.summary.RestSeconds++
	} else {
		t.summary.ExerciseSeconds++
	}
}

// CompleteSet marks the current exercise phase as done
func (t *Tracker) CompleteSet() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.summary.SetsCompleted++
}

// Transition counts a change of the debounced motion state
func (t *Tracker) Transition() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.summary.Transitions++
}

// Paused records the start of a pause
func (t *Tracker) Paused(state domain.PauseState) {
	t.mu.Lock()
	t.pausedAt = t.clock.Now()
	t.summary.Pauses++
	progress := t.progress
	t.mu.Unlock()
	t.emit(domain.NewPause(t.id, progress, state, t.pausedAt))
}

// Resumed records the end of a pause
func (t *Tracker) Resumed() {
	t.mu.Lock()
	now := t.clock.Now()
	paused := now.Sub(t.pausedAt)
	t.summary.PausedSeconds += paused.Seconds()
	set := t.progress.Set
	t.mu.Unlock()
	t.emit(domain.NewResume(t.id, set, paused, now))
}

// Progress returns the current progress
func (t *Tracker) Progress() domain.SessionProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// Summary returns the statistics gathered so far
func (t *Tracker) Summary() domain.SessionSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.summary
	if !t.started.IsZero() {
		s.DurationSeconds = t.clock.Since(t.started).Seconds()
	}
	return s
}

// Finish emits the session end and returns it
func (t *Tracker) Finish(outcome domain.Outcome) *domain.SessionEnd {
	end := domain.NewSessionEnd(t.id, outcome, t.Summary(), t.clock.Now())
	t.emit(end)
	return end
}

// Err returns the first event sink error, if any
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.emitErr
}

func (t *Tracker) emit(event interface{}) {
	if t.sink == nil {
		return
	}
	if err := t.sink.Emit(event); err != nil {
		t.mu.Lock()
		if t.emitErr == nil {
			t.emitErr = err
		}
		t.mu.Unlock()
	}
}
