// Package session runs one exercise session: sets of exercise and rest
// phases, gated on the debounced motion sensor, paused automatically and
// stopped by the stop button.
//
// Everything here is synchronous. Waits are explicit polling loops, so the
// worst-case stop latency is the polling sub-interval in effect.
package session

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/hal"
)

// Options configures an Engine. Zero values select production defaults.
type Options struct {
	Clock  clock.Clock
	Logger *zap.Logger
	Events EventSink
	// NewID generates session identifiers
	NewID func() string
}

// Engine is the session state machine
type Engine struct {
	board     *hal.Board
	clock     clock.Clock
	log       *zap.Logger
	events    EventSink
	newID     func() string
	debouncer *Debouncer
	waiter    *Waiter
	pauses    *PauseController
	cues      *Cues
}

// NewEngine creates an engine driving board
func NewEngine(board *hal.Board, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	e := &Engine{
		board:  board,
		clock:  opts.Clock,
		log:    opts.Logger,
		events: opts.Events,
		newID:  opts.NewID,
	}
	e.debouncer = NewDebouncer(board.Sensor, e.clock, e.log)
	e.waiter = NewWaiter(board.Stop(), e.clock)
	e.pauses = NewPauseController(e.debouncer, e.waiter, e.clock)
	e.cues = NewCues(board.Buzzer, e.clock, e.log)
	return e
}

// Cues returns the engine's cue player
func (e *Engine) Cues() *Cues {
	return e.cues
}

// Run executes one session and blocks until it finishes or is stopped.
// cfg must satisfy SessionConfig.Validate; the engine does not check it.
func (e *Engine) Run(ctx context.Context, cfg domain.SessionConfig) domain.Outcome {
	tr := NewTracker(e.newID(), cfg, e.clock, e.events)
	log := e.log.With(zap.String("session_id", tr.ID()))

	log.Info("session started",
		zap.Stringer("mode", cfg.Mode),
		zap.Int("exercise_seconds", cfg.ExerciseSeconds),
		zap.Int("rest_seconds", cfg.RestSeconds),
		zap.Int("sets", cfg.Sets),
	)
	tr.Start()

	outcome := e.run(ctx, cfg, tr, log)

	end := tr.Finish(outcome)
	if err := tr.Err(); err != nil {
		log.Warn("session events not delivered", zap.Error(err))
	}
	log.Info("session ended",
		zap.String("outcome", string(outcome)),
		zap.Int("sets_completed", end.Summary.SetsCompleted),
		zap.Int("pauses", end.Summary.Pauses),
	)
	return outcome
}

func (e *Engine) run(ctx context.Context, cfg domain.SessionConfig, tr *Tracker, log *zap.Logger) domain.Outcome {
	e.cues.Start()
	if e.waiter.Wait(ctx, StartDelay) {
		return e.stopped(log)
	}

	for set := 1; set <= cfg.Sets; set++ {
		if e.exercise(ctx, cfg, set, tr, log) {
			return e.stopped(log)
		}
		tr.CompleteSet()
		e.cues.Alert()

		if set < cfg.Sets {
			if e.rest(ctx, cfg, set, tr) {
				return e.stopped(log)
			}
			e.cues.Start()
		}
	}

	e.complete(ctx)
	return domain.OutcomeFinished
}

// exercise runs one exercise phase and reports whether it was stopped
func (e *Engine) exercise(ctx context.Context, cfg domain.SessionConfig, set int, tr *Tracker, log *zap.Logger) bool {
	tr.EnterPhase(set, domain.PhaseExercise)
	log.Debug("exercise phase", zap.Int("set", set))

	required := cfg.Mode.RequiredState()
	guard := NewPauseGuard(cfg.Mode, e.clock.Now())
	var last, hasLast bool

	for elapsed := 0; elapsed < cfg.ExerciseSeconds; elapsed++ {
		motion := e.debouncer.ReadStable()
		if hasLast && motion != last {
			e.cues.Chirp()
			tr.Transition()
		}
		last, hasLast = motion, true

		reason := guard.Check(e.clock.Now(), motion)
		if reason != domain.PauseNone {
			state := domain.PauseState{Reason: reason, RequiredState: required}
			if e.pause(ctx, state, set, tr, log) {
				return true
			}
			guard.Reset(e.clock.Now())
			hasLast = false
		}

		status := "STAY"
		if motion {
			status = "MOVE"
		}
		e.render(
			fmt.Sprintf("M%d Set %d/%d %s", int(cfg.Mode), set, cfg.Sets, status),
			fmt.Sprintf("%s %ds", ProgressBar(elapsed, cfg.ExerciseSeconds, BarWidth), cfg.ExerciseSeconds-elapsed),
			hal.ColorGreen,
		)

		if e.waiter.Wait(ctx, TickDuration) {
			return true
		}
		tr.Tick()
	}
	return false
}

// pause blocks until resumed and reports whether the session was stopped instead
func (e *Engine) pause(ctx context.Context, state domain.PauseState, set int, tr *Tracker, log *zap.Logger) bool {
	log.Info("session paused", zap.Int("set", set), zap.Stringer("reason", state.Reason))
	tr.Paused(state)
	e.cues.Cancel()
	e.render("PAUSED", state.Reason.Message(), hal.ColorOrange)

	if e.pauses.AwaitResume(ctx, state.RequiredState) {
		return true
	}

	e.cues.OK()
	tr.Resumed()
	log.Info("session resumed", zap.Int("set", set))
	return false
}

// rest counts down the rest after set; there is no pause logic while resting
func (e *Engine) rest(ctx context.Context, cfg domain.SessionConfig, set int, tr *Tracker) bool {
	tr.EnterPhase(set, domain.PhaseRest)
	for elapsed := 0; elapsed < cfg.RestSeconds; elapsed++ {
		e.render(
			fmt.Sprintf("Rest %d/%d", set, cfg.Sets),
			fmt.Sprintf("%s %ds", ProgressBar(elapsed, cfg.RestSeconds, BarWidth), cfg.RestSeconds-elapsed),
			hal.ColorRest,
		)
		if e.waiter.Wait(ctx, TickDuration) {
			return true
		}
		tr.Tick()
	}
	return false
}

// complete shows the completion screen until any button is pressed
func (e *Engine) complete(ctx context.Context) {
	e.render("Complete!", "Press any btn", hal.ColorMagenta)
	for !e.board.AnyPressed() && ctx.Err() == nil {
		e.clock.Sleep(CompletePollInterval)
	}
	e.clock.Sleep(ButtonSettle)
}

func (e *Engine) stopped(log *zap.Logger) domain.Outcome {
	log.Info("session stopped")
	e.render("Stopped", "Returning...", hal.ColorRed)
	e.clock.Sleep(StopHold)
	return domain.OutcomeAborted
}

func (e *Engine) render(line1, line2 string, c hal.Color) {
	if err := e.board.Display.Render(line1, line2, c); err != nil {
		e.log.Debug("display render failed", zap.String("line1", line1), zap.Error(err))
	}
}
