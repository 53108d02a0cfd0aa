package menu

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/hal"
	"github.com/vburojevic/pirtimer/internal/session"
)

// Button timing
const (
	// IdlePoll is the button polling interval while nothing is pressed
	IdlePoll = 10 * time.Millisecond
	// HoldPoll is the polling interval while measuring a B4 hold
	HoldPoll = 50 * time.Millisecond
	// ShortPress is the longest B4 press that still means "previous screen"
	ShortPress = 500 * time.Millisecond
	// HoldToQuit is how long B4 must be held to quit
	HoldToQuit = 2 * time.Second
	// BackToMenuHold keeps the "Back to Menu" screen visible
	BackToMenuHold = 500 * time.Millisecond
)

// SessionRunner runs one exercise session
type SessionRunner interface {
	Run(ctx context.Context, cfg domain.SessionConfig) domain.Outcome
}

// Options configures a Runner. Zero values select production defaults.
type Options struct {
	Clock  clock.Clock
	Logger *zap.Logger
	Cues   *session.Cues
}

// Runner is the top-level button loop
type Runner struct {
	board    *hal.Board
	sessions SessionRunner
	clock    clock.Clock
	log      *zap.Logger
	cues     *session.Cues
	state    State
	screen   Screen
}

// NewRunner creates a menu starting from initial
func NewRunner(board *hal.Board, sessions SessionRunner, initial domain.SessionConfig, opts Options) *Runner {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cues == nil {
		opts.Cues = session.NewCues(board.Buzzer, opts.Clock, opts.Logger)
	}
	return &Runner{
		board:    board,
		sessions: sessions,
		clock:    opts.Clock,
		log:      opts.Logger,
		cues:     opts.Cues,
		state:    NewState(initial),
		screen:   ScreenMode,
	}
}

// State returns the current menu values
func (r *Runner) State() State {
	return r.state
}

// Screen returns the current page
func (r *Runner) Screen() Screen {
	return r.screen
}

// Run polls the buttons until B4 is held for HoldToQuit or ctx is done
func (r *Runner) Run(ctx context.Context) error {
	defer r.goodbye()
	r.show()

	for ctx.Err() == nil {
		switch {
		case r.pressed(hal.ButtonUp):
			r.cues.OK()
			r.state.Increment(r.screen)
			r.show()
			r.clock.Sleep(session.ButtonSettle)

		case r.pressed(hal.ButtonNext):
			r.cues.OK()
			next, done := r.screen.Next()
			if done {
				r.startSession(ctx)
			}
			r.screen = next
			r.show()
			r.clock.Sleep(session.ButtonSettle)

		case r.pressed(hal.ButtonDown):
			r.cues.OK()
			r.state.Decrement(r.screen)
			r.show()
			r.clock.Sleep(session.ButtonSettle)

		case r.pressed(hal.ButtonBack):
			held, quit := r.measureHold(ctx)
			if quit {
				r.log.Info("quit requested", zap.Duration("held", held))
				r.cues.Alert()
				return nil
			}
			if held < ShortPress {
				r.cues.OK()
				r.screen = r.screen.Prev()
				r.show()
			}
			r.clock.Sleep(session.ButtonSettle)

		default:
			r.clock.Sleep(IdlePoll)
		}
	}
	return nil
}

// measureHold follows a B4 press until release and reports whether it became a quit
func (r *Runner) measureHold(ctx context.Context) (time.Duration, bool) {
	start := r.clock.Now()
	for r.pressed(hal.ButtonBack) && ctx.Err() == nil {
		if held := r.clock.Since(start); held > HoldToQuit {
			return held, true
		}
		r.clock.Sleep(HoldPoll)
	}
	return r.clock.Since(start), false
}

func (r *Runner) startSession(ctx context.Context) {
	cfg := r.state.SessionConfig()
	r.log.Info("starting session",
		zap.Stringer("mode", cfg.Mode),
		zap.Int("exercise_seconds", cfg.ExerciseSeconds),
		zap.Int("rest_seconds", cfg.RestSeconds),
		zap.Int("sets", cfg.Sets),
	)

	outcome := r.sessions.Run(ctx, cfg)

	r.log.Info("session returned", zap.String("outcome", string(outcome)))
	r.render("Back to Menu", "", hal.ColorGreen)
	r.clock.Sleep(BackToMenuHold)
}

func (r *Runner) pressed(button int) bool {
	return r.board.Buttons[button].Pressed()
}

func (r *Runner) show() {
	r.render(r.screen.Render(r.state))
}

func (r *Runner) goodbye() {
	r.render("Goodbye!", "", hal.ColorGray)
}

func (r *Runner) render(line1, line2 string, c hal.Color) {
	if err := r.board.Display.Render(line1, line2, c); err != nil {
		r.log.Debug("display render failed", zap.String("line1", line1), zap.Error(err))
	}
}
