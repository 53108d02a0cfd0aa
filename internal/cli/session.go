package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/hal"
	"github.com/vburojevic/pirtimer/internal/output"
	"github.com/vburojevic/pirtimer/internal/session"
)

// SessionCmd runs one session on the hardware without the menu
type SessionCmd struct {
	Mode     string `short:"m" default:"${config_mode}" help:"Detection mode: motion (1) or stillness (2)"`
	Exercise int    `short:"e" default:"${config_exercise}" help:"Exercise seconds per set"`
	Rest     int    `short:"r" default:"${config_rest}" help:"Rest seconds between sets"`
	Sets     int    `short:"n" default:"${config_sets}" help:"Number of sets"`

	displayFlags `embed:""`
}

// sessionConfig builds and checks the session from flags
func (c *SessionCmd) sessionConfig() (domain.SessionConfig, error) {
	mode, err := domain.ParseMode(c.Mode)
	if err != nil {
		return domain.SessionConfig{}, err
	}
	cfg := domain.SessionConfig{
		Mode:            mode,
		ExerciseSeconds: c.Exercise,
		RestSeconds:     c.Rest,
		Sets:            c.Sets,
	}
	return cfg, cfg.Validate()
}

// Run executes the session command
func (c *SessionCmd) Run(globals *Globals) error {
	if err := validateFlags(globals, false, true); err != nil {
		return err
	}
	cfg, err := c.sessionConfig()
	if err != nil {
		return outputErrorCommon(globals, "INVALID_CONFIG", err.Error(), "check --mode, --exercise, --rest and --sets")
	}

	ctx, cancel := signalContext()
	defer cancel()

	log := newLogger(globals)
	defer log.Sync()

	hw, err := openHardware(globals, c.displayFlags, log)
	if err != nil {
		return err
	}
	defer hw.Close()

	sink, closeSink := eventSink(globals, c.EventsDir, log)
	defer closeSink()

	runSession(ctx, hw.board, cfg, sink, log, timerDeps{})
	return nil
}

// runSession runs one session; a stopped session is not an error
func runSession(ctx context.Context, board *hal.Board, cfg domain.SessionConfig, sink output.Sink, log *zap.Logger, deps timerDeps) domain.Outcome {
	engine := session.NewEngine(board, session.Options{
		Clock:  deps.clock,
		Logger: log,
		Events: sink,
		NewID:  deps.newID,
	})
	return engine.Run(ctx, cfg)
}
