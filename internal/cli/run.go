package cli

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/pirtimer/internal/domain"
	"github.com/vburojevic/pirtimer/internal/hal"
	"github.com/vburojevic/pirtimer/internal/menu"
	"github.com/vburojevic/pirtimer/internal/output"
	"github.com/vburojevic/pirtimer/internal/session"
)

// RunCmd runs the button menu on the Raspberry Pi until B4 is held
type RunCmd struct {
	displayFlags `embed:""`
}

// timerDeps lets tests swap time and session ids
type timerDeps struct {
	clock clock.Clock
	newID func() string
}

// Run executes the run command
func (c *RunCmd) Run(globals *Globals) error {
	if err := validateFlags(globals, false, true); err != nil {
		return err
	}
	initial := globals.Config.SessionDefaults()
	if err := initial.Validate(); err != nil {
		return outputErrorCommon(globals, "INVALID_CONFIG", err.Error(), "fix the session section of the config file")
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

	globals.Debug("menu started with %+v", initial)
	return runMenu(ctx, hw.board, initial, sink, log, timerDeps{})
}

// runMenu wires the session engine under the menu and runs the menu loop
func runMenu(ctx context.Context, board *hal.Board, initial domain.SessionConfig, sink output.Sink, log *zap.Logger, deps timerDeps) error {
	engine := session.NewEngine(board, session.Options{
		Clock:  deps.clock,
		Logger: log,
		Events: sink,
		NewID:  deps.newID,
	})
	runner := menu.NewRunner(board, engine, initial, menu.Options{
		Clock:  deps.clock,
		Logger: log,
		Cues:   engine.Cues(),
	})
	return runner.Run(ctx)
}
