package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/vburojevic/pirtimer/internal/sim"
)

// SimCmd runs the menu and sessions against a simulated panel in the terminal
type SimCmd struct {
	EventsDir string `default:"${config_events_dir}" help:"Write one NDJSON events file per session into this directory"`
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Run executes the sim command
func (c *SimCmd) Run(globals *Globals) error {
	if err := validateFlags(globals, true, stdoutIsTerminal()); err != nil {
		return err
	}
	initial := globals.Config.SessionDefaults()
	if err := initial.Validate(); err != nil {
		return outputErrorCommon(globals, "INVALID_CONFIG", err.Error(), "fix the session section of the config file")
	}

	ctx, cancel := signalContext()
	defer cancel()

	// The TUI owns the terminal: logs are only kept when verbose, and events
	// only go to files.
	quiet := *globals
	quiet.Quiet = true
	log := newLogger(&Globals{Level: "error", Stderr: globals.Stderr})
	if globals.Verbose {
		log = newLogger(globals)
	}
	defer log.Sync()
	sink, closeSink := eventSink(&quiet, c.EventsDir, log)
	defer closeSink()

	dev := sim.NewDevice(nil)
	p := tea.NewProgram(sim.New(dev), tea.WithAltScreen())

	menuDone := make(chan struct{})
	go func() {
		defer close(menuDone)
		err := runMenu(ctx, dev.Board(), initial, sink, log, timerDeps{})
		p.Send(sim.DoneMsg{Err: err})
	}()

	final, err := p.Run()
	// Quitting the TUI first stops the menu loop too
	cancel()
	<-menuDone
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if m, ok := final.(sim.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
