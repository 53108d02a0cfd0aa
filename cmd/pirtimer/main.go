package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/pirtimer/internal/cli"
	"github.com/vburojevic/pirtimer/internal/config"
)

const quickStart = `pirtimer - PIR-gated interval exercise timer

Quick start:
  pirtimer run                          Menu on the Raspberry Pi (GrovePi LCD)
  pirtimer run --display tmux           Mirror the LCD into tmux
  pirtimer sim                          Try it in the terminal
  pirtimer session -m motion -e 30 -r 10 -n 3

For help:
  pirtimer --help                       All commands and flags
  pirtimer schema --format ndjson       JSON Schema of the event stream
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format":        cfg.Format,
		"config_level":         cfg.Level,
		"config_mode":          strconv.Itoa(cfg.Session.Mode),
		"config_exercise":      strconv.Itoa(cfg.Session.ExerciseSeconds),
		"config_rest":          strconv.Itoa(cfg.Session.RestSeconds),
		"config_sets":          strconv.Itoa(cfg.Session.Sets),
		"config_display":       cfg.Display.Kind,
		"config_serial_device": cfg.Display.SerialDevice,
		"config_tmux_session":  cfg.Display.TmuxSession,
		"config_events_dir":    cfg.EventsDir,
	}

	ctx := kong.Parse(&c,
		kong.Name("pirtimer"),
		kong.Description("pirtimer: interval exercise timer gated on a PIR motion sensor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		os.Exit(1)
	}
}
