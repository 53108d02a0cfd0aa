package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/pirtimer/internal/config"
	"github.com/vburojevic/pirtimer/internal/output"
)

// ConfigCmd groups the configuration subcommands
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"1" help:"Show the effective configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show the config file in use"`
	Generate ConfigGenerateCmd `cmd:"" help:"Print a sample config file"`
}

// ConfigShowCmd prints the effective configuration
type ConfigShowCmd struct{}

// ConfigOutput is the NDJSON form of the configuration
type ConfigOutput struct {
	Type          string                `json:"type"`
	SchemaVersion int                   `json:"schemaVersion"`
	ConfigFile    string                `json:"config_file,omitempty"`
	Format        string                `json:"format"`
	Level         string                `json:"level"`
	Quiet         bool                  `json:"quiet"`
	Verbose       bool                  `json:"verbose"`
	Session       config.SessionConfig  `json:"session"`
	Hardware      config.HardwareConfig `json:"hardware"`
	Display       config.DisplayConfig  `json:"display"`
	EventsDir     string                `json:"events_dir,omitempty"`
}

func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(ConfigOutput{
			Type:          "config",
			SchemaVersion: output.SchemaVersion,
			ConfigFile:    path,
			Format:        globals.Format,
			Level:         globals.Level,
			Quiet:         globals.Quiet,
			Verbose:       globals.Verbose,
			Session:       cfg.Session,
			Hardware:      cfg.Hardware,
			Display:       cfg.Display,
			EventsDir:     cfg.EventsDir,
		})
	}

	w := globals.Stdout
	fmt.Fprintln(w, "Current Configuration:")
	if path != "" {
		fmt.Fprintf(w, "  (loaded from %s)\n", path)
	}
	fmt.Fprintf(w, "  format: %s\n", globals.Format)
	fmt.Fprintf(w, "  level: %s\n", globals.Level)
	fmt.Fprintf(w, "  quiet: %t\n", globals.Quiet)
	fmt.Fprintf(w, "  verbose: %t\n", globals.Verbose)
	fmt.Fprintln(w, "Session:")
	fmt.Fprintf(w, "  mode: %d\n", cfg.Session.Mode)
	fmt.Fprintf(w, "  exercise_seconds: %d\n", cfg.Session.ExerciseSeconds)
	fmt.Fprintf(w, "  rest_seconds: %d\n", cfg.Session.RestSeconds)
	fmt.Fprintf(w, "  sets: %d\n", cfg.Session.Sets)
	fmt.Fprintln(w, "Hardware:")
	fmt.Fprintf(w, "  buttons: %v\n", cfg.Hardware.Buttons)
	fmt.Fprintf(w, "  pir_pin: D%d\n", cfg.Hardware.PIRPin)
	fmt.Fprintf(w, "  buzzer_pin: D%d\n", cfg.Hardware.BuzzerPin)
	fmt.Fprintf(w, "  i2c_bus: %q\n", cfg.Hardware.I2CBus)
	fmt.Fprintf(w, "  grovepi_addr: 0x%02x\n", cfg.Hardware.GrovePiAddr)
	fmt.Fprintln(w, "Display:")
	fmt.Fprintf(w, "  kind: %s\n", cfg.Display.Kind)
	fmt.Fprintf(w, "  serial_device: %s\n", cfg.Display.SerialDevice)
	fmt.Fprintf(w, "  serial_baud: %d\n", cfg.Display.SerialBaud)
	fmt.Fprintf(w, "  tmux_session: %s\n", cfg.Display.TmuxSession)
	if cfg.EventsDir != "" {
		fmt.Fprintf(w, "events_dir: %s\n", cfg.EventsDir)
	}
	return nil
}

// ConfigPathCmd prints which config file is used
type ConfigPathCmd struct{}

// ConfigPathOutput is the NDJSON form of the config path
type ConfigPathOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Path          string `json:"path"`
	Found         bool   `json:"found"`
}

func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(ConfigPathOutput{
			Type:          "config_path",
			SchemaVersion: output.SchemaVersion,
			Path:          path,
			Found:         path != "",
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "Searched: ./.pirtimer.yaml, ~/.pirtimer.yaml, <user config dir>/pirtimer/pirtimer.yaml, /etc/pirtimer/pirtimer.yaml")
		return nil
	}
	fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	return nil
}

// ConfigGenerateCmd prints a sample config file
type ConfigGenerateCmd struct{}

const sampleConfig = `# pirtimer configuration file
# Place at ./.pirtimer.yaml, ~/.pirtimer.yaml or /etc/pirtimer/pirtimer.yaml
# Every key can also be set from the environment, e.g. PIRTIMER_FORMAT=ndjson

format: text
level: info
quiet: false
verbose: false

# Initial menu values
session:
  mode: 1              # 1 = keep moving, 2 = keep still
  exercise_seconds: 30
  rest_seconds: 10
  sets: 3

# BCM GPIO numbers for B1..B4 and GrovePi digital ports
hardware:
  buttons: [22, 23, 24, 25]
  pir_pin: 8
  buzzer_pin: 3
  i2c_bus: ""          # empty = first bus
  grovepi_addr: 4

# grove, serial or tmux
display:
  kind: grove
  serial_device: /dev/ttyACM0
  serial_baud: 9600
  tmux_session: pirtimer

# One NDJSON file per session; empty disables
events_dir: ""
`

func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
