package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/vburojevic/pirtimer/internal/domain"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Level   string `mapstructure:"level"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	Session  SessionConfig  `mapstructure:"session"`
	Hardware HardwareConfig `mapstructure:"hardware"`
	Display  DisplayConfig  `mapstructure:"display"`

	// EventsDir enables one NDJSON file per session when set
	EventsDir string `mapstructure:"events_dir"`
}

// SessionConfig holds the initial menu values
type SessionConfig struct {
	Mode            int `mapstructure:"mode"`
	ExerciseSeconds int `mapstructure:"exercise_seconds"`
	RestSeconds     int `mapstructure:"rest_seconds"`
	Sets            int `mapstructure:"sets"`
}

// HardwareConfig holds the pin map
type HardwareConfig struct {
	// Buttons are BCM GPIO numbers for B1..B4
	Buttons     []int  `mapstructure:"buttons"`
	PIRPin      int    `mapstructure:"pir_pin"`
	BuzzerPin   int    `mapstructure:"buzzer_pin"`
	I2CBus      string `mapstructure:"i2c_bus"`
	GrovePiAddr int    `mapstructure:"grovepi_addr"`
}

// DisplayConfig selects where the LCD frames go
type DisplayConfig struct {
	Kind         string `mapstructure:"kind"`
	SerialDevice string `mapstructure:"serial_device"`
	SerialBaud   int    `mapstructure:"serial_baud"`
	TmuxSession  string `mapstructure:"tmux_session"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Level:   "info",
		Quiet:   false,
		Verbose: false,
		Session: SessionConfig{
			Mode:            int(domain.ModeMotion),
			ExerciseSeconds: 30,
			RestSeconds:     10,
			Sets:            3,
		},
		Hardware: HardwareConfig{
			Buttons:     []int{22, 23, 24, 25},
			PIRPin:      8,
			BuzzerPin:   3,
			I2CBus:      "",
			GrovePiAddr: 0x04,
		},
		Display: DisplayConfig{
			Kind:         "grove",
			SerialDevice: "/dev/ttyACM0",
			SerialBaud:   9600,
			TmuxSession:  "pirtimer",
		},
	}
}

// SessionDefaults converts the session section into the domain type
func (c *Config) SessionDefaults() domain.SessionConfig {
	return domain.SessionConfig{
		Mode:            domain.Mode(c.Session.Mode),
		ExerciseSeconds: c.Session.ExerciseSeconds,
		RestSeconds:     c.Session.RestSeconds,
		Sets:            c.Session.Sets,
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variables
	v.SetEnvPrefix("PIRTIMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Short names for the settings people change most. A name must not equal
	// a section key: PIRTIMER_DISPLAY would shadow the whole display map.
	v.BindEnv("format", "PIRTIMER_FORMAT")
	v.BindEnv("level", "PIRTIMER_LEVEL")
	v.BindEnv("quiet", "PIRTIMER_QUIET")
	v.BindEnv("verbose", "PIRTIMER_VERBOSE")
	v.BindEnv("session.mode", "PIRTIMER_MODE")
	v.BindEnv("display.kind", "PIRTIMER_DISPLAY_KIND")
	v.BindEnv("events_dir", "PIRTIMER_EVENTS_DIR")

	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("level", cfg.Level)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("session.mode", cfg.Session.Mode)
	v.SetDefault("session.exercise_seconds", cfg.Session.ExerciseSeconds)
	v.SetDefault("session.rest_seconds", cfg.Session.RestSeconds)
	v.SetDefault("session.sets", cfg.Session.Sets)
	v.SetDefault("hardware.buttons", cfg.Hardware.Buttons)
	v.SetDefault("hardware.pir_pin", cfg.Hardware.PIRPin)
	v.SetDefault("hardware.buzzer_pin", cfg.Hardware.BuzzerPin)
	v.SetDefault("hardware.i2c_bus", cfg.Hardware.I2CBus)
	v.SetDefault("hardware.grovepi_addr", cfg.Hardware.GrovePiAddr)
	v.SetDefault("display.kind", cfg.Display.Kind)
	v.SetDefault("display.serial_device", cfg.Display.SerialDevice)
	v.SetDefault("display.serial_baud", cfg.Display.SerialBaud)
	v.SetDefault("display.tmux_session", cfg.Display.TmuxSession)
	v.SetDefault("events_dir", cfg.EventsDir)

	return v
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := newViper()

	if path := findConfigFile(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// ConfigFile returns the path to the config file Load would read
func ConfigFile() string {
	return findConfigFile()
}

// searchDirs lists config directories, highest precedence first
func searchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "pirtimer"))
	}
	return append(dirs, "/etc/pirtimer")
}

func findConfigFile() string {
	names := []string{".pirtimer.yaml", ".pirtimer.yml", "pirtimer.yaml", "pirtimer.yml"}
	for _, dir := range searchDirs() {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				if abs, err := filepath.Abs(path); err == nil {
					return abs
				}
				return path
			}
		}
	}
	return ""
}

// applyEnvOverrides applies PIRTIMER_* variables on top of a file-loaded config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PIRTIMER_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("PIRTIMER_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("PIRTIMER_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("PIRTIMER_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("PIRTIMER_MODE"); v != "" {
		if mode, err := strconv.Atoi(v); err == nil {
			cfg.Session.Mode = mode
		}
	}
	if v := os.Getenv("PIRTIMER_DISPLAY_KIND"); v != "" {
		cfg.Display.Kind = v
	}
	if v := os.Getenv("PIRTIMER_EVENTS_DIR"); v != "" {
		cfg.EventsDir = v
	}
}
