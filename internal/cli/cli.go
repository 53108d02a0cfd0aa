// Package cli holds the kong command tree of pirtimer.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/vburojevic/pirtimer/internal/config"
)

// Version and Commit are set at build time
var (
	Version = "dev"
	Commit  = "none"
)

// CLI is the root command
type CLI struct {
	Format  string `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format (ndjson or text)"`
	Level   string `default:"${config_level}" enum:"debug,info,warn,error" help:"Log level for the JSON logger on stderr"`
	Quiet   bool   `short:"q" help:"Suppress info output (ndjson only)"`
	Verbose bool   `short:"v" help:"Debug logging to stderr"`

	Run     RunCmd     `cmd:"" help:"Run the timer menu on Raspberry Pi hardware"`
	Session SessionCmd `cmd:"" help:"Run one session on hardware without the menu"`
	Sim     SimCmd     `cmd:"" help:"Run the whole device in a terminal simulator"`
	Pins    PinsCmd    `cmd:"" help:"Print the pin map"`
	Schema  SchemaCmd  `cmd:"" help:"Output JSON Schema for NDJSON event types"`
	Config  ConfigCmd  `cmd:"" help:"Show or generate configuration"`
	Version VersionCmd `cmd:"" help:"Show version"`
	Update  UpdateCmd  `cmd:"" help:"Show how to upgrade pirtimer"`
}

// Globals are shared by every command
type Globals struct {
	Format  string
	Level   string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
}

// NewGlobalsWithConfig merges parsed flags with loaded configuration.
// Flags already carry config defaults through kong vars, so only booleans
// need merging.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Globals{
		Format:  c.Format,
		Level:   c.Level,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
}

// Debug prints a debug line to stderr when verbose
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.Verbose {
		fmt.Fprintf(g.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}
