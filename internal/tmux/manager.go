// Package tmux mirrors the LCD into a tmux pane for bench runs without a panel.
package tmux

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// ErrNoPaneAvailable is returned when rendering before Setup
var ErrNoPaneAvailable = errors.New("no tmux pane available")

// Config holds tmux settings
type Config struct {
	SessionName string
}

// backend is the part of *gotmux.Tmux the manager uses
type backend interface {
	HasSession(session string) bool
	NewSession(op *gotmux.SessionOptions) (*gotmux.Session, error)
	Command(req ...string) (string, error)
}

// Manager owns the tmux session the display is drawn into
type Manager struct {
	mu       sync.Mutex
	tmux     backend
	config   Config
	attached bool
}

// NewManager connects to the default tmux server
func NewManager(cfg Config) (*Manager, error) {
	t, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("tmux not available: %w", err)
	}
	return newManager(t, cfg), nil
}

func newManager(t backend, cfg Config) *Manager {
	if cfg.SessionName == "" {
		cfg.SessionName = "pirtimer"
	}
	return &Manager{tmux: t, config: cfg}
}

// Setup creates the session if needed and clears its first pane
func (m *Manager) Setup() error {
	m.mu.Lock()
	if !m.tmux.HasSession(m.config.SessionName) {
		if _, err := m.tmux.NewSession(&gotmux.SessionOptions{Name: m.config.SessionName}); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("failed to create tmux session %s: %w", m.config.SessionName, err)
		}
	}
	m.attached = true
	m.mu.Unlock()

	return m.ClearPane()
}

// Close clears the pane and releases it. Later renders return
// ErrNoPaneAvailable. The tmux session itself is left running.
func (m *Manager) Close() error {
	m.mu.Lock()
	attached := m.attached
	m.mu.Unlock()
	if !attached {
		return nil
	}

	err := m.ClearPane()

	m.mu.Lock()
	m.attached = false
	m.mu.Unlock()
	return err
}

// SessionName returns the tmux session in use
func (m *Manager) SessionName() string {
	return m.config.SessionName
}

// AttachCommand is the command a user runs to watch the display
func (m *Manager) AttachCommand() string {
	return fmt.Sprintf("tmux attach -t %s", m.config.SessionName)
}

func (m *Manager) target() string {
	return fmt.Sprintf("%s:0.0", m.config.SessionName)
}
