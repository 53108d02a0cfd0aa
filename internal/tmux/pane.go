package tmux

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// ClearPane clears the pane content and scrollback history
func (m *Manager) ClearPane() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.attached {
		return ErrNoPaneAvailable
	}

	target := m.target()

	// Send reset terminal state + clear screen
	if _, err := m.tmux.Command("send-keys", "-t", target, "-R"); err != nil {
		return fmt.Errorf("failed to reset terminal: %w", err)
	}

	// Clear the scrollback history
	if _, err := m.tmux.Command("clear-history", "-t", target); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	if _, err := m.tmux.Command("send-keys", "-t", target, "clear", "Enter"); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}

	return nil
}

// Render redraws the pane as a framed 16x2 LCD with the backlight color below it
func (m *Manager) Render(line1, line2 string, c hal.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.attached {
		return ErrNoPaneAvailable
	}

	cmds := []string{"clear"}
	for _, line := range LCDFrame(line1, line2, c) {
		cmds = append(cmds, fmt.Sprintf("echo '%s'", escapeTmuxString(line)))
	}
	_, err := m.tmux.Command("send-keys", "-t", m.target(), strings.Join(cmds, "; "), "Enter")
	return err
}

// LCDFrame draws both lines inside a box the width of the panel
func LCDFrame(line1, line2 string, c hal.Color) []string {
	border := strings.Repeat("─", hal.LCDWidth)
	return []string{
		"┌" + border + "┐",
		"│" + padRunes(line1, hal.LCDWidth) + "│",
		"│" + padRunes(line2, hal.LCDWidth) + "│",
		"└" + border + "┘",
		" backlight " + c.String(),
	}
}

// padRunes pads or cuts s to width runes
func padRunes(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return string([]rune(s)[:width])
}

// escapeTmuxString escapes special characters for tmux send-keys
func escapeTmuxString(s string) string {
	// Escape single quotes for shell
	s = strings.ReplaceAll(s, "'", "'\"'\"'")
	// Escape backslashes
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return s
}
