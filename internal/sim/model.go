package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// refreshInterval is how often the model redraws from the device
const refreshInterval = 50 * time.Millisecond

type tickMsg time.Time

// DoneMsg tells the model the menu loop has returned
type DoneMsg struct{ Err error }

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	lcdStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Foreground(lipgloss.Color("#000000"))
	ledOn     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	ledOff    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	beepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Model is the bubbletea model of the simulated panel
type Model struct {
	dev  *Device
	keys KeyMap
	help help.Model
	snap Snapshot
	err  error
	quit bool
}

// New creates the model for dev
func New(dev *Device) Model {
	return Model{
		dev:  dev,
		keys: DefaultKeyMap(),
		help: help.New(),
		snap: dev.Snapshot(),
	}
}

// Err returns the error the menu loop ended with, if any
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Motion):
			m.dev.ToggleMotion()
		case key.Matches(msg, m.keys.Hold):
			m.dev.ToggleHold()
		default:
			for i, b := range m.keys.Buttons {
				if key.Matches(msg, b) {
					m.dev.Press(i)
					break
				}
			}
		}
		m.snap = m.dev.Snapshot()
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.snap = m.dev.Snapshot()
		return m, tick()

	case DoneMsg:
		m.err = msg.Err
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render("PIR interval timer (simulator)"))
	b.WriteString("\n")
	b.WriteString(renderLCD(m.snap))
	b.WriteString("\n")
	b.WriteString(renderStatus(m.snap))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderLCD(s Snapshot) string {
	style := lcdStyle.
		Background(lipgloss.Color(s.Color.String())).
		BorderForeground(lipgloss.Color(s.Color.String()))
	return style.Render(lcdLine(s.Line1) + "\n" + lcdLine(s.Line2))
}

func lcdLine(s string) string {
	r := []rune(s)
	if len(r) > hal.LCDWidth {
		r = r[:hal.LCDWidth]
	}
	return string(r) + strings.Repeat(" ", hal.LCDWidth-len(r))
}

func renderStatus(s Snapshot) string {
	var parts []string
	for i, p := range s.Pressed {
		parts = append(parts, led(fmt.Sprintf("B%d", i+1), p))
	}
	parts = append(parts, led("PIR", s.Motion))
	if s.Held {
		parts = append(parts, ledOn.Render("B4 held"))
	}
	if s.Beeping {
		parts = append(parts, beepStyle.Render("♪ beep"))
	}
	return strings.Join(parts, "  ")
}

func led(label string, on bool) string {
	if on {
		return ledOn.Render("● " + label)
	}
	return ledOff.Render("○ " + label)
}
