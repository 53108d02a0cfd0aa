package sim

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the simulator key bindings
type KeyMap struct {
	Buttons [4]key.Binding
	Hold    key.Binding
	Motion  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Buttons: [4]key.Binding{
			key.NewBinding(
				key.WithKeys("1", "up", "k"),
				key.WithHelp("1/↑", "B1 val+"),
			),
			key.NewBinding(
				key.WithKeys("2", "enter", "right", "l"),
				key.WithHelp("2/enter", "B2 next"),
			),
			key.NewBinding(
				key.WithKeys("3", "down", "j"),
				key.WithHelp("3/↓", "B3 val-"),
			),
			key.NewBinding(
				key.WithKeys("4", "left", "h", "backspace"),
				key.WithHelp("4/←", "B4 back/stop"),
			),
		},
		Hold: key.NewBinding(
			key.WithKeys("H", " "),
			key.WithHelp("space", "hold B4"),
		),
		Motion: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle motion"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns a short help string
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Buttons[1], k.Hold, k.Motion, k.Help, k.Quit}
}

// FullHelp returns the full help string
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Buttons[0], k.Buttons[1], k.Buttons[2], k.Buttons[3]},
		{k.Hold, k.Motion, k.Help, k.Quit},
	}
}
