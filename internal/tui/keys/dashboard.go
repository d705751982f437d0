package keys

import "github.com/charmbracelet/bubbles/key"

// DashboardKeys defines the keybindings for the probe dashboard.
type DashboardKeys struct {
	Up    key.Binding
	Down  key.Binding
	Probe key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func NewDashboardKeys() DashboardKeys {
	return DashboardKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous port"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next port"),
		),
		Probe: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p/enter", "probe port"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the collapsed help view.
func (k DashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Probe, k.Quit, k.Help}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k DashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Probe},
		{k.Help, k.Quit},
	}
}
