package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/go-uartprobe/internal/tui/colors"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(colors.Mauve).
		Padding(0, 1)

	DeviceLine = lipgloss.NewStyle().
			Foreground(colors.Text)

	DeviceSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Blue)

	DeviceDim = lipgloss.NewStyle().
			Foreground(colors.Subtext0)

	StatusRunning = lipgloss.NewStyle().
			Foreground(colors.Yellow)

	StatusOK = lipgloss.NewStyle().
			Foreground(colors.Green)

	StatusWarn = lipgloss.NewStyle().
			Foreground(colors.Peach)

	StatusError = lipgloss.NewStyle().
			Foreground(colors.Red)

	TableBase = lipgloss.NewStyle().
			Foreground(colors.Text).
			BorderForeground(colors.Surface1)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Teal)

	Help = lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1)
)
