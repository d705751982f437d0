package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	uartprobe "github.com/allbin/go-uartprobe"
	"github.com/allbin/go-uartprobe/internal/tui/components"
	"github.com/allbin/go-uartprobe/internal/tui/keys"
	"github.com/allbin/go-uartprobe/internal/tui/styles"
)

// probeDoneMsg is sent when a full probe pass over one port finishes.
type probeDoneMsg struct {
	device  string
	results []components.ProbeResult
}

// ProbeModel is the bubbletea model backing the probe dashboard.
type ProbeModel struct {
	ports   []uartprobe.PortInfo
	cursor  int
	prober  *uartprobe.Prober
	results *components.ResultTable
	probed  string

	running bool
	spinner spinner.Model
	help    help.Model
	keys    keys.DashboardKeys
	width   int
}

func NewProbeModel(ports []uartprobe.PortInfo) *ProbeModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusRunning

	return &ProbeModel{
		ports:   ports,
		prober:  uartprobe.NewProber(uartprobe.SystemBinding()),
		results: components.NewResultTable(),
		spinner: sp,
		help:    help.New(),
		keys:    keys.NewDashboardKeys(),
	}
}

func (m *ProbeModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *ProbeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			if !m.running && m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if !m.running && m.cursor < len(m.ports)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Probe):
			if !m.running && len(m.ports) > 0 {
				m.running = true
				m.results.Clear()
				return m, m.probePort(m.ports[m.cursor].Name)
			}
		}

	case probeDoneMsg:
		m.running = false
		m.probed = msg.device
		m.results.SetResults(msg.results)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// probePort runs the full probe suite against one port. Each probe opens
// and restores the port on its own, so a failed measurement never leaves
// the hardware dirty for the next one.
func (m *ProbeModel) probePort(device string) tea.Cmd {
	prober := m.prober
	return func() tea.Msg {
		run := func(name string, fn func(string) (int, error)) components.ProbeResult {
			v, err := fn(device)
			return components.ProbeResult{Name: name, Value: v, Err: err}
		}
		return probeDoneMsg{
			device: device,
			results: []components.ProbeResult{
				run("RX trigger level", prober.RXTriggerLevel),
				run("RX FIFO size", prober.RXFIFOSize),
				run("TX FIFO size", prober.TXFIFOSize),
				run("TX trigger level", prober.TXTriggerLevel),
			},
		}
	}
}

func (m *ProbeModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("UART FIFO Probe"))
	b.WriteString("\n\n")

	if len(m.ports) == 0 {
		b.WriteString(styles.DeviceDim.Render("No UART ports found."))
		b.WriteString("\n")
	}

	for i, p := range m.ports {
		line := fmt.Sprintf("%s  %-10s port=0x%04x irq=%d", p.Family, p.Name, p.PortBase, p.IRQ)
		if !p.ProbeCapable {
			line += "  (not probe capable)"
		}
		switch {
		case i == m.cursor:
			b.WriteString(styles.DeviceSelected.Render("› " + line))
		case p.ProbeCapable:
			b.WriteString(styles.DeviceLine.Render("  " + line))
		default:
			b.WriteString(styles.DeviceDim.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.running {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.StatusRunning.Render(" probing " + m.ports[m.cursor].Name + "..."))
		b.WriteString("\n")
	} else if m.probed != "" {
		b.WriteString(styles.StatusOK.Render("Results for " + m.probed))
		b.WriteString("\n")
		b.WriteString(m.results.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render(m.help.View(m.keys)))

	return b.String()
}
