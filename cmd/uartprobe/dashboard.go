/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	uartprobe "github.com/allbin/go-uartprobe"
	"github.com/allbin/go-uartprobe/internal/tui/models"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive probe dashboard",
	Long: `Open an interactive terminal UI listing the system's UART ports.

Select a port and run the full probe suite against it; results are shown
in a table alongside the driver's rated FIFO size.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := uartprobe.ListPorts()
		if err != nil {
			fatalf("listing ports: %v", err)
		}

		p := tea.NewProgram(models.NewProbeModel(ports), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fatalf("dashboard: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
