/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	uartprobe "github.com/allbin/go-uartprobe"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List UART ports and their probe capability",
	Long: `List serial ports on the system along with the driver-reported
family, port base, IRQ and rated FIFO size.

Only port-mapped 8250-family UARTs with a hardware FIFO can be probed;
the Capable column shows which ports qualify.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := uartprobe.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		if len(ports) == 0 {
			fmt.Println("No serial ports found")
			return
		}

		capableOnly, _ := cmd.Flags().GetBool("capable")
		tableFormat, _ := cmd.Flags().GetBool("table")

		if capableOnly {
			filtered := ports[:0]
			for _, p := range ports {
				if p.ProbeCapable {
					filtered = append(filtered, p)
				}
			}
			ports = filtered
			if len(ports) == 0 {
				fmt.Println("No probe-capable ports found")
				return
			}
		}

		if tableFormat {
			renderPortTable(ports)
		} else {
			renderPortsSimple(ports)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("capable", "c", false, "Only show probe-capable ports")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// renderPortTable renders the port list in a styled static table format
func renderPortTable(ports []uartprobe.PortInfo) {
	fmt.Printf("Found %d serial port(s):\n\n", len(ports))

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-12s %-16s %-10s %-5s %-6s %-7s",
		"Port", "Family", "Base", "IRQ", "FIFO", "Capable")
	fmt.Println(headerStyle.Render(header))

	for _, p := range ports {
		base := "-"
		if p.PortBase != 0 {
			base = fmt.Sprintf("0x%04x", p.PortBase)
		}
		capable := "no"
		if p.ProbeCapable {
			capable = "yes"
		}
		row := fmt.Sprintf("%-12s %-16s %-10s %-5d %-6d %-7s",
			p.Name, p.Family, base, p.IRQ, p.RatedFIFOSize, capable)
		fmt.Println(cellStyle.Render(row))
	}
}

// renderPortsSimple renders the port list in simple text format
func renderPortsSimple(ports []uartprobe.PortInfo) {
	for _, p := range ports {
		fmt.Println(p.Path)
	}
}
