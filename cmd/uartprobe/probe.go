/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	uartprobe "github.com/allbin/go-uartprobe"
)

var resultStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("10")).
	Bold(true)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run FIFO measurements against a UART port",
	Long: `Probe a UART port in loopback mode.

Each measurement configures the port for loopback, drives it with test
data, and restores the original configuration afterwards. The port must
not be open elsewhere while probing.`,
}

var rxTrigCmd = &cobra.Command{
	Use:   "rx-trig <device>",
	Short: "Measure the receiver interrupt trigger level",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProbe(args[0], "RX trigger level", defaultProber().RXTriggerLevel)
	},
}

var rxFIFOCmd = &cobra.Command{
	Use:   "rx-fifo <device>",
	Short: "Measure the receiver FIFO size",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProbe(args[0], "RX FIFO size", defaultProber().RXFIFOSize)
	},
}

var txFIFOCmd = &cobra.Command{
	Use:   "tx-fifo <device>",
	Short: "Measure the transmitter FIFO size",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProbe(args[0], "TX FIFO size", defaultProber().TXFIFOSize)
	},
}

var txTrigCmd = &cobra.Command{
	Use:   "tx-trig <device>",
	Short: "Measure the transmitter interrupt trigger level",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runProbe(args[0], "TX trigger level", defaultProber().TXTriggerLevel)
	},
}

var probeAllCmd = &cobra.Command{
	Use:   "all <device>",
	Short: "Run every measurement against a port",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := defaultProber()
		probes := []struct {
			name string
			fn   func(string) (int, error)
		}{
			{"RX trigger level", p.RXTriggerLevel},
			{"RX FIFO size", p.RXFIFOSize},
			{"TX FIFO size", p.TXFIFOSize},
			{"TX trigger level", p.TXTriggerLevel},
		}
		for _, probe := range probes {
			runProbe(args[0], probe.name, probe.fn)
		}
	},
}

func defaultProber() *uartprobe.Prober {
	return uartprobe.NewProber(uartprobe.SystemBinding())
}

// runProbe runs one measurement and prints the result. Resolution and
// contention failures abort the process; an inconclusive measurement is
// reported as a warning so "probe all" can keep going.
func runProbe(device, name string, fn func(string) (int, error)) {
	value, err := fn(device)
	switch {
	case err == nil:
		fmt.Printf("%-18s %s\n", name+":", resultStyle.Render(fmt.Sprintf("%d", value)))
	case errors.Is(err, uartprobe.ErrNoTriggerDetected),
		errors.Is(err, uartprobe.ErrOverrunNotDetected),
		errors.Is(err, uartprobe.ErrLoopbackFailed):
		fmt.Printf("%-18s %s\n", name+":", warnStyle.Render(err.Error()))
	case errors.Is(err, uartprobe.ErrDeviceBusy):
		fatalf("%s is busy: close other users of the port and retry", device)
	default:
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("probing %s: %v", device, err)))
		os.Exit(1)
	}
}

func init() {
	probeCmd.AddCommand(rxTrigCmd)
	probeCmd.AddCommand(rxFIFOCmd)
	probeCmd.AddCommand(txFIFOCmd)
	probeCmd.AddCommand(txTrigCmd)
	probeCmd.AddCommand(probeAllCmd)
	rootCmd.AddCommand(probeCmd)
}
