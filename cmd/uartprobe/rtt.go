/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	uartprobe "github.com/allbin/go-uartprobe"
)

// rttCmd represents the rtt command
var rttCmd = &cobra.Command{
	Use:   "rtt <device>",
	Short: "Measure loopback round-trip time",
	Long: `Measure how long one byte takes to travel out of the transmitter
and back into the receiver.

The port must be physically looped back (TX wired to RX) or attached to
an echoing peer. Unlike the FIFO probes this goes through the tty layer,
so it works on any serial port, not just port-mapped 8250s.

Defaults can be set in the config file under rtt.baud and rtt.timeout.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		device := args[0]
		baud := viper.GetInt("rtt.baud")
		timeout := viper.GetDuration("rtt.timeout")
		count, _ := cmd.Flags().GetInt("count")

		opts := []uartprobe.RTTOption{
			uartprobe.WithRTTBaudRate(baud),
			uartprobe.WithRTTTimeout(timeout),
		}

		var total time.Duration
		completed := 0
		for i := 0; i < count; i++ {
			rtt, err := uartprobe.MeasureRoundTrip(device, opts...)
			switch {
			case errors.Is(err, uartprobe.ErrReadTimeout):
				fmt.Printf("%3d: %s\n", i+1, warnStyle.Render("timeout (is the port looped back?)"))
				continue
			case err != nil:
				fatalf("measuring %s: %v", device, err)
			}
			fmt.Printf("%3d: %v\n", i+1, rtt)
			total += rtt
			completed++
		}

		if completed > 1 {
			fmt.Printf("\naverage over %d round trips: %v\n", completed, total/time.Duration(completed))
		}
	},
}

func init() {
	rootCmd.AddCommand(rttCmd)

	rttCmd.Flags().IntP("baud", "b", 19200, "Baud rate for the measurement")
	rttCmd.Flags().DurationP("timeout", "T", time.Second, "Per-byte read timeout")
	rttCmd.Flags().IntP("count", "n", 1, "Number of round trips to measure")

	_ = viper.BindPFlag("rtt.baud", rttCmd.Flags().Lookup("baud"))
	_ = viper.BindPFlag("rtt.timeout", rttCmd.Flags().Lookup("timeout"))
}
