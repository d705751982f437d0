/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("9")).
	Bold(true)

var warnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("11"))

var rootCmd = &cobra.Command{
	Use:   "uartprobe",
	Short: "Probe UART FIFO capacities and interrupt trigger levels",
	Long: `uartprobe measures the FIFO geometry of 8250-family UARTs by
driving them in loopback mode and watching interrupt status.

It can determine the receiver trigger level, the receiver FIFO size,
the transmitter FIFO size, and the transmitter trigger level. All
measurements restore the port configuration before returning.

Register access goes through /dev/port, so most commands need root.`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.uartprobe.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".uartprobe")
		}
	}

	viper.SetEnvPrefix("UARTPROBE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf(format, args...)))
	os.Exit(1)
}
