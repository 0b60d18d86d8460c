// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"github.com/D0gZys/PTUT/config"
	"github.com/spf13/cobra"
)

var (
	// TCP connection flags
	tcpAddress string

	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Config file override
	configPath string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "civscope",
	Short: "CI-V radio control and spectrum scope client",
	Long: `Civscope - A CLI tool for controlling CI-V radios and watching their
spectrum scope over the network, a serial port, or a WebSocket bridge.

Provides commands for live frame monitoring, connectivity probing, an
interactive spectrum watch TUI, and scope recording with CSV export.

Connection modes:
  TCP:       --address host:port       (default 127.0.0.1:50002)
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

Settings also load from /etc/civscope/config.hcl,
~/.config/civscope/config.hcl, or ./config.hcl, and from CIVSCOPE_
environment variables; flags win over both.

For WebSocket authentication, the password is read from the
CIVSCOPE_PASSWORD environment variable, or prompted interactively if
not set. The --password flag is intentionally not provided to avoid
leaking credentials in shell history.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load(configPath)
		if tcpAddress == "" {
			tcpAddress = cfg.Radio.Address
		}
	},
}

func init() {
	// TCP connection flags
	rootCmd.PersistentFlags().StringVarP(&tcpAddress, "address", "a", "", "Radio network control address (host:port)")

	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
