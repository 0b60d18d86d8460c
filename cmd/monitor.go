// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"time"

	"github.com/D0gZys/PTUT/pkg/civ"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	monitorShowSpectrum bool
	monitorValidate     bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Display decoded CI-V frames in human-readable format",
	Long: `Continuously decode and display CI-V frames as they arrive.

Each frame is shown with a timestamp, its command label, addresses, and
a decoded payload rendering. Spectrum frames are hidden by default
because the scope floods the bus with them; use --show-spectrum to see
them.

Supports TCP, serial, and WebSocket connections.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&monitorShowSpectrum, "show-spectrum", false, "Show spectrum waveform frames")
	monitorCmd.Flags().BoolVar(&monitorValidate, "validate", false, "Report structural anomalies in received frames")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	// Open connection (TCP, serial, or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Civscope - Frame Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	extractor := civ.NewExtractor(cfg.Scope.MaxBuffer)
	extractor.OnResync = func(dropped int) {
		log.Warnf("Buffer bound exceeded, dropped %d bytes while resyncing", dropped)
	}

	buf := make([]byte, 128)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
			if err == ErrConnectionClosed {
				log.Info("Connection closed")
				return nil
			}
			log.Errorf("Read error: %v", err)
			continue
		}

		for _, m := range extractor.Feed(buf[:n]) {
			if !monitorShowSpectrum && civ.Classify(m) == civ.KindSpectrumData {
				continue
			}
			fmt.Printf("%s %s\n", time.Now().Format("15:04:05.000"), civ.FormatMessage(m))

			if monitorValidate {
				for _, anomaly := range civ.ValidateMessage(m) {
					log.Warnf("Anomaly: %s", anomaly.Message)
				}
			}
		}
	}
}
