// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/D0gZys/PTUT/pkg/civ"
	"github.com/spf13/cobra"
)

var probeTimeout int

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test connection by polling the radio for its frequency",
	Long: `Send a read-frequency command and wait for a valid CI-V frame.

This command connects to the radio, polls it once, and waits for any
complete, well-framed reply. Garbage bytes on the line are ignored.

Exit codes:
  0 - Valid frame received before timeout
  1 - Timeout reached without receiving a valid frame
  2 - Connection error

Useful for testing connectivity to a radio or a WebSocket bridge.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 10, "Timeout in seconds to wait for a frame")
}

func runProbe(cmd *cobra.Command, args []string) error {
	// Open connection (TCP, serial, or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Civscope - Connection Probe\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", probeTimeout)
	fmt.Printf("Waiting for valid CI-V frame...\n\n")

	poll := civ.NewReadFrequencyCommand(cfg.Radio.CIVAddress, cfg.Radio.ControllerAddress)
	if _, err := conn.Write(poll); err != nil {
		fmt.Fprintf(os.Stderr, "Write error: %v\n", err)
		os.Exit(2)
	}

	extractor := civ.NewExtractor(cfg.Scope.MaxBuffer)
	buf := make([]byte, 128)

	// Channel for frame reception
	frameChan := make(chan civ.Message, 1)
	errChan := make(chan error, 1)

	// Reader goroutine
	go func() {
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}

			if msgs := extractor.Feed(buf[:n]); len(msgs) > 0 {
				frameChan <- msgs[0]
				return
			}
		}
	}()

	// Wait for frame or timeout
	select {
	case m := <-frameChan:
		fmt.Printf("SUCCESS: Received valid frame\n")
		fmt.Printf("  Kind: %s (0x%02X)\n", civ.Classify(m), m.Command())
		fmt.Printf("  From: 0x%02X to 0x%02X\n", m.Source(), m.Destination())
		fmt.Printf("  Length: %d bytes\n", len(m))
		if civ.Classify(m) == civ.KindFrequencyReport {
			hz := civ.DecodeFrequency(m.Payload()[:5])
			fmt.Printf("  Frequency: %s\n", civ.FormatFrequencyMHz(hz))
		}
		os.Exit(0)

	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-time.After(time.Duration(probeTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No valid frame received within %d seconds\n", probeTimeout)
		os.Exit(1)
	}

	return nil
}
