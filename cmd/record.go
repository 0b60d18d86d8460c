// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/D0gZys/PTUT/pkg/civ"
	"github.com/D0gZys/PTUT/recording"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	recordOutput   string
	recordDuration int
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record the spectrum scope to a file",
	Long: `Enable spectrum streaming and record every scope frame to disk.

Each frame is stored as a compact CBOR record with its capture time,
the operating frequency, and the scope span. Recording runs until
Ctrl+C or until --duration elapses. Use 'civscope dump' to inspect or
export a recording.

Supports TCP, serial, and WebSocket connections.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVarP(&recordOutput, "output", "o", "capture.civrec", "Output file")
	recordCmd.Flags().IntVarP(&recordDuration, "duration", "d", 0, "Recording duration in seconds (0 = until Ctrl+C)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	// Open connection (TCP, serial, or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	writer, err := recording.NewWriter(recordOutput)
	if err != nil {
		return err
	}
	defer writer.Close()

	fmt.Printf("Civscope - Scope Recorder\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Output: %s\n", recordOutput)
	fmt.Printf("Press Ctrl+C to stop\n\n")

	session := civ.NewSession(civ.SessionConfig{
		RadioAddress:      cfg.Radio.CIVAddress,
		ControllerAddress: cfg.Radio.ControllerAddress,
		SpectrumWidth:     cfg.Scope.Width,
		DefaultFrequency:  cfg.Radio.FrequencyHz,
		MaxBuffer:         cfg.Scope.MaxBuffer,
	})
	session.Connect()

	if _, err := conn.Write(session.EnableStreaming()); err != nil {
		return fmt.Errorf("failed to send enable command: %v", err)
	}

	// Reader goroutine feeds the session and appends spectrum records
	recordErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 512)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				recordErr <- err
				return
			}

			for _, event := range session.Feed(buf[:n]) {
				switch event.Type {
				case civ.EventStreamingStarted:
					log.Info("Streaming confirmed, recording")
				case civ.EventCommandRejected:
					recordErr <- fmt.Errorf("radio rejected the enable command")
					return
				case civ.EventFrequencyChanged:
					log.Infof("Frequency: %s", civ.FormatFrequencyMHz(event.FrequencyHz))
				case civ.EventSpectrumUpdated:
					snap := session.Snapshot()
					if err := writer.Append(recording.Record{
						UnixMillis:  time.Now().UnixMilli(),
						FrequencyHz: snap.FrequencyHz,
						SpanKHz:     cfg.Scope.SpanKHz,
						Amplitudes:  snap.Spectrum,
					}); err != nil {
						recordErr <- err
						return
					}
				case civ.EventResync:
					log.Warnf("Resync: dropped %d buffered bytes", event.Dropped)
				}
			}
		}
	}()

	// Wait for a signal, the duration, or a reader error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var timeout <-chan time.Time
	if recordDuration > 0 {
		timeout = time.After(time.Duration(recordDuration) * time.Second)
	}

	select {
	case <-sigChan:
		fmt.Println()
		log.Info("Interrupted, stopping")
	case <-timeout:
		log.Infof("Duration reached (%d seconds)", recordDuration)
	case err := <-recordErr:
		if err != ErrConnectionClosed {
			log.Errorf("Recording stopped: %v", err)
		}
	}

	// Best effort: ask the radio to stop streaming
	conn.Write(session.DisableStreaming())

	fmt.Printf("\nRecorded %d spectrum frames to %s\n", writer.Count(), recordOutput)
	return nil
}
