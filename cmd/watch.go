// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/D0gZys/PTUT/pkg/civ"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive TUI for the radio's spectrum scope",
	Long: `Watch the radio's spectrum scope in an interactive terminal UI.

This command enables spectrum streaming on the radio and renders the
waveform live, alongside the operating frequency, frame statistics,
and an event log.

Features:
  - Live spectrum display
  - Frequency readout and tuning
  - Streaming on/off control
  - Statistics tracking
  - Event logging
  - Automatic reconnection on connection loss

Keys: 's' toggles streaming, 'f' edits the frequency, 'q' quits.

Supports TCP, serial, and WebSocket connections.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// connectionManager handles connection lifecycle and reconnection
type connectionManager struct {
	conn     Connection
	connInfo string
	mu       sync.RWMutex
	p        *tea.Program
	done     chan struct{}
}

func (cm *connectionManager) getConn() Connection {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.conn
}

func (cm *connectionManager) setConn(conn Connection, connInfo string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.conn = conn
	cm.connInfo = connInfo
}

// send writes a command frame to the current connection. Write errors
// surface through the reader loop, so they are ignored here.
func (cm *connectionManager) send(m civ.Message) {
	if conn := cm.getConn(); conn != nil {
		conn.Write(m)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Open initial connection (TCP, serial, or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}

	// Create connection manager
	cm := &connectionManager{
		conn:     conn,
		connInfo: connInfo,
		done:     make(chan struct{}),
	}

	// Create TUI model with connection manager
	m := initialWatchModel(cm, connInfo)

	// Create TUI program with alt screen
	p := tea.NewProgram(m, tea.WithAltScreen())
	cm.p = p

	// Start reader goroutine
	go cm.readerLoop()

	// Ask for the current frequency right away
	cm.send(civ.NewReadFrequencyCommand(cfg.Radio.CIVAddress, cfg.Radio.ControllerAddress))

	// Run TUI
	if _, err := p.Run(); err != nil {
		close(cm.done) // Signal goroutines to stop
		cm.getConn().Close()
		return fmt.Errorf("TUI error: %v", err)
	}

	close(cm.done) // Signal goroutines to stop
	cm.getConn().Close()
	return nil
}

// readerLoop handles reading from connection with automatic reconnection
func (cm *connectionManager) readerLoop() {
	for {
		select {
		case <-cm.done:
			return
		default:
		}

		// Start reading from current connection
		connLost := cm.readFromConnection()

		if connLost {
			// Notify TUI about connection loss
			cm.p.Send(connectionLostMsg{})

			// Attempt to reconnect
			if !cm.reconnect() {
				return // Shutdown requested during reconnect
			}
		}
	}
}

// readFromConnection extracts frames from the connection until it
// fails. Returns true if connection was lost, false if shutdown
// requested.
func (cm *connectionManager) readFromConnection() bool {
	extractor := civ.NewExtractor(cfg.Scope.MaxBuffer)

	// Buffered channels for batching frames and resync notices
	frameChan := make(chan civ.Message, 512)
	dropChan := make(chan int, 16)
	readerDone := make(chan struct{})

	extractor.OnResync = func(dropped int) {
		select {
		case dropChan <- dropped:
		default:
		}
	}

	// Reader goroutine - extracts frames and sends to batch channel
	go func() {
		defer close(readerDone)
		buf := make([]byte, 128)
		for {
			select {
			case <-cm.done:
				return
			default:
			}

			conn := cm.getConn()
			if conn == nil {
				return
			}

			n, err := conn.Read(buf)
			if err != nil {
				// Check if we're shutting down
				select {
				case <-cm.done:
					return
				default:
					// For WebSocket connections, a read error usually means
					// the connection is permanently closed
					if err == ErrConnectionClosed {
						return
					}
					// Brief pause before retry on transient errors (e.g., serial)
					time.Sleep(10 * time.Millisecond)
					continue
				}
			}

			for _, m := range extractor.Feed(buf[:n]) {
				select {
				case frameChan <- m:
				default:
				}
			}
		}
	}()

	// Batch sender goroutine - sends batched updates to TUI at fixed rate
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-cm.done:
				return
			case <-readerDone:
				return
			case <-ticker.C:
				var batch watchBatchMsg

				// Drain all available frames from the channel
			drainLoop:
				for {
					select {
					case m := <-frameChan:
						batch.frames = append(batch.frames, m)
					case dropped := <-dropChan:
						batch.droppedBytes += dropped
					default:
						break drainLoop
					}
				}

				// Send batch if we have anything
				if len(batch.frames) > 0 || batch.droppedBytes > 0 {
					cm.p.Send(batch)
				}
			}
		}
	}()

	// Wait for reader to finish (connection lost or shutdown)
	<-readerDone

	// Check if we're shutting down
	select {
	case <-cm.done:
		return false
	default:
		return true // Connection lost
	}
}

// reconnect attempts to reconnect with exponential backoff
// Returns false if shutdown was requested during reconnection
func (cm *connectionManager) reconnect() bool {
	// Close old connection
	if conn := cm.getConn(); conn != nil {
		conn.Close()
	}

	backoff := 1 * time.Second
	maxBackoff := 30 * time.Second

	for {
		select {
		case <-cm.done:
			return false
		case <-time.After(backoff):
		}

		// Attempt to reconnect
		conn, connInfo, err := OpenConnection()
		if err == nil {
			cm.setConn(conn, connInfo)

			// Notify TUI about reconnection
			cm.p.Send(reconnectedMsg{connInfo: connInfo})

			// Re-poll the frequency on the fresh connection
			cm.send(civ.NewReadFrequencyCommand(cfg.Radio.CIVAddress, cfg.Radio.ControllerAddress))

			return true
		}

		// Exponential backoff
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
