// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/D0gZys/PTUT/pkg/civ"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

const (
	pollIntervalSeconds = 2 // Poll the frequency every N seconds while not streaming
	watchMaxLogEntries  = 100
)

// Focus states
const (
	focusMain = iota
	focusFreqInput
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// watchLogEntry is one line in the event log
type watchLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for errors, false for informational events
}

// watchModel is the Bubble Tea model for the spectrum watch TUI
type watchModel struct {
	// Connection manager (for sending commands and reconnection)
	connMgr  *connectionManager
	connInfo string

	// Protocol session and statistics
	session *civ.Session
	stats   *civ.Statistics

	// Event log
	eventLog      []watchLogEntry
	maxLogEntries int

	// Frequency input
	freqInput    textinput.Model
	focusedField int

	// UI state
	width          int
	height         int
	synchronized   bool
	quitting       bool
	connectionLost bool

	// Poll state
	lastPollTime time.Time
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type watchTickMsg time.Time

type watchBatchMsg struct {
	frames       []civ.Message
	droppedBytes int
}

type connectionLostMsg struct{}

type reconnectedMsg struct {
	connInfo string
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialWatchModel(connMgr *connectionManager, connInfo string) watchModel {
	// Initialize text input for frequency in MHz
	ti := textinput.New()
	ti.Placeholder = "145.000000"
	ti.CharLimit = 12
	ti.Width = 14

	session := civ.NewSession(civ.SessionConfig{
		RadioAddress:      cfg.Radio.CIVAddress,
		ControllerAddress: cfg.Radio.ControllerAddress,
		SpectrumWidth:     cfg.Scope.Width,
		DefaultFrequency:  cfg.Radio.FrequencyHz,
		MaxBuffer:         cfg.Scope.MaxBuffer,
	})
	session.Connect()

	return watchModel{
		connMgr:       connMgr,
		connInfo:      connInfo,
		session:       session,
		stats:         civ.NewStatistics(),
		eventLog:      make([]watchLogEntry, 0),
		maxLogEntries: watchMaxLogEntries,
		freqInput:     ti,
		focusedField:  focusMain,
		width:         80,
		height:        24,
		lastPollTime:  time.Now(),
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m watchModel) Init() tea.Cmd {
	return watchTickCmd()
}

func watchTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case watchTickMsg:
		m.stats.CalculateRates()
		// Poll the frequency while the scope is quiet; while streaming
		// the radio reports it on its own
		if !m.connectionLost && m.session.State() != civ.StateStreaming &&
			time.Since(m.lastPollTime) >= pollIntervalSeconds*time.Second {
			m.lastPollTime = time.Now()
			m.connMgr.send(m.session.RequestFrequency())
		}
		return m, watchTickCmd()

	case watchBatchMsg:
		if len(msg.frames) > 0 && !m.synchronized {
			m.synchronized = true
			m.addLogEntry("Synchronized", false)
		}
		for _, frame := range msg.frames {
			m.stats.Update(frame)
		}
		for _, event := range m.session.HandleMessages(msg.frames) {
			m.logEvent(event)
		}
		if msg.droppedBytes > 0 {
			m.stats.RecordResync(msg.droppedBytes)
			m.addLogEntry(fmt.Sprintf("Resync: dropped %d buffered bytes", msg.droppedBytes), true)
		}

	case connectionLostMsg:
		m.connectionLost = true
		m.session.Disconnect()
		m.addLogEntry("Connection lost, reconnecting...", true)

	case reconnectedMsg:
		m.connectionLost = false
		m.connInfo = msg.connInfo
		m.session.Connect()
		m.addLogEntry(fmt.Sprintf("Reconnected: %s", msg.connInfo), false)
	}

	return m, nil
}

func (m watchModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Frequency input has its own key handling
	if m.focusedField == focusFreqInput {
		switch msg.String() {
		case "enter":
			m.applyFrequencyInput()
			m.focusedField = focusMain
			m.freqInput.Blur()
			return m, nil
		case "esc":
			m.focusedField = focusMain
			m.freqInput.Blur()
			return m, nil
		case "ctrl+c":
			return m.quit()
		default:
			var cmd tea.Cmd
			m.freqInput, cmd = m.freqInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()

	case "s":
		if m.connectionLost {
			return m, nil
		}
		if m.session.State() == civ.StateStreaming {
			m.connMgr.send(m.session.DisableStreaming())
			m.addLogEntry("Streaming disabled", false)
		} else {
			m.connMgr.send(m.session.EnableStreaming())
			m.addLogEntry("Streaming requested", false)
		}

	case "f":
		m.focusedField = focusFreqInput
		m.freqInput.SetValue("")
		m.freqInput.Focus()
	}

	return m, nil
}

func (m *watchModel) quit() (tea.Model, tea.Cmd) {
	// Best effort: ask the radio to stop streaming before leaving
	if !m.connectionLost && m.session.State() == civ.StateStreaming {
		m.connMgr.send(m.session.DisableStreaming())
	}
	m.quitting = true
	return *m, tea.Quit
}

// applyFrequencyInput parses the MHz input and tunes the radio
func (m *watchModel) applyFrequencyInput() {
	text := strings.TrimSpace(m.freqInput.Value())
	if text == "" {
		return
	}
	mhz, err := strconv.ParseFloat(text, 64)
	if err != nil || mhz < 0 {
		m.addLogEntry(fmt.Sprintf("Invalid frequency: %q", text), true)
		return
	}
	hz := uint64(math.Round(mhz * 1e6))

	frame, err := m.session.SetFrequency(hz)
	if err != nil {
		m.addLogEntry(fmt.Sprintf("Tune failed: %v", err), true)
		return
	}
	m.connMgr.send(frame)
	m.addLogEntry(fmt.Sprintf("Tuning to %s", civ.FormatFrequencyMHz(hz)), false)
}

// logEvent translates a session event into an event log entry
func (m *watchModel) logEvent(event civ.Event) {
	switch event.Type {
	case civ.EventStreamingStarted:
		m.addLogEntry("Streaming confirmed by radio", false)
	case civ.EventCommandRejected:
		m.addLogEntry("Radio rejected the command (NG)", true)
	case civ.EventFrequencyChanged:
		m.addLogEntry(fmt.Sprintf("Frequency: %s", civ.FormatFrequencyMHz(event.FrequencyHz)), false)
	case civ.EventResync:
		m.addLogEntry(fmt.Sprintf("Resync: dropped %d buffered bytes", event.Dropped), true)
	}
	// EventSpectrumUpdated is rendered, not logged; it fires dozens of
	// times per second
}

func (m *watchModel) addLogEntry(message string, isError bool) {
	entry := watchLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

// renderSparkline maps amplitude bytes onto one row of block runes
func renderSparkline(samples []byte, width int) string {
	if width <= 0 || len(samples) == 0 {
		return ""
	}
	bins := civ.Resample(samples, width)
	var sb strings.Builder
	for _, v := range bins {
		sb.WriteRune(sparkRunes[int(v)*len(sparkRunes)/256])
	}
	return sb.String()
}

func (m watchModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	snap := m.session.Snapshot()

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("CIVSCOPE - SPECTRUM WATCH"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf(
		"Connection: %s | 's' stream, 'f' tune, 'q' quit", m.connInfo)))
	s.WriteString("\n\n")

	// Connection / sync status
	if m.connectionLost {
		s.WriteString(errorStyle.Render("✗ Connection lost - reconnecting..."))
		s.WriteString("\n\n")
	} else if !m.synchronized {
		s.WriteString(warningStyle.Render("⏳ Waiting for radio traffic..."))
		s.WriteString("\n\n")
	}

	// Frequency and streaming state
	statusContent := strings.Builder{}
	statusContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Frequency:"), valueStyle.Render(civ.FormatFrequencyMHz(snap.FrequencyHz)),
		labelStyle.Render("Scope:"), func() string {
			if snap.Streaming {
				return valueStyle.Render("STREAMING")
			}
			return headerStyle.Render(m.session.State().String())
		}(),
	))
	if m.focusedField == focusFreqInput {
		statusContent.WriteString(fmt.Sprintf("\n%s %s MHz",
			labelStyle.Render("Tune to:"), m.freqInput.View()))
	}
	s.WriteString(boxStyle.Render(statusContent.String()))
	s.WriteString("\n\n")

	// Spectrum display
	if snap.Spectrum != nil {
		plotWidth := m.width - 6
		if plotWidth > len(snap.Spectrum) {
			plotWidth = len(snap.Spectrum)
		}
		s.WriteString(labelStyle.Render("Spectrum:"))
		s.WriteString("\n")
		s.WriteString(boxStyle.Render(valueStyle.Render(renderSparkline(snap.Spectrum, plotWidth))))
		s.WriteString("\n\n")
	}

	// Statistics
	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Frames:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.TotalFrames)),
		labelStyle.Render("Spectrum:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.SpectrumFrames)),
		labelStyle.Render("Freq Reports:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.FrequencyReports)),
	))
	if m.stats.StreamingNaks > 0 || m.stats.Resyncs > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("NG Acks:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.StreamingNaks)),
			labelStyle.Render("Resyncs:"), errorStyle.Render(fmt.Sprintf("%d (%d bytes)", m.stats.Resyncs, m.stats.DroppedBytes)),
		))
	}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Frame Rate:"), valueStyle.Render(fmt.Sprintf("%.1f/s", m.stats.FrameRate)),
		labelStyle.Render("Spectrum Rate:"), valueStyle.Render(fmt.Sprintf("%.1f/s", m.stats.SpectrumRate)),
	))
	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	// Calculate how many log entries we can show
	logHeight := m.height - 16 // Reserve space for header, status, and stats
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					warningStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}
