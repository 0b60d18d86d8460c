// SPDX-License-Identifier: Apache-2.0

package civ

import "sync"

// State is the session's position in the streaming lifecycle.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateStreaming
)

// String returns the state's name for display and logging.
func (s State) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateStreaming:
		return "STREAMING"
	default:
		return "DISCONNECTED"
	}
}

// SessionState is an immutable snapshot of the radio session: current
// center frequency, the last resampled spectrum (nil until one
// arrives), and whether streaming is confirmed active.
type SessionState struct {
	FrequencyHz uint64
	Spectrum    []byte
	Streaming   bool
}

// EventType tags a session state change produced by inbound traffic.
type EventType int

const (
	// EventStreamingStarted fires when the radio acknowledges the
	// enable-streaming command.
	EventStreamingStarted EventType = iota

	// EventCommandRejected fires on an NG ack: the command failed but
	// the session stays usable.
	EventCommandRejected

	// EventFrequencyChanged fires when a frequency report or
	// set-frequency echo carries a different center frequency.
	EventFrequencyChanged

	// EventSpectrumUpdated fires for each spectrum frame folded into
	// the session while streaming.
	EventSpectrumUpdated

	// EventResync fires when the extractor's buffer bound forced a
	// clear. Informational; the session recovers by itself.
	EventResync
)

// Event describes one session state change. FrequencyHz is set for
// EventFrequencyChanged, Dropped for EventResync.
type Event struct {
	Type        EventType
	FrequencyHz uint64
	Dropped     int
}

// SessionConfig carries the tunables of a Session. Zero values select
// the package defaults.
type SessionConfig struct {
	RadioAddress      byte
	ControllerAddress byte
	SpectrumWidth     int
	DefaultFrequency  uint64
	MaxBuffer         int
}

// Session is the client-side controller for one radio connection. It
// owns the frame extractor and the session state; Feed and the command
// builders are the only mutators, and both sides of the state are
// published to concurrent readers exclusively through Snapshot.
//
// Feed itself is synchronous and non-blocking: the caller performs the
// transport reads and hands bytes over in arrival order.
type Session struct {
	mu sync.Mutex

	radioAddr byte
	ctrlAddr  byte
	width     int

	state         State
	pendingEnable bool
	freqHz        uint64
	spectrum      []byte

	extractor   *Extractor
	lastDropped int
}

// NewSession creates a session in the Disconnected state.
func NewSession(cfg SessionConfig) *Session {
	if cfg.RadioAddress == 0 {
		cfg.RadioAddress = DefaultRadioAddress
	}
	if cfg.ControllerAddress == 0 {
		cfg.ControllerAddress = DefaultControllerAddress
	}
	if cfg.SpectrumWidth <= 0 {
		cfg.SpectrumWidth = DefaultSpectrumWidth
	}
	if cfg.DefaultFrequency == 0 {
		cfg.DefaultFrequency = DefaultFrequencyHz
	}
	s := &Session{
		radioAddr: cfg.RadioAddress,
		ctrlAddr:  cfg.ControllerAddress,
		width:     cfg.SpectrumWidth,
		freqHz:    cfg.DefaultFrequency,
		extractor: NewExtractor(cfg.MaxBuffer),
	}
	s.extractor.OnResync = func(dropped int) { s.lastDropped = dropped }
	return s
}

// Connect marks the transport as established. Idempotent.
func (s *Session) Connect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisconnected {
		s.state = StateConnected
	}
}

// Disconnect drops back to the Disconnected state and discards any
// partial frame. Idempotent; closing the transport is the caller's
// business and independent of this call.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDisconnected
	s.pendingEnable = false
	s.extractor.Reset()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a consistent copy of the session state. The lock is
// held only for the copy-out, so a reader never observes a frequency
// update paired with a stale spectrum.
func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	var spectrum []byte
	if s.spectrum != nil {
		spectrum = append([]byte(nil), s.spectrum...)
	}
	return SessionState{
		FrequencyHz: s.freqHz,
		Spectrum:    spectrum,
		Streaming:   s.state == StateStreaming,
	}
}

// EnableStreaming returns the enable-streaming frame to write to the
// transport. The Streaming state is confirmed only by the radio's OK
// ack folded in through Feed.
func (s *Session) EnableStreaming() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingEnable = true
	return NewEnableScopeCommand(s.radioAddr, s.ctrlAddr)
}

// DisableStreaming returns the streaming-off frame and drops the
// session back to Connected immediately. Best effort: no ack is
// awaited, a radio that never answers on shutdown is tolerated.
func (s *Session) DisableStreaming() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingEnable = false
	if s.state == StateStreaming {
		s.state = StateConnected
	}
	return NewDisableScopeCommand(s.radioAddr, s.ctrlAddr)
}

// RequestFrequency returns a read-frequency poll frame.
func (s *Session) RequestFrequency() Message {
	return NewReadFrequencyCommand(s.radioAddr, s.ctrlAddr)
}

// SetFrequency returns a set-frequency frame for hz, or a
// *FrequencyRangeError when hz does not fit in 10 BCD digits.
func (s *Session) SetFrequency(hz uint64) (Message, error) {
	return NewSetFrequencyCommand(s.radioAddr, s.ctrlAddr, hz)
}

// Feed runs inbound bytes through the extractor and folds every
// complete frame into the session, returning the state change events
// in wire order. Unrecognized and malformed frames are ignored; the
// radio's asynchronous status traffic is mostly irrelevant here.
func (s *Session) Feed(p []byte) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.extractor.Resyncs()
	msgs := s.extractor.Feed(p)

	var events []Event
	for _, m := range msgs {
		if ev, ok := s.apply(m); ok {
			events = append(events, ev)
		}
	}
	if s.extractor.Resyncs() > before {
		events = append(events, Event{Type: EventResync, Dropped: s.lastDropped})
	}
	return events
}

// HandleMessages folds already-extracted frames into the session, in
// order, for callers that run their own extractor.
func (s *Session) HandleMessages(msgs []Message) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []Event
	for _, m := range msgs {
		if ev, ok := s.apply(m); ok {
			events = append(events, ev)
		}
	}
	return events
}

// apply folds one classified frame into the state. Caller holds mu.
func (s *Session) apply(m Message) (Event, bool) {
	switch Classify(m) {
	case KindStreamingAck:
		// 0xFB is the radio's generic OK; only an ack answering our
		// enable command confirms the Streaming state.
		if !s.pendingEnable {
			return Event{}, false
		}
		s.pendingEnable = false
		s.state = StateStreaming
		return Event{Type: EventStreamingStarted}, true

	case KindStreamingNak:
		s.pendingEnable = false
		return Event{Type: EventCommandRejected}, true

	case KindFrequencyReport, KindSetFrequencyAck:
		hz := DecodeFrequency(m.Payload()[:5])
		if hz == s.freqHz {
			return Event{}, false
		}
		s.freqHz = hz
		return Event{Type: EventFrequencyChanged, FrequencyHz: hz}, true

	case KindSpectrumData:
		if s.state != StateStreaming {
			return Event{}, false
		}
		raw, ok := ExtractSpectrum(m)
		if !ok {
			return Event{}, false
		}
		s.spectrum = Resample(raw, s.width)
		return Event{Type: EventSpectrumUpdated}, true
	}
	return Event{}, false
}
