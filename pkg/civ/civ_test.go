// SPDX-License-Identifier: Apache-2.0

package civ

import (
	"strings"
	"testing"
)

// ============================================================
// Message accessors
// ============================================================

func TestMessageAccessors(t *testing.T) {
	m := NewMessage(0xA4, 0xE0, 0x05, []byte{0x00, 0x00, 0x00, 0x45, 0x01})

	if !m.Valid() {
		t.Fatal("built message fails framing check")
	}
	if m.Destination() != 0xA4 {
		t.Errorf("Destination() = 0x%02X, want 0xA4", m.Destination())
	}
	if m.Source() != 0xE0 {
		t.Errorf("Source() = 0x%02X, want 0xE0", m.Source())
	}
	if m.Command() != 0x05 {
		t.Errorf("Command() = 0x%02X, want 0x05", m.Command())
	}
	if got := m.Payload(); len(got) != 5 || got[3] != 0x45 {
		t.Errorf("Payload() = %s", HexDump(got))
	}
}

func TestMessageValid(t *testing.T) {
	tests := []struct {
		name string
		m    Message
		want bool
	}{
		{"well formed", NewMessage(0xA4, 0xE0, 0x03, nil), true},
		{"too short", Message{0xFE, 0xFE, 0xFD}, false},
		{"single preamble byte", Message{0xFE, 0xA4, 0xE0, 0x03, 0x00, 0xFD}, false},
		{"missing terminator", Message{0xFE, 0xFE, 0xA4, 0xE0, 0x03, 0x00}, false},
		{"empty", Message{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================
// Display formatting
// ============================================================

func TestCommandName(t *testing.T) {
	tests := []struct {
		cmd  byte
		want string
	}{
		{CmdReadFrequency, "FREQ"},
		{CmdSetFrequency, "SET_FREQ"},
		{CmdSpectrumData, "SPECTRUM"},
		{AckOK, "OK"},
		{AckNG, "NG"},
		{0x42, "0x42"},
	}
	for _, tt := range tests {
		if got := CommandName(tt.cmd); got != tt.want {
			t.Errorf("CommandName(0x%02X) = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestFormatFrequencyMHz(t *testing.T) {
	tests := []struct {
		hz   uint64
		want string
	}{
		{145_000_000, "145.000000 MHz"},
		{7_100_000, "7.100000 MHz"},
		{14_074_123, "14.074123 MHz"},
		{500, "0.000500 MHz"},
	}
	for _, tt := range tests {
		if got := FormatFrequencyMHz(tt.hz); got != tt.want {
			t.Errorf("FormatFrequencyMHz(%d) = %q, want %q", tt.hz, got, tt.want)
		}
	}
}

func TestFormatMessage(t *testing.T) {
	line := FormatMessage(freqReport(145_000_000))
	if !strings.Contains(line, "145.000000 MHz") || !strings.Contains(line, "FREQ") {
		t.Errorf("frequency report formatting: %q", line)
	}

	line = FormatMessage(spectrumFrame(make([]byte, 64)))
	if !strings.Contains(line, "SPECTRUM") || !strings.Contains(line, "64 bins") {
		t.Errorf("spectrum formatting: %q", line)
	}

	line = FormatMessage(okAck())
	if !strings.Contains(line, "OK") {
		t.Errorf("ack formatting: %q", line)
	}
}

func TestHexDump(t *testing.T) {
	if got := HexDump([]byte{0xFE, 0xFE, 0xA4, 0x01}); got != "FE FE A4 01" {
		t.Errorf("HexDump = %q", got)
	}
	if got := HexDump(nil); got != "" {
		t.Errorf("HexDump(nil) = %q", got)
	}
}

// ============================================================
// Statistics
// ============================================================

func TestStatisticsUpdate(t *testing.T) {
	s := NewStatistics()

	s.Update(freqReport(145_000_000))
	s.Update(spectrumFrame(make([]byte, 64)))
	s.Update(spectrumFrame(make([]byte, 64)))
	s.Update(okAck())
	s.Update(ngAck())
	s.Update(NewMessage(0xE0, 0xA4, CmdReadMode, []byte{0x05, 0x01}))
	s.RecordResync(120)

	if s.TotalFrames != 6 {
		t.Errorf("TotalFrames = %d, want 6", s.TotalFrames)
	}
	if s.FrequencyReports != 1 || s.SpectrumFrames != 2 || s.OtherFrames != 1 {
		t.Errorf("counter mismatch: %+v", s)
	}
	if s.StreamingAcks != 1 || s.StreamingNaks != 1 {
		t.Errorf("ack counters: OK=%d NG=%d", s.StreamingAcks, s.StreamingNaks)
	}
	if s.Resyncs != 1 || s.DroppedBytes != 120 {
		t.Errorf("resync counters: %d resyncs, %d bytes", s.Resyncs, s.DroppedBytes)
	}

	s.Reset()
	if s.TotalFrames != 0 || s.DroppedBytes != 0 {
		t.Error("Reset did not clear counters")
	}
}

// ============================================================
// Validation
// ============================================================

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name string
		m    Message
		want []AnomalyType
	}{
		{"clean frequency report", freqReport(145_000_000), nil},
		{"clean spectrum", spectrumFrame(make([]byte, 64)), nil},
		{"too short", Message{0xFE, 0xFE, 0xFD}, []AnomalyType{AnomalyShortMessage}},
		{
			"bad framing",
			Message{0x00, 0xFE, 0xA4, 0xE0, 0x03, 0xFD},
			[]AnomalyType{AnomalyBadFraming},
		},
		{
			"non-decimal BCD nibble",
			NewMessage(0xE0, 0xA4, CmdReadFrequency, []byte{0x00, 0x0A, 0x00, 0x45, 0x01}),
			[]AnomalyType{AnomalyBadBCDDigit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateMessage(tt.m)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d anomalies, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].Type != tt.want[i] {
					t.Errorf("anomaly %d type = %v, want %v", i, got[i].Type, tt.want[i])
				}
				if got[i].Error() == "" {
					t.Error("anomaly has an empty message")
				}
			}
		})
	}
}
