// SPDX-License-Identifier: Apache-2.0

package civ

import (
	"errors"
	"testing"
)

// ============================================================
// Known wire vectors
// ============================================================

func TestDecodeFrequency_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		bcd  []byte
		hz   uint64
	}{
		{"145 MHz", []byte{0x00, 0x00, 0x00, 0x45, 0x01}, 145_000_000},
		{"7.1 MHz", []byte{0x00, 0x00, 0x10, 0x07, 0x00}, 7_100_000},
		{"zero", []byte{0x00, 0x00, 0x00, 0x00, 0x00}, 0},
		{"max", []byte{0x99, 0x99, 0x99, 0x99, 0x99}, 9_999_999_999},
		{"all digit positions", []byte{0x21, 0x43, 0x65, 0x87, 0x09}, 987_654_321},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeFrequency(tt.bcd); got != tt.hz {
				t.Errorf("DecodeFrequency(%s) = %d, want %d", HexDump(tt.bcd), got, tt.hz)
			}
		})
	}
}

func TestEncodeFrequency_KnownVectors(t *testing.T) {
	got, err := EncodeFrequency(145_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [5]byte{0x00, 0x00, 0x00, 0x45, 0x01}
	if got != want {
		t.Errorf("EncodeFrequency(145000000) = %s, want %s", HexDump(got[:]), HexDump(want[:]))
	}
}

// ============================================================
// Round trip and range handling
// ============================================================

func TestFrequencyRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 9, 10, 99, 100,
		7_100_000,
		14_074_000,
		145_000_000,
		433_500_000,
		9_999_999_999,
	}
	for _, hz := range values {
		bcd, err := EncodeFrequency(hz)
		if err != nil {
			t.Fatalf("EncodeFrequency(%d): %v", hz, err)
		}
		if got := DecodeFrequency(bcd[:]); got != hz {
			t.Errorf("round trip %d -> %s -> %d", hz, HexDump(bcd[:]), got)
		}
	}
}

func TestEncodeFrequency_OutOfRange(t *testing.T) {
	_, err := EncodeFrequency(10_000_000_000)
	if err == nil {
		t.Fatal("expected a range error for 10^10 Hz")
	}
	var rangeErr *FrequencyRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *FrequencyRangeError, got %T", err)
	}
	if rangeErr.Hz != 10_000_000_000 {
		t.Errorf("error carries Hz=%d, want 10000000000", rangeErr.Hz)
	}
}

func TestEncodeFrequencyClamped(t *testing.T) {
	got := EncodeFrequencyClamped(123_456_789_012)
	if hz := DecodeFrequency(got[:]); hz != MaxFrequencyHz {
		t.Errorf("clamped encode decodes to %d, want %d", hz, uint64(MaxFrequencyHz))
	}

	got = EncodeFrequencyClamped(145_000_000)
	if hz := DecodeFrequency(got[:]); hz != 145_000_000 {
		t.Errorf("in-range clamped encode decodes to %d, want 145000000", hz)
	}
}
