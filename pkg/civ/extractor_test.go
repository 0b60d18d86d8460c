// SPDX-License-Identifier: Apache-2.0

package civ

import (
	"bytes"
	"testing"
)

func frame(dest, src, cmd byte, payload ...byte) Message {
	return NewMessage(dest, src, cmd, payload)
}

func freqReport(hz uint64) Message {
	bcd, _ := EncodeFrequency(hz)
	return NewMessage(DefaultControllerAddress, DefaultRadioAddress, CmdReadFrequency, bcd[:])
}

// ============================================================
// Framing round-trip
// ============================================================

func TestFeed_SingleFrame(t *testing.T) {
	e := NewExtractor(0)
	m := freqReport(145_000_000)

	got := e.Feed(m)
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
	if !bytes.Equal(got[0], m) {
		t.Errorf("round-trip mismatch:\n  sent %s\n  got  %s", HexDump(m), HexDump(got[0]))
	}
	if e.Pending() != 0 {
		t.Errorf("buffer should be empty after a complete frame, %d bytes pending", e.Pending())
	}
}

func TestFeed_Coalescing(t *testing.T) {
	e := NewExtractor(0)
	m1 := freqReport(7_100_000)
	m2 := frame(DefaultControllerAddress, DefaultRadioAddress, AckOK)

	got := e.Feed(append(append([]byte{}, m1...), m2...))
	if len(got) != 2 {
		t.Fatalf("expected 2 messages from one chunk, got %d", len(got))
	}
	if !bytes.Equal(got[0], m1) || !bytes.Equal(got[1], m2) {
		t.Error("messages not emitted in stream order")
	}
}

// ============================================================
// Fragmentation independence
// ============================================================

func TestFeed_EverySplitPoint(t *testing.T) {
	m := freqReport(145_000_000)

	for split := 1; split < len(m); split++ {
		e := NewExtractor(0)
		got := e.Feed(m[:split])
		got = append(got, e.Feed(m[split:])...)

		if len(got) != 1 || !bytes.Equal(got[0], m) {
			t.Errorf("split at %d: expected the original frame back, got %d messages", split, len(got))
		}
	}
}

func TestFeed_ByteAtATime(t *testing.T) {
	e := NewExtractor(0)
	m := freqReport(433_500_000)

	var got []Message
	for i := range m {
		got = append(got, e.Feed(m[i:i+1])...)
	}
	if len(got) != 1 || !bytes.Equal(got[0], m) {
		t.Fatalf("byte-at-a-time feed lost the frame (%d messages)", len(got))
	}
}

func TestFeed_PartialIsNotAnError(t *testing.T) {
	e := NewExtractor(0)
	m := freqReport(145_000_000)

	if got := e.Feed(m[:4]); len(got) != 0 {
		t.Fatalf("partial frame must emit nothing, got %d messages", len(got))
	}
	if e.Pending() == 0 {
		t.Error("partial frame must stay buffered")
	}
	if got := e.Feed(m[4:]); len(got) != 1 {
		t.Fatalf("completing the frame must emit it, got %d messages", len(got))
	}
}

// ============================================================
// Garbage tolerance and resync
// ============================================================

func TestFeed_GarbagePrefix(t *testing.T) {
	tests := []struct {
		name    string
		garbage []byte
	}{
		{"noise bytes", []byte{0x00, 0x13, 0x37, 0x42}},
		{"stray terminator", []byte{TerminatorByte, 0x01}},
		{"single stray preamble byte", []byte{0x10, PreambleByte, 0x20}},
		{"half frame tail", []byte{0x45, 0x01, TerminatorByte}},
	}

	m := freqReport(145_000_000)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(0)
			got := e.Feed(append(append([]byte{}, tt.garbage...), m...))
			if len(got) != 1 || !bytes.Equal(got[0], m) {
				t.Fatalf("frame not recovered after garbage prefix (%d messages)", len(got))
			}
		})
	}
}

func TestFeed_PreambleSplitAcrossChunks(t *testing.T) {
	e := NewExtractor(0)
	m := freqReport(145_000_000)

	// Garbage ending in a lone preamble byte, with the frame's own
	// first preamble byte consumed into the previous chunk.
	if got := e.Feed([]byte{0x99, PreambleByte}); len(got) != 0 {
		t.Fatalf("unexpected messages from garbage: %d", len(got))
	}
	got := e.Feed(m[1:])
	if len(got) != 1 || !bytes.Equal(got[0], m) {
		t.Fatalf("frame spanning a chunk boundary inside the preamble was lost")
	}
}

func TestFeed_GarbageBetweenFrames(t *testing.T) {
	e := NewExtractor(0)
	m1 := freqReport(7_100_000)
	m2 := freqReport(145_000_000)

	var in []byte
	in = append(in, m1...)
	in = append(in, 0x55, 0xAA, 0x55)
	in = append(in, m2...)

	got := e.Feed(in)
	if len(got) != 2 || !bytes.Equal(got[0], m1) || !bytes.Equal(got[1], m2) {
		t.Fatalf("expected both frames around garbage, got %d", len(got))
	}
}

func TestFeed_TerminatorInsideHeader(t *testing.T) {
	e := NewExtractor(0)
	m := freqReport(145_000_000)

	// A doubled preamble immediately followed by a terminator is not
	// a frame; the run must be consumed without emitting it.
	in := []byte{PreambleByte, PreambleByte, TerminatorByte}
	in = append(in, m...)

	got := e.Feed(in)
	if len(got) != 1 || !bytes.Equal(got[0], m) {
		t.Fatalf("expected only the real frame, got %d messages", len(got))
	}
}

func TestFeed_BufferBoundForcesResync(t *testing.T) {
	e := NewExtractor(200)
	var droppedBytes int
	e.OnResync = func(dropped int) { droppedBytes = dropped }

	// An unterminated frame start followed by endless non-terminator
	// bytes: no message may ever be emitted, and once the bound is
	// passed the buffer must clear.
	e.Feed([]byte{PreambleByte, PreambleByte, DefaultControllerAddress, DefaultRadioAddress, CmdSpectrumData})
	for i := 0; i < 30; i++ {
		if got := e.Feed(bytes.Repeat([]byte{0x40}, 10)); len(got) != 0 {
			t.Fatalf("unterminated stream emitted a message")
		}
	}

	if e.Resyncs() == 0 {
		t.Fatal("expected at least one resync event")
	}
	if droppedBytes == 0 {
		t.Error("resync callback did not report dropped bytes")
	}
	if e.Pending() > 200 {
		t.Errorf("buffer still holds %d bytes after resync", e.Pending())
	}
}

func TestFeed_RecoversAfterResync(t *testing.T) {
	e := NewExtractor(64)
	e.Feed(append([]byte{PreambleByte, PreambleByte}, bytes.Repeat([]byte{0x01}, 100)...))
	if e.Resyncs() != 1 {
		t.Fatalf("expected 1 resync, got %d", e.Resyncs())
	}

	m := freqReport(145_000_000)
	got := e.Feed(m)
	if len(got) != 1 || !bytes.Equal(got[0], m) {
		t.Fatal("extractor did not recover after a resync")
	}
}
