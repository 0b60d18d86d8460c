// SPDX-License-Identifier: Apache-2.0

package civ

import "bytes"

var preamble = []byte{PreambleByte, PreambleByte}

// Extractor turns an arbitrarily fragmented or coalesced byte stream
// into complete CI-V frames. It owns the accumulation buffer; frames
// are removed from the buffer as soon as they are found, so at any
// point the buffer holds at most one partial frame prefix.
type Extractor struct {
	buf       []byte
	maxBuffer int
	resyncs   uint64

	// OnResync, if set, is called with the number of bytes dropped
	// whenever the buffer bound forces a resynchronization.
	OnResync func(dropped int)
}

// NewExtractor creates an extractor with the given buffer bound.
// A maxBuffer of 0 or less selects DefaultMaxBuffer.
func NewExtractor(maxBuffer int) *Extractor {
	if maxBuffer <= 0 {
		maxBuffer = DefaultMaxBuffer
	}
	return &Extractor{maxBuffer: maxBuffer}
}

// Feed appends p to the accumulation buffer and returns every complete
// frame now present, in stream order. An incomplete trailing frame is
// kept for the next call; this is the normal partial-frame condition,
// not an error. Leading bytes before a doubled preamble are resync
// garbage and are discarded silently.
func (e *Extractor) Feed(p []byte) []Message {
	e.buf = append(e.buf, p...)

	var msgs []Message
	for {
		start := bytes.Index(e.buf, preamble)
		if start == -1 {
			// No frame start. Keep a trailing lone preamble byte:
			// its twin may arrive in the next chunk.
			if n := len(e.buf); n > 0 && e.buf[n-1] == PreambleByte {
				e.buf[0] = PreambleByte
				e.buf = e.buf[:1]
			} else {
				e.buf = e.buf[:0]
			}
			break
		}
		if start > 0 {
			e.buf = e.buf[start:]
		}

		end := bytes.IndexByte(e.buf, TerminatorByte)
		if end == -1 {
			// Frame not yet terminated; wait for more bytes.
			break
		}

		frame := e.buf[:end+1]
		e.buf = e.buf[end+1:]

		// A terminator inside the 5-byte header means the preamble
		// was garbage that happened to double up; drop the run.
		if len(frame) >= MinMessageLength {
			msgs = append(msgs, Message(append([]byte(nil), frame...)))
		}
	}

	if len(e.buf) > e.maxBuffer {
		dropped := len(e.buf)
		e.buf = nil
		e.resyncs++
		if e.OnResync != nil {
			e.OnResync(dropped)
		}
	}
	return msgs
}

// Pending returns the number of buffered bytes awaiting a terminator.
func (e *Extractor) Pending() int {
	return len(e.buf)
}

// Resyncs returns how many times the buffer bound forced a clear.
func (e *Extractor) Resyncs() uint64 {
	return e.resyncs
}

// Reset discards all buffered bytes without counting a resync.
func (e *Extractor) Reset() {
	e.buf = e.buf[:0]
}
