// SPDX-License-Identifier: Apache-2.0

package civ

// Message is a complete CI-V frame as sliced out of the byte stream:
//
//	FE FE DEST SRC CMD PAYLOAD... FD
//
// A Message is produced fully formed by the Extractor (or a command
// builder) and never mutated afterwards.
type Message []byte

// NewMessage builds a wire-ready frame from its fields.
func NewMessage(dest, src, cmd byte, payload []byte) Message {
	m := make(Message, 0, 5+len(payload)+1)
	m = append(m, PreambleByte, PreambleByte, dest, src, cmd)
	m = append(m, payload...)
	m = append(m, TerminatorByte)
	return m
}

// Valid reports whether the frame satisfies the structural invariant:
// doubled preamble, terminator, minimum length.
func (m Message) Valid() bool {
	return len(m) >= MinMessageLength &&
		m[0] == PreambleByte && m[1] == PreambleByte &&
		m[len(m)-1] == TerminatorByte
}

// Destination returns the destination bus address.
func (m Message) Destination() byte {
	return m[2]
}

// Source returns the source bus address.
func (m Message) Source() byte {
	return m[3]
}

// Command returns the command code byte.
func (m Message) Command() byte {
	return m[4]
}

// Payload returns the command-specific payload, excluding the
// terminator. Empty for bare commands such as read-frequency.
func (m Message) Payload() []byte {
	return m[5 : len(m)-1]
}
