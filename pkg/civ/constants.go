// SPDX-License-Identifier: Apache-2.0

// Package civ provides a Go implementation of the Icom CI-V control
// protocol as spoken by an IC-705 behind a wfview-style gateway.
//
// The package covers frame extraction from a byte stream, message
// classification, BCD frequency and scope-spectrum codecs, and a small
// session controller that drives spectrum streaming.
package civ

// Protocol framing bytes
const (
	PreambleByte   = 0xFE
	TerminatorByte = 0xFD
)

// Default bus addresses (configurable per device)
const (
	DefaultRadioAddress      = 0xA4 // IC-705
	DefaultControllerAddress = 0xE0 // this client
)

// Command codes consumed by this client
const (
	CmdTransmit      = 0x00
	CmdSMeter        = 0x01
	CmdReadFrequency = 0x03
	CmdReadMode      = 0x04
	CmdSetFrequency  = 0x05
	CmdLevels        = 0x14
	CmdRead          = 0x15
	CmdFunctions     = 0x16
	CmdScopeConfig   = 0x1A
	CmdRepeater      = 0x1B
	CmdPTT           = 0x1C
	CmdSpectrumData  = 0x27
	AckNG            = 0xFA
	AckOK            = 0xFB
)

// Scope streaming sub-command (CmdScopeConfig payload)
const (
	ScopeSubStreaming = 0x05
	ScopeStreamingOn  = 0x01
	ScopeStreamingOff = 0x00
)

// Frame size limits
const (
	// MinMessageLength is the shortest valid frame: preamble(2),
	// dest, src, command, terminator. A bare read-frequency request.
	MinMessageLength = 6

	// AckLength is the fixed size of an OK/NG acknowledgment frame.
	AckLength = 6

	// FrequencyReportLength is the total size of a frequency report:
	// header(5) + 5 BCD bytes + terminator.
	FrequencyReportLength = 11

	// MinSpectrumLength is the smallest frame the radio emits that
	// carries amplitude data. Shorter 0x27 frames are scope status
	// chatter and carry no spectrum.
	MinSpectrumLength = 50

	// SpectrumAmplitudeOffset is where amplitude bytes begin inside a
	// spectrum frame: header(5) plus a 14-byte scope metadata block
	// (division counters and the BCD edge frequencies).
	SpectrumAmplitudeOffset = 19
)

// Accumulation buffer bound. A stream stuck mid-frame (no terminator)
// is cleared once the buffer passes this size; roughly an order of
// magnitude above the largest spectrum frame the IC-705 emits.
const DefaultMaxBuffer = 10000

// BCD frequency range: 5 bytes, two decimal digits each.
const (
	FrequencyDigits = 10
	MaxFrequencyHz  = 9_999_999_999
)

// DefaultSpectrumWidth is the resampled width of a spectrum frame.
const DefaultSpectrumWidth = 950

// DefaultFrequencyHz is the center frequency assumed before the radio
// reports one (7.100 MHz).
const DefaultFrequencyHz = 7_100_000
