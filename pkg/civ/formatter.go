// SPDX-License-Identifier: Apache-2.0

package civ

import (
	"fmt"
	"strings"
)

// spectrumHexLimit caps the hex dump of spectrum frames; a full scope
// waveform is hundreds of bytes and unreadable in a log line.
const spectrumHexLimit = 12

// CommandName returns the display label for a command code.
func CommandName(cmd byte) string {
	switch cmd {
	case CmdTransmit:
		return "TX"
	case CmdSMeter:
		return "S-METER"
	case CmdReadFrequency:
		return "FREQ"
	case CmdReadMode:
		return "MODE"
	case CmdSetFrequency:
		return "SET_FREQ"
	case CmdLevels:
		return "LEVELS"
	case CmdRead:
		return "READ"
	case CmdFunctions:
		return "FUNCTIONS"
	case CmdScopeConfig:
		return "CONFIG"
	case CmdRepeater:
		return "REPEATER"
	case CmdPTT:
		return "PTT"
	case CmdSpectrumData:
		return "SPECTRUM"
	case AckNG:
		return "NG"
	case AckOK:
		return "OK"
	default:
		return fmt.Sprintf("0x%02X", cmd)
	}
}

// HexDump renders a frame as spaced uppercase hex.
func HexDump(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

// FormatFrequencyMHz renders whole Hz as a MHz readout. This is the
// presentation boundary: the codec itself never leaves integral Hz.
func FormatFrequencyMHz(hz uint64) string {
	return fmt.Sprintf("%d.%06d MHz", hz/1_000_000, hz%1_000_000)
}

// FormatMessage formats a received frame for display: kind label,
// addresses, and a payload rendering appropriate to the kind.
func FormatMessage(m Message) string {
	if len(m) < MinMessageLength {
		return fmt.Sprintf("[???] %s", HexDump(m))
	}

	kind := Classify(m)
	head := fmt.Sprintf("[%-8s] %02X<-%02X len=%d",
		CommandName(m.Command()), m.Destination(), m.Source(), len(m))

	switch kind {
	case KindFrequencyReport, KindSetFrequencyAck:
		hz := DecodeFrequency(m.Payload()[:5])
		return fmt.Sprintf("%s  %s", head, FormatFrequencyMHz(hz))
	case KindSpectrumData:
		if raw, ok := ExtractSpectrum(m); ok {
			return fmt.Sprintf("%s  %d bins  %s...",
				head, len(raw), HexDump(m[:spectrumHexLimit]))
		}
		return fmt.Sprintf("%s  %s", head, HexDump(m))
	case KindStreamingAck:
		return head + "  OK"
	case KindStreamingNak:
		return head + "  NG"
	default:
		return fmt.Sprintf("%s  %s", head, HexDump(m.Payload()))
	}
}
