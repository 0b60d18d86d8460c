// SPDX-License-Identifier: Apache-2.0

package civ

// Kind identifies what a received frame means to this client. It is a
// pure function of the command byte and frame length; every frame
// classifies, unknown traffic maps to KindOther.
type Kind int

const (
	// KindOther is any frame this client does not act on: mode
	// reports, S-meter chatter, transceive broadcasts, and so on.
	KindOther Kind = iota

	// KindFrequencyReport is a read-frequency response carrying a
	// 5-byte BCD operating frequency.
	KindFrequencyReport

	// KindSetFrequencyAck is a set-frequency echo carrying the BCD
	// frequency the radio accepted.
	KindSetFrequencyAck

	// KindSpectrumData is a scope waveform frame with one amplitude
	// byte per frequency bin.
	KindSpectrumData

	// KindStreamingAck is the 6-byte OK acknowledgment (0xFB).
	KindStreamingAck

	// KindStreamingNak is the 6-byte NG rejection (0xFA).
	KindStreamingNak
)

// Classify routes a complete frame to its kind. It never fails.
func Classify(m Message) Kind {
	if len(m) < MinMessageLength {
		return KindOther
	}
	switch m.Command() {
	case CmdReadFrequency:
		if len(m) >= FrequencyReportLength {
			return KindFrequencyReport
		}
	case CmdSetFrequency:
		if len(m) >= FrequencyReportLength {
			return KindSetFrequencyAck
		}
	case CmdSpectrumData:
		return KindSpectrumData
	case AckOK:
		if len(m) == AckLength {
			return KindStreamingAck
		}
	case AckNG:
		if len(m) == AckLength {
			return KindStreamingNak
		}
	}
	return KindOther
}

// String returns the kind's name for display and logging.
func (k Kind) String() string {
	switch k {
	case KindFrequencyReport:
		return "FREQUENCY_REPORT"
	case KindSetFrequencyAck:
		return "SET_FREQUENCY_ACK"
	case KindSpectrumData:
		return "SPECTRUM_DATA"
	case KindStreamingAck:
		return "STREAMING_ACK"
	case KindStreamingNak:
		return "STREAMING_NAK"
	default:
		return "OTHER"
	}
}
