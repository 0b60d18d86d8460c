// SPDX-License-Identifier: Apache-2.0

package civ

import "fmt"

// AnomalyType classifies frame anomalies found by ValidateMessage.
type AnomalyType int

const (
	AnomalyShortMessage AnomalyType = iota
	AnomalyBadFraming
	AnomalyBadBCDDigit
	AnomalyShortSpectrum
	AnomalyAckLength
)

// ValidationError describes one structural anomaly in a frame. Frames
// with anomalies are still delivered; validation exists for diagnosis,
// the protocol itself drops nothing that parses.
type ValidationError struct {
	Type    AnomalyType
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return v.Message
}

// ValidateMessage checks a frame's structure and reports anomalies.
// Returns an empty slice for a clean frame.
func ValidateMessage(m Message) []ValidationError {
	if len(m) < MinMessageLength {
		return []ValidationError{{
			Type:    AnomalyShortMessage,
			Message: fmt.Sprintf("frame too short (%d bytes, minimum %d)", len(m), MinMessageLength),
			Details: map[string]interface{}{"length": len(m)},
		}}
	}
	if !m.Valid() {
		return []ValidationError{{
			Type:    AnomalyBadFraming,
			Message: "frame missing doubled preamble or terminator",
			Details: map[string]interface{}{"first": m[0], "last": m[len(m)-1]},
		}}
	}

	errors := []ValidationError{}
	switch m.Command() {
	case CmdReadFrequency, CmdSetFrequency:
		errors = append(errors, validateBCDPayload(m)...)
	case CmdSpectrumData:
		if len(m) >= MinSpectrumLength {
			break
		}
		// Short scope frames are expected status chatter; only flag
		// ones that look like a truncated waveform.
		if len(m) > AckLength+8 {
			errors = append(errors, ValidationError{
				Type:    AnomalyShortSpectrum,
				Message: fmt.Sprintf("spectrum frame truncated (%d bytes, minimum %d)", len(m), MinSpectrumLength),
				Details: map[string]interface{}{"length": len(m), "minimum": MinSpectrumLength},
			})
		}
	case AckOK, AckNG:
		if len(m) != AckLength {
			errors = append(errors, ValidationError{
				Type:    AnomalyAckLength,
				Message: fmt.Sprintf("ack frame length %d (expected %d)", len(m), AckLength),
				Details: map[string]interface{}{"length": len(m), "expected": AckLength},
			})
		}
	}
	return errors
}

// validateBCDPayload flags non-decimal nibbles in a frequency field.
func validateBCDPayload(m Message) []ValidationError {
	payload := m.Payload()
	if len(payload) < 5 {
		return nil
	}
	errors := []ValidationError{}
	for i, b := range payload[:5] {
		if b&0x0F > 9 || b>>4 > 9 {
			errors = append(errors, ValidationError{
				Type:    AnomalyBadBCDDigit,
				Message: fmt.Sprintf("invalid BCD byte 0x%02X at offset %d", b, i),
				Details: map[string]interface{}{"byte": b, "offset": i},
			})
		}
	}
	return errors
}
