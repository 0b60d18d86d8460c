// SPDX-License-Identifier: Apache-2.0

package civ

// Command builder functions create wire-ready frames addressed from
// the controller to the radio. The returned bytes are written to the
// transport verbatim.

// NewEnableScopeCommand builds the frame that turns the radio's
// spectrum streaming on. The radio answers with a 6-byte OK or NG ack.
func NewEnableScopeCommand(radio, controller byte) Message {
	return NewMessage(radio, controller, CmdScopeConfig,
		[]byte{ScopeSubStreaming, 0x00, ScopeStreamingOn})
}

// NewDisableScopeCommand builds the symmetric streaming-off frame.
func NewDisableScopeCommand(radio, controller byte) Message {
	return NewMessage(radio, controller, CmdScopeConfig,
		[]byte{ScopeSubStreaming, 0x00, ScopeStreamingOff})
}

// NewReadFrequencyCommand builds a bare read-frequency request. The
// radio answers with a frequency report.
func NewReadFrequencyCommand(radio, controller byte) Message {
	return NewMessage(radio, controller, CmdReadFrequency, nil)
}

// NewSetFrequencyCommand builds a set-frequency frame carrying hz as
// 5-byte BCD. Returns a *FrequencyRangeError when hz does not fit.
func NewSetFrequencyCommand(radio, controller byte, hz uint64) (Message, error) {
	bcd, err := EncodeFrequency(hz)
	if err != nil {
		return nil, err
	}
	return NewMessage(radio, controller, CmdSetFrequency, bcd[:]), nil
}
