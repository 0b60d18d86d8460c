// SPDX-License-Identifier: Apache-2.0

package civ

import "fmt"

// FrequencyRangeError reports a frequency that does not fit the
// protocol's 10-decimal-digit BCD field.
type FrequencyRangeError struct {
	Hz uint64
}

func (e *FrequencyRangeError) Error() string {
	return fmt.Sprintf("frequency %d Hz exceeds %d BCD digits (max %d)",
		e.Hz, FrequencyDigits, uint64(MaxFrequencyHz))
}

// DecodeFrequency decodes a little-endian BCD frequency field into
// whole Hz. Each byte carries two decimal digits, low nibble first,
// least-significant byte first. The frame on the wire carries 5 bytes;
// any extra input bytes contribute higher digits the same way.
//
// The result is integral Hz on purpose: dividing down to MHz belongs
// at the presentation boundary, not in the codec.
func DecodeFrequency(b []byte) uint64 {
	var hz uint64
	mul := uint64(1)
	for _, v := range b {
		hz += uint64(v&0x0F) * mul
		mul *= 10
		hz += uint64(v>>4) * mul
		mul *= 10
	}
	return hz
}

// EncodeFrequency packs whole Hz into the 5-byte little-endian BCD
// field. Values past MaxFrequencyHz return a *FrequencyRangeError.
func EncodeFrequency(hz uint64) ([5]byte, error) {
	var out [5]byte
	if hz > MaxFrequencyHz {
		return out, &FrequencyRangeError{Hz: hz}
	}
	for i := range out {
		out[i] = byte(hz%10) | byte((hz/10)%10)<<4
		hz /= 100
	}
	return out, nil
}

// EncodeFrequencyClamped is EncodeFrequency with out-of-range values
// clamped to MaxFrequencyHz instead of rejected.
func EncodeFrequencyClamped(hz uint64) [5]byte {
	if hz > MaxFrequencyHz {
		hz = MaxFrequencyHz
	}
	out, _ := EncodeFrequency(hz)
	return out
}
