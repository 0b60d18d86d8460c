// SPDX-License-Identifier: Apache-2.0

package civ

// ExtractSpectrum returns the raw amplitude bytes of a spectrum frame,
// one byte per frequency bin, 0-255. The second result is false when
// the frame is not spectrum data or is too short to carry a plausible
// waveform; that is not an error, short 0x27 frames are scope status
// chatter.
func ExtractSpectrum(m Message) ([]byte, bool) {
	if Classify(m) != KindSpectrumData || len(m) < MinSpectrumLength {
		return nil, false
	}
	amps := m[SpectrumAmplitudeOffset : len(m)-1]
	return append([]byte(nil), amps...), true
}

// Resample maps an amplitude sequence of any length onto exactly width
// samples. Long inputs are down-sampled by nearest-index selection
// over evenly spaced positions; no interpolation, so every output
// value is drawn from raw and the cost stays O(width). Short inputs
// fill the low indices and the tail stays zero.
func Resample(raw []byte, width int) []byte {
	if width <= 0 {
		return nil
	}
	out := make([]byte, width)
	switch {
	case len(raw) == 0:
		// all zero
	case len(raw) >= width:
		if width == 1 {
			out[0] = raw[0]
			break
		}
		span := float64(len(raw)-1) / float64(width-1)
		for i := range out {
			out[i] = raw[int(float64(i)*span)]
		}
	default:
		copy(out, raw)
	}
	return out
}
