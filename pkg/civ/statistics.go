// SPDX-License-Identifier: Apache-2.0

package civ

import (
	"fmt"
	"time"
)

// Statistics tracks frame counts and rates for one connection.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalFrames      uint64
	FrequencyReports uint64
	SetFrequencyAcks uint64
	SpectrumFrames   uint64
	StreamingAcks    uint64
	StreamingNaks    uint64
	OtherFrames      uint64
	Resyncs          uint64
	DroppedBytes     uint64

	// Rates (calculated)
	FrameRate    float64 // frames/sec
	SpectrumRate float64 // spectrum frames/sec
}

// NewStatistics creates a statistics tracker starting now.
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update counts one received frame.
func (s *Statistics) Update(m Message) {
	s.TotalFrames++
	switch Classify(m) {
	case KindFrequencyReport:
		s.FrequencyReports++
	case KindSetFrequencyAck:
		s.SetFrequencyAcks++
	case KindSpectrumData:
		s.SpectrumFrames++
	case KindStreamingAck:
		s.StreamingAcks++
	case KindStreamingNak:
		s.StreamingNaks++
	default:
		s.OtherFrames++
	}
	s.LastUpdateTime = time.Now()
}

// RecordResync counts one buffer clear and the bytes it discarded.
func (s *Statistics) RecordResync(dropped int) {
	s.Resyncs++
	s.DroppedBytes += uint64(dropped)
	s.LastUpdateTime = time.Now()
}

// CalculateRates refreshes the frames/sec figures.
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.TotalFrames) / elapsed
		s.SpectrumRate = float64(s.SpectrumFrames) / elapsed
	}
}

// String returns a formatted statistics summary.
func (s *Statistics) String() string {
	s.CalculateRates()

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Frames:    %8d\n", s.TotalFrames)
	result += fmt.Sprintf("Spectrum:        %8d\n", s.SpectrumFrames)
	result += fmt.Sprintf("Freq Reports:    %8d\n", s.FrequencyReports)
	if s.SetFrequencyAcks > 0 {
		result += fmt.Sprintf("Set-Freq Echoes: %8d\n", s.SetFrequencyAcks)
	}
	if s.StreamingAcks > 0 || s.StreamingNaks > 0 {
		result += fmt.Sprintf("Acks OK/NG:      %5d/%d\n", s.StreamingAcks, s.StreamingNaks)
	}
	result += fmt.Sprintf("Other:           %8d\n", s.OtherFrames)
	if s.Resyncs > 0 {
		result += fmt.Sprintf("Resyncs:         %8d (%d bytes dropped)\n", s.Resyncs, s.DroppedBytes)
	}
	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", s.FrameRate)
	result += fmt.Sprintf("Spectrum Rate:   %8.1f frames/sec\n", s.SpectrumRate)
	result += "================================\n"

	return result
}

// Reset clears all counters and restarts the clock.
func (s *Statistics) Reset() {
	now := time.Now()
	*s = Statistics{StartTime: now, LastUpdateTime: now}
}
