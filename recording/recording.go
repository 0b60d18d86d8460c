// SPDX-License-Identifier: Apache-2.0

// Package recording persists captured spectrum snapshots as a stream
// of CBOR records, one per scope frame, and exports them to CSV for
// analysis elsewhere.
package recording

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Record is one captured spectrum snapshot. Integer keys keep the
// on-disk frames compact; a recording session easily produces tens of
// thousands of them.
type Record struct {
	UnixMillis  int64  `cbor:"1,keyasint"`
	FrequencyHz uint64 `cbor:"2,keyasint"`
	SpanKHz     int    `cbor:"3,keyasint"`
	Amplitudes  []byte `cbor:"4,keyasint"`
}

// Timestamp returns the record's capture time.
func (r Record) Timestamp() time.Time {
	return time.UnixMilli(r.UnixMillis)
}

// Writer appends records to a recording file.
type Writer struct {
	f     *os.File
	enc   *cbor.Encoder
	count int
}

// NewWriter creates or truncates a recording file.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording %s: %v", path, err)
	}
	return &Writer{f: f, enc: cbor.NewEncoder(f)}, nil
}

// Append writes one record to the file.
func (w *Writer) Append(r Record) error {
	if err := w.enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write record: %v", err)
	}
	w.count++
	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}

// Close flushes and closes the recording file.
func (w *Writer) Close() error {
	return w.f.Close()
}

// ReadAll loads every record from a recording file.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording %s: %v", path, err)
	}
	defer f.Close()

	dec := cbor.NewDecoder(f)
	var records []Record
	for {
		var r Record
		if err := dec.Decode(&r); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return records, fmt.Errorf("failed to decode record %d: %v", len(records), err)
		}
		records = append(records, r)
	}
}

// ExportCSV writes records as CSV: timestamp, center frequency in MHz,
// span, then one column per amplitude bin. The column count follows
// the first record; shorter records leave trailing cells empty.
func ExportCSV(records []Record, out io.Writer) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to export")
	}

	w := csv.NewWriter(out)
	bins := len(records[0].Amplitudes)

	header := []string{"timestamp", "freq_mhz", "span_khz"}
	for i := 0; i < bins; i++ {
		header = append(header, fmt.Sprintf("val_%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, r := range records {
		row = row[:0]
		row = append(row,
			r.Timestamp().UTC().Format("2006-01-02T15:04:05.000Z"),
			strconv.FormatFloat(float64(r.FrequencyHz)/1e6, 'f', 6, 64),
			strconv.Itoa(r.SpanKHz),
		)
		for i := 0; i < bins; i++ {
			if i < len(r.Amplitudes) {
				row = append(row, strconv.Itoa(int(r.Amplitudes[i])))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
