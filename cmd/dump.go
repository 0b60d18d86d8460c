// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/D0gZys/PTUT/pkg/civ"
	"github.com/D0gZys/PTUT/recording"
	"github.com/spf13/cobra"
)

var dumpCSV bool

var dumpCmd = &cobra.Command{
	Use:   "dump <recording>",
	Short: "Inspect or export a scope recording",
	Long: `Read a recording made with 'civscope record' and print its contents.

By default a one-line summary is shown per record. With --csv the full
recording is written to stdout as CSV, one amplitude bin per column,
ready for a spreadsheet or plotting tool.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().BoolVar(&dumpCSV, "csv", false, "Export as CSV to stdout")
}

func runDump(cmd *cobra.Command, args []string) error {
	records, err := recording.ReadAll(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("recording %s is empty", args[0])
	}

	if dumpCSV {
		return recording.ExportCSV(records, os.Stdout)
	}

	for i, r := range records {
		min, max := byte(255), byte(0)
		for _, v := range r.Amplitudes {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		fmt.Printf("%5d  %s  %s  span %d kHz  %d bins  amp %d..%d\n",
			i,
			r.Timestamp().UTC().Format("15:04:05.000"),
			civ.FormatFrequencyMHz(r.FrequencyHz),
			r.SpanKHz,
			len(r.Amplitudes),
			min, max)
	}

	first, last := records[0].Timestamp(), records[len(records)-1].Timestamp()
	fmt.Printf("\n%d records over %s\n", len(records), last.Sub(first).Round(time.Millisecond))
	return nil
}
