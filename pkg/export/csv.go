// Package export writes solve results to external formats: a semicolon
// delimited tabular file with a states and a signals section, and a
// compressed archive for run snapshots.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// Options controls tabular formatting
type Options struct {
	// DecimalComma writes the decimal separator as a comma, matching the
	// spreadsheet locale convention downstream consumers expect.
	DecimalComma bool
}

// DefaultOptions returns the formatting used when no options are given
func DefaultOptions() Options {
	return Options{DecimalComma: true}
}

var stateHeader = []string{
	"Node name",
	"Node type",
	"Port name",
	"Fluid name",
	"Temperature in K",
	"Pressure in Pa",
	"Spec. enthalpy in J/kg",
	"Spec. entropy in J/(kg*K)",
	"Mass flow in kg/s",
}

var signalHeader = []string{
	"Node name",
	"Node type",
	"Port name",
	"Signal value",
}

// WriteCSV writes the states and signals sections of a solve result.
// Rows are ordered by node name, then port name, so output is
// deterministic across runs.
func WriteCSV(w io.Writer, result *sim.SystemResult, opts Options) error {
	if result == nil {
		return fmt.Errorf("write csv: nil result")
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := writeStates(cw, result, opts); err != nil {
		return err
	}
	if err := writeSignals(cw, result, opts); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the tabular result to a file, truncating any existing content
func Save(path string, result *sim.SystemResult, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save csv %s: %w", path, err)
	}
	if err := WriteCSV(f, result, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeStates(cw *csv.Writer, result *sim.SystemResult, opts Options) error {
	if err := cw.Write([]string{"states"}); err != nil {
		return err
	}
	if err := cw.Write(stateHeader); err != nil {
		return err
	}

	for _, name := range sortedKeys(result.Models) {
		mr := result.Models[name]
		for _, port := range sortedKeys(mr.States) {
			st := mr.States[port]
			if st == nil {
				continue
			}
			row := []string{
				mr.Name,
				mr.Kind,
				port,
				st.FluidName(),
				formatFloat(st.T(), opts),
				formatFloat(st.P(), opts),
				formatFloat(st.Hmass(), opts),
				formatFloat(st.Smass(), opts),
				formatFloat(st.MFlow(), opts),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSignals(cw *csv.Writer, result *sim.SystemResult, opts Options) error {
	if err := cw.Write([]string{"signals"}); err != nil {
		return err
	}
	if err := cw.Write(signalHeader); err != nil {
		return err
	}

	// Models may carry signal ports (sensors); they come first, then blocks.
	for _, name := range sortedKeys(result.Models) {
		mr := result.Models[name]
		for _, port := range sortedKeys(mr.Signals) {
			row := []string{mr.Name, mr.Kind, port, formatSignal(mr.Signals[port], opts)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	for _, name := range sortedKeys(result.Blocks) {
		br := result.Blocks[name]
		for _, port := range sortedKeys(br.Signals) {
			row := []string{br.Name, br.Kind, port, formatSignal(br.Signals[port], opts)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatFloat(v float64, opts Options) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if opts.DecimalComma {
		s = strings.ReplaceAll(s, ".", ",")
	}
	return s
}

func formatSignal(sig sim.Signal, opts Options) string {
	if v, ok := sig.Float(); ok && sig.Type() == sim.SignalFloat {
		return formatFloat(v, opts)
	}
	return sig.String()
}
