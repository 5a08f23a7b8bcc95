package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// Archive is the persisted form of a solve result. It is a plain data
// mirror of SystemResult so archives remain readable without a live
// property backend.
type Archive struct {
	ID         string                  `json:"id"`
	Status     string                  `json:"status"`
	Message    string                  `json:"message"`
	Error      string                  `json:"error,omitempty"`
	Iterations int                     `json:"iterations"`
	Duration   time.Duration           `json:"duration_ns"`
	Models     map[string]ArchiveModel `json:"models,omitempty"`
	Blocks     map[string]ArchiveBlock `json:"blocks,omitempty"`
}

// ArchiveModel snapshots one model's ports and balances
type ArchiveModel struct {
	Name     string                   `json:"name"`
	Kind     string                   `json:"kind"`
	States   map[string]ArchiveState  `json:"states,omitempty"`
	Signals  map[string]ArchiveSignal `json:"signals,omitempty"`
	Balances ArchiveBalances          `json:"balances"`
}

// ArchiveBlock snapshots one block's signal ports
type ArchiveBlock struct {
	Name    string                   `json:"name"`
	Kind    string                   `json:"kind"`
	Signals map[string]ArchiveSignal `json:"signals,omitempty"`
}

// ArchiveState is a flat thermodynamic state snapshot
type ArchiveState struct {
	Fluid   string  `json:"fluid"`
	Kind    string  `json:"kind"`
	P       float64 `json:"p"`
	T       float64 `json:"T"`
	Hmass   float64 `json:"hmass"`
	Smass   float64 `json:"smass"`
	Rhomass float64 `json:"rhomass"`
	W       float64 `json:"w,omitempty"`
	MFlow   float64 `json:"m_flow"`
}

// ArchiveSignal is a typed scalar snapshot
type ArchiveSignal struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ArchiveBalances mirrors a model's balance triple
type ArchiveBalances struct {
	Energy   float64 `json:"energy"`
	Momentum float64 `json:"momentum"`
	Mass     float64 `json:"mass"`
}

// NewArchive converts a live solve result into its persisted form
func NewArchive(result *sim.SystemResult) *Archive {
	a := &Archive{
		ID:         result.ID.String(),
		Status:     result.Status.String(),
		Message:    result.Message,
		Iterations: result.Iterations,
		Duration:   result.Duration,
	}
	if result.Err != nil {
		a.Error = result.Err.Error()
	}
	if len(result.Models) > 0 {
		a.Models = make(map[string]ArchiveModel, len(result.Models))
		for name, mr := range result.Models {
			a.Models[name] = archiveModel(mr)
		}
	}
	if len(result.Blocks) > 0 {
		a.Blocks = make(map[string]ArchiveBlock, len(result.Blocks))
		for name, br := range result.Blocks {
			a.Blocks[name] = ArchiveBlock{
				Name:    br.Name,
				Kind:    br.Kind,
				Signals: archiveSignals(br.Signals),
			}
		}
	}
	return a
}

func archiveModel(mr sim.ModelResult) ArchiveModel {
	am := ArchiveModel{
		Name:    mr.Name,
		Kind:    mr.Kind,
		Signals: archiveSignals(mr.Signals),
		Balances: ArchiveBalances{
			Energy:   mr.Balances.Energy,
			Momentum: mr.Balances.Momentum,
			Mass:     mr.Balances.Mass,
		},
	}
	if len(mr.States) > 0 {
		am.States = make(map[string]ArchiveState, len(mr.States))
		for port, st := range mr.States {
			if st == nil {
				continue
			}
			am.States[port] = ArchiveState{
				Fluid:   st.FluidName(),
				Kind:    st.Kind().String(),
				P:       st.P(),
				T:       st.T(),
				Hmass:   st.Hmass(),
				Smass:   st.Smass(),
				Rhomass: st.Rhomass(),
				W:       st.W(),
				MFlow:   st.MFlow(),
			}
		}
	}
	return am
}

func archiveSignals(signals map[string]sim.Signal) map[string]ArchiveSignal {
	if len(signals) == 0 {
		return nil
	}
	out := make(map[string]ArchiveSignal, len(signals))
	for port, sig := range signals {
		out[port] = ArchiveSignal{Type: sig.Type().String(), Value: sig.String()}
	}
	return out
}

// WriteArchive writes a snappy-compressed JSON snapshot of the result
func WriteArchive(w io.Writer, result *sim.SystemResult) error {
	if result == nil {
		return fmt.Errorf("write archive: nil result")
	}
	data, err := json.Marshal(NewArchive(result))
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	if _, err := w.Write(snappy.Encode(nil, data)); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// ReadArchive decodes a snapshot previously written by WriteArchive
func ReadArchive(r io.Reader) (*Archive, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return &a, nil
}

// SaveArchive writes the compressed snapshot to a file
func SaveArchive(path string, result *sim.SystemResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save archive %s: %w", path, err)
	}
	if err := WriteArchive(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadArchive reads a compressed snapshot from a file
func LoadArchive(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load archive %s: %w", path, err)
	}
	defer f.Close()
	return ReadArchive(f)
}
