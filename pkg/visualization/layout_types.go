// Package visualization computes 2D layouts of a system's flowsheet
// topology for diagram rendering.
package visualization

import (
	"github.com/dd0wney/cluso-thermosim/pkg/sim"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(f *Flowsheet) (map[string]Position, error)
}

// Flowsheet is the component-level topology of a system: one node per model
// or block, one edge per port-to-port connection between distinct owners.
type Flowsheet struct {
	Nodes []string
	Edges []sim.TopologyEdge
}

// FromSystem extracts the flowsheet of an assembled system
func FromSystem(sys *sim.System) *Flowsheet {
	nodes, edges := sys.Topology()
	return &Flowsheet{Nodes: nodes, Edges: edges}
}

// outgoing returns the downstream neighbors of a node
func (f *Flowsheet) outgoing(name string) []string {
	var out []string
	for _, e := range f.Edges {
		if e.From == name {
			out = append(out, e.To)
		}
	}
	return out
}

// incoming returns the upstream neighbors of a node
func (f *Flowsheet) incoming(name string) []string {
	var in []string
	for _, e := range f.Edges {
		if e.To == name {
			in = append(in, e.From)
		}
	}
	return in
}
