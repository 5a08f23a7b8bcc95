package visualization

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteDOT renders the flowsheet as a Graphviz digraph. When positions is
// non-nil the computed coordinates are attached as pos attributes.
func WriteDOT(w io.Writer, f *Flowsheet, positions map[string]Position) error {
	var b strings.Builder
	b.WriteString("digraph flowsheet {\n")
	b.WriteString("\trankdir=LR;\n")
	b.WriteString("\tnode [shape=box];\n")

	for _, name := range f.Nodes {
		if pos, ok := positions[name]; ok {
			fmt.Fprintf(&b, "\t%q [pos=\"%g,%g\"];\n", name, pos.X, pos.Y)
		} else {
			fmt.Fprintf(&b, "\t%q;\n", name)
		}
	}
	for _, e := range f.Edges {
		fmt.Fprintf(&b, "\t%q -> %q;\n", e.From, e.To)
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveDOT writes the rendered flowsheet to a file
func SaveDOT(path string, f *Flowsheet, positions map[string]Position) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save dot %s: %w", path, err)
	}
	if err := WriteDOT(file, f, positions); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
