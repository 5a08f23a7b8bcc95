package visualization

import (
	"math"
	"math/rand"
)

// ForceDirectedLayout implements force-directed flowsheet layout
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using a force-directed algorithm
func (fdl *ForceDirectedLayout) ComputeLayout(f *Flowsheet) (map[string]Position, error) {
	if len(f.Nodes) == 0 {
		return make(map[string]Position), nil
	}

	// Single component - center it
	if len(f.Nodes) == 1 {
		return map[string]Position{
			f.Nodes[0]: {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}, nil
	}

	// Initialize random positions
	positions := make(map[string]Position)
	for _, name := range f.Nodes {
		positions[name] = Position{
			X: rand.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rand.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	// Undirected adjacency for the attraction pass
	edgeMap := make(map[string]map[string]bool)
	for _, name := range f.Nodes {
		edgeMap[name] = make(map[string]bool)
	}
	for _, e := range f.Edges {
		edgeMap[e.From][e.To] = true
		edgeMap[e.To][e.From] = true
	}

	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(f.Nodes))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]Position)
		for _, name := range f.Nodes {
			forces[name] = Position{X: 0, Y: 0}
		}

		// Repulsion between all components
		for i, name1 := range f.Nodes {
			for j := i + 1; j < len(f.Nodes); j++ {
				name2 := f.Nodes[j]
				dx := positions[name1].X - positions[name2].X
				dy := positions[name1].Y - positions[name2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[name1] = Position{
					X: forces[name1].X + fx,
					Y: forces[name1].Y + fy,
				}
				forces[name2] = Position{
					X: forces[name2].X - fx,
					Y: forces[name2].Y - fy,
				}
			}
		}

		// Attraction between connected components
		for _, name1 := range f.Nodes {
			for name2 := range edgeMap[name1] {
				if _, exists := positions[name2]; !exists {
					continue
				}

				dx := positions[name1].X - positions[name2].X
				dy := positions[name1].Y - positions[name2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[name1] = Position{
					X: forces[name1].X - fx,
					Y: forces[name1].Y - fy,
				}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, name := range f.Nodes {
			fx := forces[name].X
			fy := forces[name].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool

				positions[name] = Position{
					X: positions[name].X + dx,
					Y: positions[name].Y + dy,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}
