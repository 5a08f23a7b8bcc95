package visualization

import (
	"math"
)

// CircularLayout arranges components in a circle
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout arranges components in a circle, useful for closed loops
func (cl *CircularLayout) ComputeLayout(f *Flowsheet) (map[string]Position, error) {
	positions := make(map[string]Position)

	if len(f.Nodes) == 0 {
		return positions, nil
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(f.Nodes))

	for i, name := range f.Nodes {
		angle := float64(i) * angleStep
		positions[name] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
