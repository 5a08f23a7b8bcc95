package visualization

// HierarchicalLayout arranges components in flow order: boundary sources on
// the first level, everything downstream on later levels.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &HierarchicalLayout{config: config}
}

// ComputeLayout arranges components level by level
func (hl *HierarchicalLayout) ComputeLayout(f *Flowsheet) (map[string]Position, error) {
	positions := make(map[string]Position)

	if len(f.Nodes) == 0 {
		return positions, nil
	}

	// Roots are components without upstream connections
	roots := make([]string, 0)
	for _, name := range f.Nodes {
		if len(f.incoming(name)) == 0 {
			roots = append(roots, name)
		}
	}

	if len(roots) == 0 {
		// Pure cycle, start from the first registered component
		roots = []string{f.Nodes[0]}
	}

	// Build levels using BFS
	levels := make([][]string, 0)
	visited := make(map[string]bool)
	currentLevel := roots

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]string, 0)

		for _, name := range currentLevel {
			visited[name] = true
			for _, succ := range f.outgoing(name) {
				if !visited[succ] {
					nextLevel = append(nextLevel, succ)
					visited[succ] = true
				}
			}
		}

		currentLevel = nextLevel
	}

	// Add unvisited components to the last level
	for _, name := range f.Nodes {
		if !visited[name] {
			levels[len(levels)-1] = append(levels[len(levels)-1], name)
		}
	}

	// Position components
	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		levelWidth := hl.config.Width - 2*hl.config.Padding
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, name := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[name] = Position{X: x, Y: y}
		}
	}

	return positions, nil
}
