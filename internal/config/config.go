// Package config provides YAML-based catalog and solver configuration
// loading for the ring puzzle tools.
package config

import (
	"fmt"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/goal"
)

// CatalogConfig describes the attack-shape catalog the goal model
// matches against.
type CatalogConfig struct {
	Entries []EntryConfig `yaml:"entries"`
}

// EntryConfig is one attack shape.
type EntryConfig struct {
	Name    string       `yaml:"name"`
	Attacks []string     `yaml:"attacks"`
	Cells   []CellConfig `yaml:"cells"`
}

// CellConfig names one cell of a shape. Ring is 1-based like the
// command notation; Column is the offset from the placement column.
type CellConfig struct {
	Ring   int `yaml:"ring"`
	Column int `yaml:"column"`
}

// SolverConfig tunes the search engine.
type SolverConfig struct {
	// Workers is the size of the root fan-out pool; 0 means one per
	// CPU.
	Workers int `yaml:"workers"`
	// MaxDepth caps unbounded searches.
	MaxDepth int `yaml:"max_depth"`
}

// Catalog converts the configuration into a validated goal catalog.
func (c CatalogConfig) Catalog() (*goal.Catalog, error) {
	entries := make([]goal.Entry, 0, len(c.Entries))
	for _, e := range c.Entries {
		var attacks goal.Attack
		for _, name := range e.Attacks {
			a, err := goal.ParseAttack(name)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", e.Name, err)
			}
			attacks |= a
		}
		cells := make([]arena.Position, 0, len(e.Cells))
		for _, cell := range e.Cells {
			cells = append(cells, arena.Position{Ring: cell.Ring - 1, Column: cell.Column})
		}
		entries = append(entries, goal.Entry{Name: e.Name, Attacks: attacks, Cells: cells})
	}
	return goal.New(entries)
}
