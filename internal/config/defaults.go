package config

import (
	_ "embed"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

//go:embed defaults/solver.yaml
var defaultSolverYAML []byte

// DefaultCatalogConfig returns the attack shapes of the original game:
// a full column lane and a 2x2 hammer block on the inner rings.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Entries: []EntryConfig{
			{
				Name:    "lane",
				Attacks: []string{"jump", "boots", "hammer-throw"},
				Cells: []CellConfig{
					{Ring: 1, Column: 0},
					{Ring: 2, Column: 0},
					{Ring: 3, Column: 0},
					{Ring: 4, Column: 0},
				},
			},
			{
				Name:    "block",
				Attacks: []string{"hammer"},
				Cells: []CellConfig{
					{Ring: 1, Column: 0},
					{Ring: 1, Column: 1},
					{Ring: 2, Column: 0},
					{Ring: 2, Column: 1},
				},
			},
		},
	}
}

// DefaultSolverConfig returns the default search tuning.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Workers:  0,
		MaxDepth: 100,
	}
}
