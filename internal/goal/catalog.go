// Package goal decides whether an arena is won: it holds the catalog of
// attack shapes and tests whether every enemy group fits under one
// catalog placement, so the whole board can be cleared one attack per
// group. The catalog is configuration, not hardcoded game lore.
package goal

import (
	"errors"
	"fmt"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
)

// ErrInvalidGroupCount reports a declared group count that cannot cover
// the enemies on the board.
var ErrInvalidGroupCount = errors.New("goal: invalid group count")

// Attack is a bitset of attack kinds. An enemy's weakness and a catalog
// entry each map to such a set; an area is clearable when the
// intersection over its members is non-empty and one attack in it has
// its tool available.
type Attack uint8

const (
	// AttackJump is a plain jump chain along a column.
	AttackJump Attack = 1 << iota
	// AttackHammer is a hammer swing in front of the player.
	AttackHammer
	// AttackThrow is a thrown hammer, reaching the outer rings. Needs
	// the hammer tool.
	AttackThrow
	// AttackBoots is a jump in iron boots, safe on spiked enemies.
	// Needs the boots tool.
	AttackBoots

	attackAll = AttackJump | AttackHammer | AttackThrow | AttackBoots
)

var attackNames = map[Attack]string{
	AttackJump:   "jump",
	AttackHammer: "hammer",
	AttackThrow:  "hammer-throw",
	AttackBoots:  "boots",
}

// ParseAttack maps a config name to an attack kind.
func ParseAttack(name string) (Attack, error) {
	for a, n := range attackNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("goal: unknown attack kind %q", name)
}

// String lists the kinds in the set.
func (a Attack) String() string {
	if a == 0 {
		return "none"
	}
	s := ""
	for _, kind := range []Attack{AttackJump, AttackHammer, AttackThrow, AttackBoots} {
		if a&kind != 0 {
			if s != "" {
				s += "+"
			}
			s += attackNames[kind]
		}
	}
	return s
}

// toolFor names the tool an attack kind depends on, "" for none.
func toolFor(kind Attack) string {
	switch kind {
	case AttackThrow:
		return arena.ToolHammer
	case AttackBoots:
		return arena.ToolBoots
	default:
		return ""
	}
}

// AllowedAttacks expands a weakness into the attacks that clear it.
func AllowedAttacks(w arena.Weakness) Attack {
	switch w {
	case arena.WeakJump:
		return AttackJump | AttackBoots
	case arena.WeakHammer:
		return AttackHammer | AttackThrow
	case arena.WeakSpiked:
		return AttackHammer | AttackThrow | AttackBoots
	default:
		return attackAll
	}
}

// satisfiable reports whether some attack in the set has its tool
// available.
func satisfiable(set Attack, tools arena.Tools) bool {
	for _, kind := range []Attack{AttackJump, AttackHammer, AttackThrow, AttackBoots} {
		if set&kind != 0 && tools.Has(toolFor(kind)) {
			return true
		}
	}
	return false
}

// Entry is one attack shape: a fixed cluster of cells clearable in a
// single strike, tagged with the attacks that can perform the strike.
// Cells use absolute rings, since the attack's geometry fixes its
// distance from the center; the column coordinate is a rotational
// offset.
type Entry struct {
	Name    string
	Attacks Attack
	Cells   []arena.Position
}

// Size returns the exact enemy count the entry can clear.
func (e Entry) Size() int {
	return len(e.Cells)
}

// Placement is one concrete position of an entry on the board: the
// entry rotated to a column, its cells packed into a 48-bit mask.
type Placement struct {
	Entry *Entry
	Cells uint64
}

// Contains reports whether the placement covers the position.
func (p Placement) Contains(pos arena.Position) bool {
	return p.Cells&(1<<uint(pos.Index())) != 0
}

// Catalog is the validated shape catalog with every placement of every
// entry precomputed (12 column rotations per entry).
type Catalog struct {
	entries    []Entry
	placements []Placement
	maxSize    int
}

// New validates the entries and builds the placement table.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, errors.New("goal: catalog has no entries")
	}
	c := &Catalog{entries: entries}
	for i := range c.entries {
		e := &c.entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("goal: entry %d has no name", i)
		}
		if e.Attacks == 0 {
			return nil, fmt.Errorf("goal: entry %q permits no attacks", e.Name)
		}
		if len(e.Cells) == 0 {
			return nil, fmt.Errorf("goal: entry %q has no cells", e.Name)
		}
		base := uint64(0)
		for _, cell := range e.Cells {
			if !cell.Valid() {
				return nil, fmt.Errorf("goal: entry %q cell %+v: %w", e.Name, cell, arena.ErrInvalidPosition)
			}
			bit := uint64(1) << uint(cell.Index())
			if base&bit != 0 {
				return nil, fmt.Errorf("goal: entry %q lists cell %+v twice", e.Name, cell)
			}
			base |= bit
		}
		if e.Size() > c.maxSize {
			c.maxSize = e.Size()
		}
		for rot := 0; rot < arena.NumColumns; rot++ {
			mask := uint64(0)
			for _, cell := range e.Cells {
				idx := cell.Ring*arena.NumColumns + (cell.Column+rot)%arena.NumColumns
				mask |= uint64(1) << uint(idx)
			}
			c.placements = append(c.placements, Placement{Entry: e, Cells: mask})
		}
	}
	return c, nil
}

// Default returns the catalog matching the original game rules: a full
// column lane (jump chain, iron boots or thrown hammer) and a 2x2
// hammer-swing block on the two inner rings.
func Default() *Catalog {
	c, err := New([]Entry{
		{
			Name:    "lane",
			Attacks: AttackJump | AttackBoots | AttackThrow,
			Cells: []arena.Position{
				{Ring: 0, Column: 0}, {Ring: 1, Column: 0},
				{Ring: 2, Column: 0}, {Ring: 3, Column: 0},
			},
		},
		{
			Name:    "block",
			Attacks: AttackHammer,
			Cells: []arena.Position{
				{Ring: 0, Column: 0}, {Ring: 0, Column: 1},
				{Ring: 1, Column: 0}, {Ring: 1, Column: 1},
			},
		},
	})
	if err != nil {
		panic(err) // the built-in catalog is known good
	}
	return c
}

// Entries returns the catalog entries.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// MaxSize returns the largest entry size, the most enemies one attack
// can clear.
func (c *Catalog) MaxSize() int {
	return c.maxSize
}

// GroupLimit returns the number of attacks available against the
// arena: the declared group count, or ceil(enemies / MaxSize) when none
// was declared (the original solver's default).
func (c *Catalog) GroupLimit(a arena.Arena) int {
	if n := a.Groups(); n > 0 {
		return n
	}
	count := a.Count()
	limit := count / c.maxSize
	if count%c.maxSize != 0 {
		limit++
	}
	return limit
}

// ValidateGroupCount checks a declared group count against the board:
// it must be positive, at least the number of distinct explicit group
// ids, and enough to cover the enemy count at MaxSize enemies per
// group.
func (c *Catalog) ValidateGroupCount(a arena.Arena, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d is not positive", ErrInvalidGroupCount, n)
	}
	distinct := map[int]bool{}
	for _, e := range a.Enemies() {
		if e.Group > 0 {
			distinct[e.Group] = true
		}
	}
	if len(distinct) > n {
		return fmt.Errorf("%w: %d groups declared but %d distinct group ids placed", ErrInvalidGroupCount, n, len(distinct))
	}
	if minimum := (a.Count() + c.maxSize - 1) / c.maxSize; minimum > n {
		return fmt.Errorf("%w: %d enemies need at least %d groups", ErrInvalidGroupCount, a.Count(), minimum)
	}
	return nil
}

// Matches reports whether the group of enemies fits a single placement
// of the entry: all members inside one rotation, a common attack left
// after intersecting their weaknesses, and a tool available for it.
func (c *Catalog) Matches(group []arena.Enemy, e Entry, tools arena.Tools) bool {
	if len(group) == 0 {
		return true // an empty group is vacuously satisfied
	}
	if len(group) > e.Size() {
		return false
	}
	for _, p := range c.placements {
		if p.Entry.Name != e.Name {
			continue
		}
		set := e.Attacks
		inside := true
		for _, member := range group {
			if !p.Contains(member.Position) {
				inside = false
				break
			}
			set &= AllowedAttacks(member.Weakness)
		}
		if inside && satisfiable(set, tools) {
			return true
		}
	}
	return false
}
