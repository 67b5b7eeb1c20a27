package goal

import (
	"sort"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
)

// Assignment is one chosen placement in a successful coverage: the
// placement, the enemies it clears and the attacks still legal for all
// of them.
type Assignment struct {
	Placement Placement
	Attacks   Attack
	Members   []arena.Enemy
}

// IsGoal reports whether the arena can be cleared in one attack per
// group: every enemy lies under some placement of a catalog entry, the
// chosen placements are pairwise disjoint, each is clearable with an
// available attack, and no more than GroupLimit placements are used.
// An empty board is trivially a goal.
func (c *Catalog) IsGoal(a arena.Arena) bool {
	_, ok := c.Cover(a)
	return ok
}

// Cover searches for a goal assignment and returns it. The search is a
// backtracking exact-cover walk over the precomputed placements,
// most-constrained enemy first.
func (c *Catalog) Cover(a arena.Arena) ([]Assignment, bool) {
	enemies := a.Enemies()
	if len(enemies) == 0 {
		return nil, true
	}

	limit := c.GroupLimit(a)
	tools := a.Tools()

	groupMask := map[int]uint64{}
	for _, e := range enemies {
		if e.Group > 0 {
			groupMask[e.Group] |= 1 << uint(e.Position.Index())
		}
	}

	// Candidate placements per enemy, cheapest options first so dead
	// ends surface early.
	type candidate struct {
		enemy      arena.Enemy
		placements []Placement
	}
	candidates := make([]candidate, len(enemies))
	for i, e := range enemies {
		cand := candidate{enemy: e}
		for _, p := range c.placements {
			if p.Contains(e.Position) && c.admissible(p, groupMask, enemies, tools) {
				cand.placements = append(cand.placements, p)
			}
		}
		candidates[i] = cand
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].placements) < len(candidates[j].placements)
	})

	var chosen []Assignment
	var walk func(coveredCells uint64) bool
	walk = func(coveredCells uint64) bool {
		// Next uncovered enemy in constraint order.
		var next *candidate
		for i := range candidates {
			if coveredCells&(1<<uint(candidates[i].enemy.Position.Index())) == 0 {
				next = &candidates[i]
				break
			}
		}
		if next == nil {
			return true
		}
		if len(chosen) >= limit {
			return false
		}
		for _, p := range next.placements {
			if p.Cells&coveredCells != 0 {
				continue // placements must not overlap
			}
			members, set := c.membersOf(p, enemies)
			if !satisfiable(set, tools) {
				continue
			}
			chosen = append(chosen, Assignment{Placement: p, Attacks: set, Members: members})
			if walk(coveredCells | p.Cells) {
				return true
			}
			chosen = chosen[:len(chosen)-1]
		}
		return false
	}

	if !walk(0) {
		return nil, false
	}
	return chosen, true
}

// admissible pre-filters a candidate placement for an enemy: the
// attack whitelist over its members must be satisfiable and explicit
// groups may not be torn apart by it.
func (c *Catalog) admissible(p Placement, groupMask map[int]uint64, enemies []arena.Enemy, tools arena.Tools) bool {
	members, set := c.membersOf(p, enemies)
	if !satisfiable(set, tools) {
		return false
	}
	for _, m := range members {
		if m.Group > 0 && groupMask[m.Group]&^p.Cells != 0 {
			return false // the rest of the group is outside the placement
		}
	}
	return len(members) > 0
}

// membersOf collects the enemies inside a placement and the attack set
// legal for all of them.
func (c *Catalog) membersOf(p Placement, enemies []arena.Enemy) ([]arena.Enemy, Attack) {
	var members []arena.Enemy
	set := p.Entry.Attacks
	for _, e := range enemies {
		if p.Contains(e.Position) {
			members = append(members, e)
			set &= AllowedAttacks(e.Weakness)
		}
	}
	return members, set
}
