package arena

import "fmt"

// Weakness is an enemy's kill requirement: which attacks damage it.
// The zero value means the enemy is unconstrained.
type Weakness uint8

const (
	// WeakNone marks an enemy any attack can clear.
	WeakNone Weakness = iota
	// WeakJump marks an enemy that must be jumped on (iron boots count
	// as a jump).
	WeakJump
	// WeakHammer marks an enemy only a hammer can clear.
	WeakHammer
	// WeakSpiked marks a spiked enemy: jumping on it hurts, so it takes
	// a hammer or iron boots.
	WeakSpiked
)

// Symbol returns the single-character board notation for the weakness.
func (w Weakness) Symbol() rune {
	switch w {
	case WeakJump:
		return 'J'
	case WeakHammer:
		return 'H'
	case WeakSpiked:
		return 'P'
	default:
		return 'E'
	}
}

// ParseWeakness maps the command-language weapon suffix to a weakness.
// The empty string means unconstrained.
func ParseWeakness(s string) (Weakness, error) {
	switch s {
	case "":
		return WeakNone, nil
	case "J", "j":
		return WeakJump, nil
	case "H", "h":
		return WeakHammer, nil
	case "P", "p":
		return WeakSpiked, nil
	default:
		return WeakNone, fmt.Errorf("unknown weapon requirement %q: expected H, J or P", s)
	}
}

// Enemy is one occupant of the arena. Group 0 means the enemy has no
// explicit group assignment and the goal model is free to group it.
type Enemy struct {
	Position Position
	Weakness Weakness
	Group    int
}

// Tool names accepted by SetTool and the +/- tool commands.
const (
	ToolHammer = "hammer"
	ToolBoots  = "boots"
)

// Tools is the set of optional equipment the player carries. Both
// pieces are present by default, matching a fresh session.
type Tools struct {
	Hammer bool
	Boots  bool
}

// DefaultTools returns the full equipment set.
func DefaultTools() Tools {
	return Tools{Hammer: true, Boots: true}
}

// Has reports whether the named tool is available. An empty name means
// the attack in question needs no tool at all.
func (t Tools) Has(name string) bool {
	switch name {
	case "":
		return true
	case ToolHammer:
		return t.Hammer
	case ToolBoots:
		return t.Boots
	default:
		return false
	}
}

// Set updates the availability of the named tool.
func (t *Tools) Set(name string, present bool) error {
	switch name {
	case ToolHammer:
		t.Hammer = present
	case ToolBoots:
		t.Boots = present
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return nil
}
