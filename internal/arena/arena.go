package arena

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is one slot of the board. The zero value is an empty cell.
type Cell struct {
	Occupied bool
	Weakness Weakness
	Group    int
}

// Arena is the full board state: 48 cells indexed by canonical
// position, the available tools and the declared enemy group count.
// It is a value type, so assignment is a deep copy and search branches
// clone it freely without sharing mutable state.
type Arena struct {
	cells  [NumCells]Cell
	tools  Tools
	groups int
}

// New returns an empty arena with the default tool set.
func New() Arena {
	return Arena{tools: DefaultTools()}
}

// Clone returns an independent copy of the arena.
func (a Arena) Clone() Arena {
	return a
}

// Place puts an enemy on its position, failing with ErrOccupiedCell if
// the cell already holds one. Use Replace for explicit overwrites.
func (a *Arena) Place(e Enemy) error {
	if !e.Position.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidPosition, e.Position)
	}
	if a.cells[e.Position.Index()].Occupied {
		return fmt.Errorf("%w: r%d c%d", ErrOccupiedCell, e.Position.Ring+1, e.Position.Column+1)
	}
	a.cells[e.Position.Index()] = Cell{Occupied: true, Weakness: e.Weakness, Group: e.Group}
	return nil
}

// Replace puts an enemy on its position, overwriting any occupant.
func (a *Arena) Replace(e Enemy) error {
	if !e.Position.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidPosition, e.Position)
	}
	a.cells[e.Position.Index()] = Cell{Occupied: true, Weakness: e.Weakness, Group: e.Group}
	return nil
}

// Remove clears a cell. Removing from an empty cell is a no-op.
func (a *Arena) Remove(p Position) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidPosition, p)
	}
	a.cells[p.Index()] = Cell{}
	return nil
}

// At returns the enemy on p, if any.
func (a Arena) At(p Position) (Enemy, bool) {
	if !p.Valid() {
		return Enemy{}, false
	}
	c := a.cells[p.Index()]
	if !c.Occupied {
		return Enemy{}, false
	}
	return Enemy{Position: p, Weakness: c.Weakness, Group: c.Group}, true
}

// Count returns the number of enemies on the board.
func (a Arena) Count() int {
	n := 0
	for _, c := range a.cells {
		if c.Occupied {
			n++
		}
	}
	return n
}

// Enemies returns every enemy in canonical cell order.
func (a Arena) Enemies() []Enemy {
	var enemies []Enemy
	for i, c := range a.cells {
		if c.Occupied {
			enemies = append(enemies, Enemy{Position: positionAt(i), Weakness: c.Weakness, Group: c.Group})
		}
	}
	return enemies
}

// Tools returns the current equipment set.
func (a Arena) Tools() Tools {
	return a.tools
}

// SetTool updates the availability of the named tool.
func (a *Arena) SetTool(name string, present bool) error {
	return a.tools.Set(name, present)
}

// Groups returns the declared enemy group count, 0 meaning the goal
// model derives it from the enemy count.
func (a Arena) Groups() int {
	return a.groups
}

// SetGroups declares the enemy group count. Validation against the
// board happens at the session boundary, which knows the catalog.
func (a *Arena) SetGroups(n int) {
	a.groups = n
}

// Clear removes every enemy and restores the default configuration.
func (a *Arena) Clear() {
	*a = New()
}

// Apply returns the arena after the move, implemented as an index
// remap of cell contents. Moves never create or destroy enemies.
func (a Arena) Apply(m Move) Arena {
	next := a
	next.cells = [NumCells]Cell{}
	for i, c := range a.cells {
		if !c.Occupied {
			continue
		}
		next.cells[positionAt(i).Apply(m).Index()] = c
	}
	return next
}

// ApplyAll replays an ordered move list and returns the final arena.
func (a Arena) ApplyAll(moves []Move) Arena {
	for _, m := range moves {
		a = a.Apply(m)
	}
	return a
}

// Key returns a canonical encoding of the enemy layout, used by the
// search engine to detect states reached by different move sequences.
// Tool availability and the group declaration are constant during one
// search and deliberately excluded.
func (a Arena) Key() string {
	var sb strings.Builder
	sb.Grow(NumCells)
	for _, c := range a.cells {
		if !c.Occupied {
			sb.WriteByte('.')
			continue
		}
		sb.WriteRune(c.Weakness.Symbol())
		if c.Group > 0 {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(c.Group))
		}
	}
	return sb.String()
}

// String renders the board the way the interpreter shows it: ring 4 on
// the outside, column 1 up and to the right of the center, columns
// counting clockwise.
func (a Arena) String() string {
	sym := func(column, ring int) rune {
		if e, ok := a.At(Position{Ring: ring, Column: column}); ok {
			return e.Weakness.Symbol()
		}
		return '.'
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "  %c       %c %c       %c  (%d enemies)\n",
		sym(10, 3), sym(11, 3), sym(0, 3), sym(1, 3), a.Count())
	fmt.Fprintf(&sb, "    %c     %c %c     %c  \n",
		sym(10, 2), sym(11, 2), sym(0, 2), sym(1, 2))
	fmt.Fprintf(&sb, "      %c   %c %c   %c    \n",
		sym(10, 1), sym(11, 1), sym(0, 1), sym(1, 1))
	fmt.Fprintf(&sb, "        %c %c %c %c      \n",
		sym(10, 0), sym(11, 0), sym(0, 0), sym(1, 0))
	fmt.Fprintf(&sb, "%c %c %c %c         %c %c %c %c\n",
		sym(9, 3), sym(9, 2), sym(9, 1), sym(9, 0),
		sym(2, 0), sym(2, 1), sym(2, 2), sym(2, 3))
	fmt.Fprintf(&sb, "%c %c %c %c         %c %c %c %c\n",
		sym(8, 3), sym(8, 2), sym(8, 1), sym(8, 0),
		sym(3, 0), sym(3, 1), sym(3, 2), sym(3, 3))
	fmt.Fprintf(&sb, "        %c %c %c %c      \n",
		sym(7, 0), sym(6, 0), sym(5, 0), sym(4, 0))
	fmt.Fprintf(&sb, "      %c   %c %c   %c    \n",
		sym(7, 1), sym(6, 1), sym(5, 1), sym(4, 1))
	fmt.Fprintf(&sb, "    %c     %c %c     %c  \n",
		sym(7, 2), sym(6, 2), sym(5, 2), sym(4, 2))
	fmt.Fprintf(&sb, "  %c       %c %c       %c",
		sym(7, 3), sym(6, 3), sym(5, 3), sym(4, 3))
	return sb.String()
}
