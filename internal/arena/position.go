// Package arena models the circular battle arena: four concentric rings
// of twelve cells each, the enemies standing on them, and the two move
// families (ring rotations and column shifts) as permutations of cell
// contents. An Arena is a plain value type indexed by canonical cell
// position, so cloning one for a search branch is a struct copy.
package arena

import (
	"errors"
	"fmt"
)

// Board geometry. Ring 0 is the innermost ring, column 0 sits on the
// reference axis and columns count clockwise.
const (
	NumRings   = 4
	NumColumns = 12
	NumCells   = NumRings * NumColumns

	// LoopLen is the length of the track a column shift moves along:
	// column c and its opposite c+6 form one continuous 8-cell loop.
	LoopLen = 2 * NumRings

	// NumLoops is the number of distinct column loops (c1..c6; the
	// remaining columns are the far halves of those loops).
	NumLoops = NumColumns / 2
)

// Domain errors shared by the arena and the layers above it.
var (
	// ErrInvalidPosition reports a ring or column outside the board.
	ErrInvalidPosition = errors.New("arena: position out of range")

	// ErrOccupiedCell reports a strict placement onto a non-empty cell.
	ErrOccupiedCell = errors.New("arena: cell already occupied")

	// ErrInvalidMove reports unparseable or out-of-range move notation.
	ErrInvalidMove = errors.New("arena: invalid move")

	// ErrUnknownTool reports a tool name outside the known tool set.
	ErrUnknownTool = errors.New("arena: unknown tool")
)

// Position identifies one cell: ring 0..3 (0 innermost) and column
// 0..11. The 1-based r1..r4 / c1..c12 notation used by the command
// language exists only at the interpreter boundary.
type Position struct {
	Ring   int
	Column int
}

// At builds a validated position from 0-based ring and column indices.
func At(ring, column int) (Position, error) {
	if ring < 0 || ring >= NumRings {
		return Position{}, fmt.Errorf("%w: ring %d not in 0..%d", ErrInvalidPosition, ring, NumRings-1)
	}
	if column < 0 || column >= NumColumns {
		return Position{}, fmt.Errorf("%w: column %d not in 0..%d", ErrInvalidPosition, column, NumColumns-1)
	}
	return Position{Ring: ring, Column: column}, nil
}

// Index returns the canonical cell index ring*12+column.
func (p Position) Index() int {
	return p.Ring*NumColumns + p.Column
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Ring >= 0 && p.Ring < NumRings && p.Column >= 0 && p.Column < NumColumns
}

// Opposite returns the column paired with c on the same shift loop.
func Opposite(column int) int {
	return (column + NumColumns/2) % NumColumns
}

func positionAt(index int) Position {
	return Position{Ring: index / NumColumns, Column: index % NumColumns}
}

// Apply returns the position an occupant of p ends up at after m.
// Moves are total: positions not touched by m are returned unchanged.
func (p Position) Apply(m Move) Position {
	switch m.Kind {
	case MoveRing:
		if p.Ring != m.Index {
			return p
		}
		k := mod(m.Steps, NumColumns)
		p.Column = (p.Column + k) % NumColumns
		return p
	case MoveColumn:
		steps := m.Steps
		if p.Column == Opposite(m.Index) {
			// The far half of the loop runs in the opposite direction:
			// outward there is inward here.
			steps = -steps
		} else if p.Column != m.Index {
			return p
		}
		k := mod(steps, LoopLen)
		mirror := (p.Ring + k) % LoopLen
		if mirror < NumRings {
			p.Ring = mirror
		} else {
			// Pushed past the outermost ring: re-enter on the opposite
			// column, outermost ring first.
			p.Ring = LoopLen - 1 - mirror
			p.Column = Opposite(p.Column)
		}
		return p
	default:
		return p
	}
}

// mod reduces v into 0..n-1 for any sign of v.
func mod(v, n int) int {
	return (v%n + n) % n
}
