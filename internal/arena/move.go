package arena

import (
	"fmt"
	"strconv"
	"strings"
)

// MoveKind distinguishes the two move families. The set is closed by
// the game: rotations of a ring and shifts along a column loop.
type MoveKind int

const (
	// MoveRing rotates one ring; positive steps are clockwise.
	MoveRing MoveKind = iota
	// MoveColumn shifts one column loop; positive steps are outward on
	// the named column (and therefore inward on its opposite).
	MoveColumn
)

// Move is a pure permutation of the 48 cell contents. Index is the
// 0-based ring (MoveRing) or column (MoveColumn); Steps may be any
// integer, the effective magnitude being taken mod 12 or mod 8.
type Move struct {
	Kind  MoveKind
	Index int
	Steps int
}

// RingMove builds a validated ring rotation.
func RingMove(ring, steps int) (Move, error) {
	if ring < 0 || ring >= NumRings {
		return Move{}, fmt.Errorf("%w: ring %d not in 0..%d", ErrInvalidMove, ring, NumRings-1)
	}
	return Move{Kind: MoveRing, Index: ring, Steps: steps}, nil
}

// ColumnMove builds a validated column shift.
func ColumnMove(column, steps int) (Move, error) {
	if column < 0 || column >= NumColumns {
		return Move{}, fmt.Errorf("%w: column %d not in 0..%d", ErrInvalidMove, column, NumColumns-1)
	}
	return Move{Kind: MoveColumn, Index: column, Steps: steps}, nil
}

// Normalize returns the canonical form used for reporting and
// comparison: ring steps in (-6, 6] with +6 preferred over -6, column
// shifts on the lower-numbered half of the loop with steps in (-4, 4]
// and +4 preferred over -4.
func (m Move) Normalize() Move {
	switch m.Kind {
	case MoveRing:
		m.Steps = mod(m.Steps, NumColumns)
		if m.Steps > NumColumns/2 {
			m.Steps -= NumColumns
		}
	case MoveColumn:
		// Prefer the lower column of the loop pair.
		if m.Index > NumColumns/2 {
			m.Index -= NumColumns / 2
			m.Steps = -m.Steps
		}
		m.Steps = mod(m.Steps, LoopLen)
		if m.Steps > LoopLen/2 {
			m.Steps -= LoopLen
		}
		if m.Steps == -LoopLen/2 {
			m.Steps = LoopLen / 2
		}
	}
	return m
}

// Inverse returns the move undoing m: applying m then m.Inverse()
// leaves any arena unchanged.
func (m Move) Inverse() Move {
	m.Steps = -m.Steps
	return m.Normalize()
}

// Compose merges two moves into a single normalized move when they act
// on the same ring or column loop; ok is false when no single move has
// the combined effect. A loop may be named from either of its two
// columns, in which case the step directions oppose each other.
func Compose(a, b Move) (Move, bool) {
	if a.Kind != b.Kind {
		return Move{}, false
	}
	switch a.Kind {
	case MoveRing:
		if a.Index != b.Index {
			return Move{}, false
		}
		return Move{Kind: MoveRing, Index: a.Index, Steps: a.Steps + b.Steps}.Normalize(), true
	default:
		steps := b.Steps
		switch {
		case a.Index == b.Index:
		case (a.Index+NumColumns/2)%NumColumns == b.Index:
			steps = -steps
		default:
			return Move{}, false
		}
		return Move{Kind: MoveColumn, Index: a.Index, Steps: a.Steps + steps}.Normalize(), true
	}
}

// Magnitude returns the absolute normalized step count, the "twist
// distance" used to rank otherwise equal-length solutions.
func (m Move) Magnitude() int {
	n := m.Normalize()
	if n.Steps < 0 {
		return -n.Steps
	}
	return n.Steps
}

// Identity reports whether the move leaves every cell in place.
func (m Move) Identity() bool {
	return m.Normalize().Steps == 0
}

// String renders the canonical textual notation, e.g. "r1 3" or
// "c4 -2". Coordinates are 1-based in the notation.
func (m Move) String() string {
	n := m.Normalize()
	prefix := "r"
	if n.Kind == MoveColumn {
		prefix = "c"
	}
	return fmt.Sprintf("%s%d %d", prefix, n.Index+1, n.Steps)
}

// ParseMove parses the textual notation "r<ring> <±steps>" or
// "c<column> <±steps>" with 1-based coordinates.
func ParseMove(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("%w: %q needs the form '<r|c><coordinate> <±steps>'", ErrInvalidMove, s)
	}
	var kind MoveKind
	switch {
	case strings.HasPrefix(fields[0], "r"):
		kind = MoveRing
	case strings.HasPrefix(fields[0], "c"):
		kind = MoveColumn
	default:
		return Move{}, fmt.Errorf("%w: %q must name a ring (r) or column (c)", ErrInvalidMove, s)
	}
	coord, err := strconv.Atoi(fields[0][1:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: coordinate in %q is not a number", ErrInvalidMove, s)
	}
	steps, err := strconv.Atoi(fields[1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: step count in %q is not a number", ErrInvalidMove, s)
	}
	if kind == MoveRing {
		return RingMove(coord-1, steps)
	}
	return ColumnMove(coord-1, steps)
}

// AllMoves returns every distinct non-identity move in canonical search
// order: ring rotations first (by ring, then step count 1..11), then
// column shifts (by loop, then step count 1..7). Column loops beyond
// c6 are omitted because a shift of c+6 duplicates a shift of c. The
// ordering is the deterministic tie-break for equal solutions.
func AllMoves() []Move {
	moves := make([]Move, 0, NumRings*(NumColumns-1)+NumLoops*(LoopLen-1))
	for ring := 0; ring < NumRings; ring++ {
		for steps := 1; steps < NumColumns; steps++ {
			moves = append(moves, Move{Kind: MoveRing, Index: ring, Steps: steps})
		}
	}
	for column := 0; column < NumLoops; column++ {
		for steps := 1; steps < LoopLen; steps++ {
			moves = append(moves, Move{Kind: MoveColumn, Index: column, Steps: steps})
		}
	}
	return moves
}

// FormatSolution renders an ordered move list the way the interpreter
// reports it: normalized moves joined by ", ".
func FormatSolution(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}
