package arena

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestPlaceStrictAndReplace(t *testing.T) {
	a := New()
	pos := Position{Ring: 1, Column: 4}

	if err := a.Place(Enemy{Position: pos, Weakness: WeakJump}); err != nil {
		t.Fatalf("Place() on empty cell failed: %v", err)
	}

	err := a.Place(Enemy{Position: pos, Weakness: WeakHammer})
	if !errors.Is(err, ErrOccupiedCell) {
		t.Fatalf("Place() on occupied cell error = %v, want ErrOccupiedCell", err)
	}

	if err := a.Replace(Enemy{Position: pos, Weakness: WeakHammer}); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}
	e, ok := a.At(pos)
	if !ok || e.Weakness != WeakHammer {
		t.Errorf("At() after Replace = %+v (ok=%v), want hammer-weak enemy", e, ok)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	a := New()
	pos := Position{Ring: 2, Column: 9}

	if err := a.Place(Enemy{Position: pos}); err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if err := a.Remove(pos); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, ok := a.At(pos); ok {
		t.Fatal("enemy still present after Remove()")
	}
	// Removing again is a no-op success.
	if err := a.Remove(pos); err != nil {
		t.Fatalf("repeated Remove() failed: %v", err)
	}
}

func TestMoveClosure(t *testing.T) {
	// Applying any move only repositions enemies: the multiset of
	// (weakness, group) pairs is preserved.
	a := testArena(t)
	before := enemyFingerprint(a)

	for _, m := range AllMoves() {
		moved := a.Apply(m)
		if got := moved.Count(); got != a.Count() {
			t.Fatalf("Apply(%s) changed enemy count: %d -> %d", m, a.Count(), got)
		}
		if got := enemyFingerprint(moved); got != before {
			t.Fatalf("Apply(%s) changed the enemy multiset: %q -> %q", m, before, got)
		}
	}
}

func enemyFingerprint(a Arena) string {
	var parts []string
	for _, e := range a.Enemies() {
		parts = append(parts, string(e.Weakness.Symbol()))
	}
	sort.Strings(parts)
	return strings.Join(parts, "")
}

func TestColumnLoopPeriodicity(t *testing.T) {
	a := testArena(t)
	for column := 0; column < NumColumns; column++ {
		full := Move{Kind: MoveColumn, Index: column, Steps: LoopLen}
		if a.Apply(full) != a {
			t.Errorf("shifting column %d by %d is not the identity", column+1, LoopLen)
		}
	}
}

func TestColumnOppositeEquivalence(t *testing.T) {
	// Shifting column c by k is the same permutation as shifting its
	// opposite column by -k.
	a := testArena(t)
	for column := 0; column < NumLoops; column++ {
		for k := 1; k < LoopLen; k++ {
			direct := a.Apply(Move{Kind: MoveColumn, Index: column, Steps: k})
			mirrored := a.Apply(Move{Kind: MoveColumn, Index: Opposite(column), Steps: -k})
			if direct != mirrored {
				t.Fatalf("c%d %d and c%d %d disagree", column+1, k, Opposite(column)+1, -k)
			}
		}
	}
}

func TestRingRotationPeriodicity(t *testing.T) {
	a := testArena(t)
	for ring := 0; ring < NumRings; ring++ {
		if a.Apply(Move{Kind: MoveRing, Index: ring, Steps: NumColumns}) != a {
			t.Errorf("rotating ring %d by %d is not the identity", ring+1, NumColumns)
		}
		for k := 1; k < NumColumns; k++ {
			roundTrip := a.
				Apply(Move{Kind: MoveRing, Index: ring, Steps: k}).
				Apply(Move{Kind: MoveRing, Index: ring, Steps: NumColumns - k})
			if roundTrip != a {
				t.Errorf("r%d %d then r%d %d is not the identity", ring+1, k, ring+1, NumColumns-k)
			}
		}
	}
}

func TestKeyDistinguishesLayouts(t *testing.T) {
	a := New()
	b := New()

	if a.Key() != b.Key() {
		t.Error("empty arenas disagree on Key()")
	}

	if err := a.Place(Enemy{Position: Position{Ring: 0, Column: 0}, Weakness: WeakJump}); err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if err := b.Place(Enemy{Position: Position{Ring: 0, Column: 0}, Weakness: WeakHammer}); err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if a.Key() == b.Key() {
		t.Error("Key() ignores the weakness of an occupant")
	}

	c := New()
	if err := c.Place(Enemy{Position: Position{Ring: 0, Column: 0}, Weakness: WeakJump, Group: 2}); err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if a.Key() == c.Key() {
		t.Error("Key() ignores explicit group assignments")
	}
}

func TestStringShowsBoard(t *testing.T) {
	a := New()
	if err := a.Place(Enemy{Position: Position{Ring: 3, Column: 0}, Weakness: WeakHammer}); err != nil {
		t.Fatalf("Place() failed: %v", err)
	}

	board := a.String()
	if !strings.Contains(board, "(1 enemies)") {
		t.Errorf("board header missing enemy count:\n%s", board)
	}
	if !strings.Contains(board, "H") {
		t.Errorf("board does not show the placed enemy:\n%s", board)
	}
	if lines := strings.Split(board, "\n"); len(lines) != 10 {
		t.Errorf("board has %d lines, want 10:\n%s", len(lines), board)
	}
}
