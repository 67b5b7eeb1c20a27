package goal

import (
	"errors"
	"testing"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
)

func TestParseAttack(t *testing.T) {
	tests := []struct {
		name string
		want Attack
		ok   bool
	}{
		{"jump", AttackJump, true},
		{"hammer", AttackHammer, true},
		{"hammer-throw", AttackThrow, true},
		{"boots", AttackBoots, true},
		{"laser", 0, false},
	}

	for _, tc := range tests {
		got, err := ParseAttack(tc.name)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseAttack(%q) failed: %v", tc.name, err)
			} else if got != tc.want {
				t.Errorf("ParseAttack(%q) = %v, want %v", tc.name, got, tc.want)
			}
		} else if err == nil {
			t.Errorf("ParseAttack(%q) accepted an unknown attack", tc.name)
		}
	}
}

func TestNewRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty catalog", nil},
		{"no attacks", []Entry{{Name: "x", Cells: []arena.Position{{}}}}},
		{"no cells", []Entry{{Name: "x", Attacks: AttackJump}}},
		{"cell off board", []Entry{{Name: "x", Attacks: AttackJump, Cells: []arena.Position{{Ring: 4}}}}},
		{"duplicate cell", []Entry{{Name: "x", Attacks: AttackJump, Cells: []arena.Position{{}, {}}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.entries); err == nil {
				t.Error("New() accepted an invalid catalog")
			}
		})
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()
	if got := len(c.Entries()); got != 2 {
		t.Fatalf("Default() has %d entries, want 2", got)
	}
	if got := c.MaxSize(); got != 4 {
		t.Errorf("MaxSize() = %d, want 4", got)
	}
	// Each entry yields one placement per column rotation.
	if got := len(c.placements); got != 2*arena.NumColumns {
		t.Errorf("placement table has %d entries, want %d", got, 2*arena.NumColumns)
	}
}

func TestGroupLimit(t *testing.T) {
	c := Default()
	a := arena.New()
	place(t, &a, 2, "1234", arena.WeakNone)
	place(t, &a, 4, "1", arena.WeakNone)

	if got := c.GroupLimit(a); got != 2 {
		t.Errorf("GroupLimit() = %d for 5 enemies, want 2", got)
	}

	a.SetGroups(4)
	if got := c.GroupLimit(a); got != 4 {
		t.Errorf("GroupLimit() = %d with 4 declared, want 4", got)
	}
}

func TestValidateGroupCount(t *testing.T) {
	c := Default()
	a := arena.New()
	place(t, &a, 2, "1234", arena.WeakNone)
	place(t, &a, 3, "1234", arena.WeakNone)
	place(t, &a, 4, "1", arena.WeakNone)

	if err := c.ValidateGroupCount(a, 3); err != nil {
		t.Errorf("ValidateGroupCount(3) failed for 9 enemies: %v", err)
	}
	if err := c.ValidateGroupCount(a, 2); !errors.Is(err, ErrInvalidGroupCount) {
		t.Errorf("ValidateGroupCount(2) error = %v, want ErrInvalidGroupCount", err)
	}
	if err := c.ValidateGroupCount(a, 0); !errors.Is(err, ErrInvalidGroupCount) {
		t.Errorf("ValidateGroupCount(0) error = %v, want ErrInvalidGroupCount", err)
	}
}

func TestMatches(t *testing.T) {
	c := Default()
	lane := c.Entries()[0]
	block := c.Entries()[1]
	tools := arena.DefaultTools()

	pos := func(ring, column int) arena.Position {
		p, err := arena.At(ring, column)
		if err != nil {
			t.Fatalf("At failed: %v", err)
		}
		return p
	}

	column := []arena.Enemy{
		{Position: pos(0, 5)},
		{Position: pos(2, 5)},
	}
	if !c.Matches(column, lane, tools) {
		t.Error("two enemies on one column should match the lane")
	}
	if c.Matches(column, block, tools) {
		t.Error("an enemy on ring 3 cannot match the inner block")
	}

	spread := []arena.Enemy{
		{Position: pos(0, 5)},
		{Position: pos(0, 8)},
	}
	if c.Matches(spread, lane, tools) {
		t.Error("enemies on different columns must not match a lane")
	}

	if !c.Matches(nil, lane, tools) {
		t.Error("an empty group is vacuously satisfied")
	}

	hammerWeak := []arena.Enemy{{Position: pos(1, 3), Weakness: arena.WeakHammer}}
	noHammer := arena.Tools{Hammer: false, Boots: true}
	if c.Matches(hammerWeak, lane, noHammer) {
		t.Error("a hammer-weak lane needs the throwable hammer")
	}
	if !c.Matches(hammerWeak, block, noHammer) {
		t.Error("a hammer swing needs no tool")
	}
}
