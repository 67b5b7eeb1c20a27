package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/goal"
)

// board builds an arena from placement commands of the form
// "<column> <rows>", 1-based like the interpreter notation.
func board(t *testing.T, placements ...[2]int) arena.Arena {
	t.Helper()
	a := arena.New()
	for _, p := range placements {
		column, rows := p[0], p[1]
		for rows > 0 {
			ring := rows%10 - 1
			rows /= 10
			pos, err := arena.At(ring, column-1)
			if err != nil {
				t.Fatalf("bad placement c%d r%d: %v", column, ring+1, err)
			}
			if err := a.Replace(arena.Enemy{Position: pos}); err != nil {
				t.Fatalf("Replace failed: %v", err)
			}
		}
	}
	return a
}

func newTestSolver() *Solver {
	return New(goal.Default(), Options{Workers: 4})
}

func TestSolveSingleMove(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3})

	solution, err := newTestSolver().Solve(context.Background(), a, Request{Mode: ModeOptimalBounded, Bound: 1})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if got := solution.String(); got != "r3 -1" {
		t.Errorf("solution = %q, want %q", got, "r3 -1")
	}
}

func TestSolveTwoMoves(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3}, [2]int{4, 2}, [2]int{5, 123})

	solution, err := newTestSolver().Solve(context.Background(), a, Request{Mode: ModeOptimalBounded, Bound: 2})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if got := solution.String(); got != "r3 -1, c4 -1" {
		t.Errorf("solution = %q, want %q", got, "r3 -1, c4 -1")
	}
}

func TestSolveAlreadyGoal(t *testing.T) {
	a := board(t, [2]int{2, 1234}, [2]int{4, 12}, [2]int{5, 12})

	solution, err := newTestSolver().Solve(context.Background(), a, Request{Mode: ModeOptimal})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(solution) != 0 {
		t.Errorf("goal board should need no moves, got %q", solution)
	}
}

func TestSolveBoundExhausted(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3}, [2]int{4, 2}, [2]int{5, 123})

	_, err := newTestSolver().Solve(context.Background(), a, Request{Mode: ModeOptimalBounded, Bound: 1})
	if !errors.Is(err, ErrNoSolutionWithinBound) {
		t.Fatalf("err = %v, want ErrNoSolutionWithinBound", err)
	}
}

func TestSolveCancelled(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSolver().Solve(ctx, a, Request{Mode: ModeOptimal})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestSolveDeterministic(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3}, [2]int{4, 2}, [2]int{5, 123})
	s := newTestSolver()

	first, err := s.Solve(context.Background(), a, Request{Mode: ModeOptimal})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := s.Solve(context.Background(), a, Request{Mode: ModeOptimal})
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		if again.String() != first.String() {
			t.Fatalf("run %d returned %q, first run returned %q", i+2, again, first)
		}
	}
}

func TestSolveReplay(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3}, [2]int{4, 2}, [2]int{5, 123})
	catalog := goal.Default()

	solution, err := New(catalog, Options{}).Solve(context.Background(), a, Request{Mode: ModeOptimal})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !catalog.IsGoal(a.ApplyAll(solution)) {
		t.Errorf("replaying %q does not reach a goal state", solution)
	}
}

func TestFastFindsGoal(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3}, [2]int{4, 2}, [2]int{5, 123})
	catalog := goal.Default()

	solution, err := New(catalog, Options{}).Solve(context.Background(), a, Request{Mode: ModeFast})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !catalog.IsGoal(a.ApplyAll(solution)) {
		t.Errorf("replaying %q does not reach a goal state", solution)
	}
}

func TestSolveSingleCellCatalog(t *testing.T) {
	catalog, err := goal.New([]goal.Entry{{
		Name:    "single",
		Attacks: goal.AttackJump | goal.AttackHammer | goal.AttackThrow | goal.AttackBoots,
		Cells:   []arena.Position{{Ring: 0, Column: 0}},
	}})
	if err != nil {
		t.Fatalf("New catalog failed: %v", err)
	}
	a := board(t, [2]int{1, 1})

	solution, err := New(catalog, Options{}).Solve(context.Background(), a, Request{Mode: ModeOptimal})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(solution) != 0 {
		t.Errorf("a lone enemy under a 1-cell shape needs no moves, got %q", solution)
	}
}

func TestSolveDepthZeroBound(t *testing.T) {
	// A block-only catalog can never cover an enemy on the outer rings,
	// so a zero bound must fail without searching.
	catalog, err := goal.New([]goal.Entry{{
		Name:    "block",
		Attacks: goal.AttackHammer,
		Cells: []arena.Position{
			{Ring: 0, Column: 0}, {Ring: 0, Column: 1},
			{Ring: 1, Column: 0}, {Ring: 1, Column: 1},
		},
	}})
	if err != nil {
		t.Fatalf("New catalog failed: %v", err)
	}
	a := board(t, [2]int{2, 124})

	_, err = New(catalog, Options{}).Solve(context.Background(), a, Request{Mode: ModeOptimalBounded, Bound: 0})
	if !errors.Is(err, ErrNoSolutionWithinBound) {
		t.Fatalf("err = %v, want ErrNoSolutionWithinBound", err)
	}
}

func TestBoundedMatchesUnbounded(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3}, [2]int{4, 2}, [2]int{5, 123})
	s := newTestSolver()

	unbounded, err := s.Solve(context.Background(), a, Request{Mode: ModeOptimal})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	bounded, err := s.Solve(context.Background(), a, Request{Mode: ModeOptimalBounded, Bound: 5})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if bounded.String() != unbounded.String() {
		t.Errorf("bounded solve returned %q, unbounded returned %q", bounded, unbounded)
	}
}

func TestFastBoundExhausted(t *testing.T) {
	a := board(t, [2]int{2, 124}, [2]int{3, 3}, [2]int{4, 2}, [2]int{5, 123})

	_, err := newTestSolver().Solve(context.Background(), a, Request{Mode: ModeFastBounded, Bound: 1})
	if !errors.Is(err, ErrNoSolutionWithinBound) {
		t.Fatalf("err = %v, want ErrNoSolutionWithinBound", err)
	}
}
