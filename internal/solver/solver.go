// Package solver searches the space of board permutations for a move
// sequence that brings the arena into a goal state. Optimal modes run
// iterative deepening and guarantee a minimal-length solution; fast
// mode runs a heuristic best-first search and returns the first goal it
// reaches. Every mode honors context cancellation at each node
// expansion.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/goal"
)

// Errors surfaced by Solve. Both are recoverable: the caller may widen
// the bound, switch modes or simply retry.
var (
	// ErrNoSolutionWithinBound reports an exhausted depth bound.
	ErrNoSolutionWithinBound = errors.New("solver: no solution within bound")

	// ErrCancelled reports a caller-initiated abort; no partial
	// solution is returned.
	ErrCancelled = errors.New("solver: search cancelled")
)

// DefaultMaxDepth caps unbounded searches. The original tool gave up
// after 100 turns; no real board needs anywhere near that.
const DefaultMaxDepth = 100

// Mode selects the search strategy. The set is closed by the command
// language: optimal with and without a bound, fast with and without.
type Mode int

const (
	// ModeOptimal deepens until a solution is found.
	ModeOptimal Mode = iota
	// ModeOptimalBounded deepens up to the request bound.
	ModeOptimalBounded
	// ModeFast runs best-first and keeps the first goal reached.
	ModeFast
	// ModeFastBounded runs best-first under the request bound.
	ModeFastBounded
)

func (m Mode) String() string {
	switch m {
	case ModeOptimal:
		return "optimal"
	case ModeOptimalBounded:
		return "optimal-bounded"
	case ModeFast:
		return "fast"
	case ModeFastBounded:
		return "fast-bounded"
	default:
		return "unknown"
	}
}

// Request describes one solve call. Bound is only read by the bounded
// modes.
type Request struct {
	Mode  Mode
	Bound int
}

// Solution is the ordered move list transforming the arena into a goal
// state. It is immutable once returned; replaying it from the original
// snapshot must end in a goal.
type Solution []arena.Move

// String renders the solution in command notation.
func (s Solution) String() string {
	return arena.FormatSolution(s)
}

// Options tune a Solver. The zero value means: one worker per CPU,
// DefaultMaxDepth, no logging.
type Options struct {
	// Workers is the number of goroutines sharing the root move fan-out
	// of the optimal modes. 1 forces a sequential search.
	Workers int
	// MaxDepth is the ceiling for unbounded searches.
	MaxDepth int
	// Logger receives per-depth progress at debug level.
	Logger *log.Logger
}

// Solver owns the move table and catalog for one rule set. It is
// stateless across Solve calls: every call clones its own arenas and
// caches, so concurrent solves on different snapshots are independent.
type Solver struct {
	catalog  *goal.Catalog
	moves    []arena.Move
	workers  int
	maxDepth int
	logger   *log.Logger
}

// New builds a solver for the catalog.
func New(catalog *goal.Catalog, opts Options) *Solver {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Solver{
		catalog:  catalog,
		moves:    arena.AllMoves(),
		workers:  workers,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// Solve searches from the arena snapshot and returns a solution or an
// error the caller branches on. The snapshot is a value: the caller's
// live arena is never touched.
func (s *Solver) Solve(ctx context.Context, a arena.Arena, req Request) (Solution, error) {
	start := time.Now()
	var (
		solution Solution
		err      error
	)
	switch req.Mode {
	case ModeOptimal:
		solution, err = s.deepen(ctx, a, s.maxDepth)
	case ModeOptimalBounded:
		solution, err = s.deepen(ctx, a, min(req.Bound, s.maxDepth))
	case ModeFast:
		solution, err = s.bestFirst(ctx, a, s.maxDepth)
	case ModeFastBounded:
		solution, err = s.bestFirst(ctx, a, min(req.Bound, s.maxDepth))
	default:
		return nil, fmt.Errorf("solver: unknown mode %d", req.Mode)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Debug("solve finished",
		"mode", req.Mode, "moves", len(solution), "elapsed", time.Since(start))
	return solution, nil
}

// deepen runs iterative deepening: every depth is scanned exhaustively
// before the next one, so the first depth that yields anything yields a
// minimal-length solution.
func (s *Solver) deepen(ctx context.Context, a arena.Arena, bound int) (Solution, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	if s.catalog.IsGoal(a) {
		return Solution{}, nil
	}
	for depth := 1; depth <= bound; depth++ {
		best, err := s.searchDepth(ctx, a, depth)
		if err != nil {
			return nil, err
		}
		if best != nil {
			return best.moves, nil
		}
		s.logger.Debug("depth exhausted", "depth", depth)
	}
	return nil, fmt.Errorf("%w: searched %d half-turns", ErrNoSolutionWithinBound, bound)
}

// candidate is one solution found during a depth scan, ranked by
// length, then total normalized magnitude, then the canonical index of
// its root move. The ranking makes repeated solves return the same
// sequence, and prefers gentle twists the way the original tool did.
type candidate struct {
	moves     []arena.Move
	magnitude int
	root      int
}

func better(a, b *candidate) *candidate {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case len(b.moves) != len(a.moves):
		if len(b.moves) < len(a.moves) {
			return b
		}
		return a
	case b.magnitude != a.magnitude:
		if b.magnitude < a.magnitude {
			return b
		}
		return a
	case b.root < a.root:
		return b
	default:
		return a
	}
}

// searchDepth scans all sequences of exactly depth moves, fanning the
// root moves out over the worker pool. Workers run on disjoint cloned
// arenas with private caches, so they need no locks; the reduction is
// deterministic regardless of completion order.
func (s *Solver) searchDepth(ctx context.Context, a arena.Arena, depth int) (*candidate, error) {
	results := make([]*candidate, len(s.moves))
	errs := make(chan error, s.workers)
	jobs := make(chan int)

	workers := min(s.workers, len(s.moves))
	for i := 0; i < workers; i++ {
		go func() {
			w := newWalker(s)
			for idx := range jobs {
				root := s.moves[idx]
				sub, err := w.best(ctx, a.Apply(root), depth-1)
				if err != nil {
					errs <- err
					return
				}
				if sub != nil {
					results[idx] = &candidate{
						moves:     append([]arena.Move{root}, sub.moves...),
						magnitude: root.Magnitude() + sub.magnitude,
						root:      idx,
					}
				}
			}
			errs <- nil
		}()
	}

feed:
	for idx := range s.moves {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)

	var firstErr error
	for i := 0; i < workers; i++ {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	var best *candidate
	for i := range results {
		best = better(best, results[i])
	}
	return best, nil
}

// walker is the per-goroutine search state: a goal-test memo (the
// coverage check dominates the cost of a node) and a memo of subtrees
// already proven empty at a given remaining budget.
type walker struct {
	solver *Solver
	solved map[string]bool
	failed map[string]int
}

func newWalker(s *Solver) *walker {
	return &walker{
		solver: s,
		solved: make(map[string]bool),
		failed: make(map[string]int),
	}
}

// best returns the best solution of length <= remaining from the given
// state, or nil when the subtree holds none.
func (w *walker) best(ctx context.Context, a arena.Arena, remaining int) (*candidate, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	key := a.Key()
	solved, seen := w.solved[key]
	if !seen {
		solved = w.solver.catalog.IsGoal(a)
		w.solved[key] = solved
	}
	if solved {
		return &candidate{moves: []arena.Move{}}, nil
	}
	if remaining == 0 {
		return nil, nil
	}
	if budget, failed := w.failed[key]; failed && budget >= remaining {
		return nil, nil
	}

	var best *candidate
	for idx, m := range w.solver.moves {
		sub, err := w.best(ctx, a.Apply(m), remaining-1)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			continue
		}
		best = better(best, &candidate{
			moves:     append([]arena.Move{m}, sub.moves...),
			magnitude: m.Magnitude() + sub.magnitude,
			root:      idx,
		})
	}
	if best == nil {
		w.failed[key] = remaining
	}
	return best, nil
}

// cancelled maps a done context onto the domain error.
func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return nil
}
