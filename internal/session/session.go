// Package session ties an editable arena to a goal catalog and a
// solver. A Session is the single mutable object behind the
// interpreter, the shell and the one-shot CLI; everything below it
// works on immutable snapshots.
package session

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/goal"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/solver"
)

// Result is the outcome of one solve request, kept for reporting and
// the history store.
type Result struct {
	BoardKey string
	Request  solver.Request
	Solution solver.Solution
	Elapsed  time.Duration
}

// Session owns one board being edited. It is not safe for concurrent
// use; callers serialize access the way a REPL naturally does.
type Session struct {
	board   arena.Arena
	catalog *goal.Catalog
	solver  *solver.Solver
	logger  *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithSolverOptions overrides the solver tuning.
func WithSolverOptions(opts solver.Options) Option {
	return func(s *Session) {
		s.solver = solver.New(s.catalog, opts)
	}
}

// WithLogger attaches a logger for solve reporting.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New starts a session with an empty board.
func New(catalog *goal.Catalog, opts ...Option) *Session {
	s := &Session{
		board:   arena.New(),
		catalog: catalog,
		solver:  solver.New(catalog, solver.Options{}),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board returns a snapshot of the current arena.
func (s *Session) Board() arena.Arena {
	return s.board.Clone()
}

// Catalog returns the goal catalog the session solves against.
func (s *Session) Catalog() *goal.Catalog {
	return s.catalog
}

// ApplyEdit places an enemy, overwriting whatever the cell held. Edits
// are deliberate user statements about the board, not game moves, so
// the strict occupancy rule of arena.Place does not apply here.
func (s *Session) ApplyEdit(e arena.Enemy) error {
	return s.board.Replace(e)
}

// RemoveEdit clears a cell. Removing an empty cell is not an error.
func (s *Session) RemoveEdit(p arena.Position) error {
	return s.board.Remove(p)
}

// AssignGroup re-places the enemy at p with the given explicit group
// id. The enemy must exist.
func (s *Session) AssignGroup(p arena.Position, group int) error {
	e, ok := s.board.At(p)
	if !ok {
		return arena.ErrInvalidPosition
	}
	e.Group = group
	return s.board.Replace(e)
}

// SetGroupCount declares how many attack groups the goal may use. The
// count is validated against the current board.
func (s *Session) SetGroupCount(n int) error {
	if err := s.catalog.ValidateGroupCount(s.board, n); err != nil {
		return err
	}
	s.board.SetGroups(n)
	return nil
}

// SetTool marks a tool as available or missing.
func (s *Session) SetTool(name string, present bool) error {
	return s.board.SetTool(name, present)
}

// Execute applies a move to the live board, mirroring a turn actually
// taken in the game.
func (s *Session) Execute(m arena.Move) {
	s.board = s.board.Apply(m)
}

// Clear empties the board and resets tools and group count.
func (s *Session) Clear() {
	s.board.Clear()
}

// IsGoal reports whether the current board already satisfies the goal.
func (s *Session) IsGoal() bool {
	return s.catalog.IsGoal(s.board)
}

// Solve runs the request against a snapshot of the board. The live
// board is untouched; the caller decides whether to Execute the moves.
func (s *Session) Solve(ctx context.Context, req solver.Request) (Result, error) {
	snapshot := s.board.Clone()
	start := time.Now()
	solution, err := s.solver.Solve(ctx, snapshot, req)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		BoardKey: snapshot.Key(),
		Request:  req,
		Solution: solution,
		Elapsed:  time.Since(start),
	}
	s.logger.Debug("solved", "moves", len(solution), "elapsed", res.Elapsed)
	return res, nil
}
