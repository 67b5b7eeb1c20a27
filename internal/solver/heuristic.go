package solver

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
)

// node is one frontier entry of the best-first search. seq breaks
// priority ties by insertion order, which keeps the expansion order
// and therefore the returned solution deterministic.
type node struct {
	board arena.Arena
	moves []arena.Move
	depth int
	h     int
	seq   int
}

type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	fi, fj := f[i].depth+f[i].h, f[j].depth+f[j].h
	if fi != fj {
		return fi < fj
	}
	if f[i].h != f[j].h {
		return f[i].h < f[j].h
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*node)) }

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

// bestFirst expands states in order of depth plus remaining-work
// estimate and returns the first goal popped. The estimate is not
// admissible in general, so the result may be longer than optimal; in
// exchange the search rarely revisits more than a few hundred states.
func (s *Solver) bestFirst(ctx context.Context, a arena.Arena, bound int) (Solution, error) {
	visited := map[string]bool{a.Key(): true}
	var f frontier
	heap.Init(&f)
	heap.Push(&f, &node{board: a, moves: []arena.Move{}, h: s.estimate(a)})

	seq := 0
	for f.Len() > 0 {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
		n := heap.Pop(&f).(*node)
		if s.catalog.IsGoal(n.board) {
			return n.moves, nil
		}
		if n.depth >= bound {
			continue
		}
		for _, m := range s.moves {
			child := n.board.Apply(m)
			key := child.Key()
			if visited[key] {
				continue
			}
			visited[key] = true
			seq++
			moves := make([]arena.Move, len(n.moves)+1)
			copy(moves, n.moves)
			moves[len(n.moves)] = m
			heap.Push(&f, &node{
				board: child,
				moves: moves,
				depth: n.depth + 1,
				h:     s.estimate(child),
				seq:   seq,
			})
		}
	}
	return nil, fmt.Errorf("%w: frontier exhausted at depth %d", ErrNoSolutionWithinBound, bound)
}

// estimate guesses how many moves remain: a goal arrangement touches at
// most two columns per enemy group, so any column count beyond
// 2 * group limit needs at least some gathering.
func (s *Solver) estimate(a arena.Arena) int {
	var columns [arena.NumColumns]bool
	for _, e := range a.Enemies() {
		columns[e.Position.Column] = true
	}
	occupied := 0
	for _, used := range columns {
		if used {
			occupied++
		}
	}
	spare := occupied - 2*s.catalog.GroupLimit(a)
	return max(spare, 0)
}
