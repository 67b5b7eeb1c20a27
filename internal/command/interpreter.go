// Package command implements the textual command language driving a
// session: enemy placement, board edits, tool toggles and solve
// requests. Every front end (stdin REPL, shell, SSH) feeds lines
// through the same interpreter.
package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/arena"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/session"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/solver"
)

// ErrQuit is returned when the user asks to leave the interpreter.
var ErrQuit = errors.New("quit")

const helpText = `set enemy positions: c1 124 H/J/P
remove enemies: - c1 3
assign an enemy group: group 2 c1 34
set number of enemy groups: g 4
solve: solve [fast] [in 3]
whether you have a throw hammer: +hammer / -hammer
whether you have iron boots: +boots / -boots
manually execute turns: e r2 5
show the arena: show
clear arena: clear
leave: quit`

// Interpreter executes command lines against one session.
type Interpreter struct {
	session *session.Session

	// OnSolve, when set, observes every successful solve. The history
	// store hangs off this hook.
	OnSolve func(session.Result)
}

// New builds an interpreter for the session.
func New(s *session.Session) *Interpreter {
	return &Interpreter{session: s}
}

// Session exposes the driven session, mainly for rendering.
func (i *Interpreter) Session() *session.Session {
	return i.session
}

// Execute parses and runs one line and returns the text to show the
// user. Solves run under ctx and can be cancelled. Parse and domain
// errors come back as errors; an unsolvable board is a normal answer,
// not an error.
func (i *Interpreter) Execute(ctx context.Context, line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "h", "?":
		return helpText, nil
	case "quit", "exit", "q":
		return "", ErrQuit
	case "show":
		return i.session.Board().String(), nil
	case "clear":
		i.session.Clear()
		return "arena has been cleared", nil
	case "g", "groups":
		return i.setGroups(rest)
	case "e", "execute", "run":
		return i.execute(rest)
	case "solve":
		return i.solve(ctx, rest)
	case "-", "undo":
		return i.remove(rest)
	case "group":
		return i.assignGroup(rest)
	case "+hammer", "-hammer", "+boots", "-boots":
		return i.toggleTool(cmd)
	default:
		return i.place(cmd, rest)
	}
}

func (i *Interpreter) setGroups(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing argument: number of groups")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("%q is not a number", args[0])
	}
	if err := i.session.SetGroupCount(n); err != nil {
		return "", err
	}
	return fmt.Sprintf("set enemy groups to %d", n), nil
}

func (i *Interpreter) execute(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("missing argument: move")
	}
	m, err := arena.ParseMove(strings.Join(args[:2], " "))
	if err != nil {
		return "", err
	}
	i.session.Execute(m)
	return i.session.Board().String(), nil
}

func (i *Interpreter) solve(ctx context.Context, args []string) (string, error) {
	req := solver.Request{Mode: solver.ModeOptimal}
	if len(args) > 0 && args[0] == "fast" {
		req.Mode = solver.ModeFast
		args = args[1:]
	}
	if len(args) > 0 {
		if args[0] != "in" {
			return "", fmt.Errorf("illegal argument %q: expected in", args[0])
		}
		if len(args) < 2 {
			return "", fmt.Errorf("missing argument: number of turns")
		}
		turns, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("%q is not a number", args[1])
		}
		req.Bound = turns
		if req.Mode == solver.ModeFast {
			req.Mode = solver.ModeFastBounded
		} else {
			req.Mode = solver.ModeOptimalBounded
		}
	}

	res, err := i.session.Solve(ctx, req)
	if errors.Is(err, solver.ErrNoSolutionWithinBound) {
		return "no solution was found :(", nil
	}
	if err != nil {
		return "", err
	}
	if i.OnSolve != nil {
		i.OnSolve(res)
	}
	if len(res.Solution) == 0 {
		return "Arena is already solved!", nil
	}
	switch req.Mode {
	case solver.ModeOptimal, solver.ModeFast:
		return fmt.Sprintf("solution was found in %d turns: %s", len(res.Solution), res.Solution), nil
	default:
		return fmt.Sprintf("Solution: %s", res.Solution), nil
	}
}

func (i *Interpreter) remove(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("missing argument: column and rows")
	}
	positions, err := parsePositions(args[0], args[1])
	if err != nil {
		return "", err
	}
	for _, p := range positions {
		if err := i.session.RemoveEdit(p); err != nil {
			return "", err
		}
	}
	return i.session.Board().String(), nil
}

func (i *Interpreter) assignGroup(args []string) (string, error) {
	if len(args) < 3 {
		return "", fmt.Errorf("missing argument: group id, column and rows")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return "", fmt.Errorf("%q is not a positive group id", args[0])
	}
	positions, err := parsePositions(args[1], args[2])
	if err != nil {
		return "", err
	}
	for _, p := range positions {
		if err := i.session.AssignGroup(p, id); err != nil {
			return "", fmt.Errorf("no enemy at %s r%d", args[1], p.Ring+1)
		}
	}
	return i.session.Board().String(), nil
}

func (i *Interpreter) toggleTool(cmd string) (string, error) {
	present := strings.HasPrefix(cmd, "+")
	if err := i.session.SetTool(cmd[1:], present); err != nil {
		return "", err
	}
	state := "available"
	if !present {
		state = "unavailable"
	}
	return fmt.Sprintf("%s is now %s", cmd[1:], state), nil
}

func (i *Interpreter) place(columnArg string, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing argument: rows")
	}
	weakness := arena.WeakNone
	if len(args) > 1 {
		w, err := arena.ParseWeakness(args[1])
		if err != nil {
			return "", fmt.Errorf("illegal argument %q: expected H, J or P", args[1])
		}
		weakness = w
	}
	positions, err := parsePositions(columnArg, args[0])
	if err != nil {
		return "", err
	}
	for _, p := range positions {
		if err := i.session.ApplyEdit(arena.Enemy{Position: p, Weakness: weakness}); err != nil {
			return "", err
		}
	}
	return i.session.Board().String(), nil
}

// parsePositions decodes the "c<column> <rows>" placement notation:
// a 1-based column and a digit string naming 1-based rings, e.g.
// "c2 124".
func parsePositions(columnArg, rowsArg string) ([]arena.Position, error) {
	if !strings.HasPrefix(columnArg, "c") {
		return nil, fmt.Errorf("unknown command %q", columnArg)
	}
	column, err := strconv.Atoi(columnArg[1:])
	if err != nil {
		return nil, fmt.Errorf("%q has no valid column number", columnArg)
	}
	if _, err := strconv.Atoi(rowsArg); err != nil {
		return nil, fmt.Errorf("rows %q have to be numbers", rowsArg)
	}
	positions := make([]arena.Position, 0, len(rowsArg))
	for _, digit := range rowsArg {
		p, err := arena.At(int(digit-'1'), column-1)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", columnArg, rowsArg, err)
		}
		positions = append(positions, p)
	}
	return positions, nil
}
