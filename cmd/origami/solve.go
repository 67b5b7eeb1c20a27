package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/solver"
)

var (
	flagSolveFast bool
	flagSolveIn   int
	flagSolveFile string
)

var solveCmd = &cobra.Command{
	Use:   "solve [setup command ...]",
	Short: "One-shot solve from setup commands",
	Long: `Build the board from setup commands and solve it once. Setup
commands use the REPL language and come from the arguments, from
--file (one command per line, '#' starts a comment), or both, the
file first.

Exits non-zero when the board cannot be solved within the bound.
SIGINT cancels the search.

Examples:
  origami solve "c2 124" "c3 3"
  origami solve --in 3 "c2 124" "c3 3"
  origami solve --fast --file fight.txt`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagSolveFast, "fast", false, "Use the heuristic search instead of the optimal one")
	solveCmd.Flags().IntVar(&flagSolveIn, "in", 0, "Maximum number of turns (0 = unbounded)")
	solveCmd.Flags().StringVar(&flagSolveFile, "file", "", "File with setup commands, one per line")
}

func runSolve(cmd *cobra.Command, args []string) error {
	interp, cleanup, err := newInterpreter()
	if err != nil {
		return err
	}
	defer cleanup()

	setup, err := setupCommands(args)
	if err != nil {
		return err
	}
	for _, line := range setup {
		if _, err := interp.Execute(context.Background(), line); err != nil {
			return fmt.Errorf("setup command %q: %w", line, err)
		}
	}

	req := solver.Request{Mode: solver.ModeOptimal}
	if flagSolveFast {
		req.Mode = solver.ModeFast
	}
	if flagSolveIn > 0 {
		req.Bound = flagSolveIn
		if flagSolveFast {
			req.Mode = solver.ModeFastBounded
		} else {
			req.Mode = solver.ModeOptimalBounded
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := interp.Session().Solve(ctx, req)
	if errors.Is(err, solver.ErrNoSolutionWithinBound) {
		fmt.Println("no solution was found :(")
		os.Exit(1)
	}
	if err != nil {
		return err
	}
	if interp.OnSolve != nil {
		interp.OnSolve(res)
	}

	if len(res.Solution) == 0 {
		fmt.Println("Arena is already solved!")
		return nil
	}
	fmt.Printf("solution was found in %d turns: %s\n", len(res.Solution), res.Solution)
	return nil
}

// setupCommands merges --file lines and positional arguments.
func setupCommands(args []string) ([]string, error) {
	var lines []string
	if flagSolveFile != "" {
		f, err := os.Open(flagSolveFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read setup file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("cannot read setup file: %w", err)
		}
	}
	return append(lines, args...), nil
}
