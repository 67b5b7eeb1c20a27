// origami is a solver for the ring arena puzzle fights: enemies stand
// on four concentric rings of twelve columns, rings rotate and column
// loops shift, and the fight is won when every enemy group lines up
// under a single attack.
//
// Usage:
//
//	origami repl             - Line-based solver REPL on stdin
//	origami shell            - Full-screen interactive shell
//	origami solve            - One-shot solve from setup commands
//	origami serve            - Serve the shell over SSH
//	origami history          - Show recent solves
//
// Global flags:
//
//	--db <path>       - Solve-history database (default: ~/.origami/solves.db)
//	--catalog <path>  - Attack-shape catalog YAML (default: built-in search order)
//	--solver <path>   - Solver tuning YAML (default: built-in search order)
//	--verbose         - Log search progress to stderr
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/command"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/config"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/goal"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/session"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/solver"
	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/storage"
)

var (
	// Global flags
	flagDBPath      string
	flagCatalogPath string
	flagSolverPath  string
	flagVerbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "origami",
	Short: "Solver for ring arena puzzle fights",
	Long: `origami finds move sequences that line enemies up for a single
attack per group on the four-ring battle arena.

Available commands:
  repl     - Line-based solver REPL on stdin
  shell    - Full-screen interactive shell
  solve    - One-shot solve from setup commands
  serve    - Serve the shell over SSH
  history  - Show recent solves

Examples:
  origami repl
  origami solve "c2 124" "c3 3"
  origami solve --fast --in 5 --file fight.txt
  origami serve --ssh :2222
  origami history --limit 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.origami/solves.db", "Path to solve-history database")
	rootCmd.PersistentFlags().StringVar(&flagCatalogPath, "catalog", "", "Path to attack-shape catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagSolverPath, "solver", "", "Path to solver tuning YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log search progress to stderr")

	// Add subcommands
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadCatalog resolves the configured attack-shape catalog.
func loadCatalog() (*goal.Catalog, error) {
	cfg, err := config.LoadCatalog(flagCatalogPath)
	if err != nil {
		return nil, err
	}
	return cfg.Catalog()
}

// loadSolverOptions resolves the configured search tuning.
func loadSolverOptions() (solver.Options, error) {
	cfg, err := config.LoadSolver(flagSolverPath)
	if err != nil {
		return solver.Options{}, err
	}
	return solver.Options{Workers: cfg.Workers, MaxDepth: cfg.MaxDepth}, nil
}

// newInterpreter wires a fresh session to the history store. The
// returned cleanup closes the store; the store may be nil when the
// database cannot be opened, history is best-effort.
func newInterpreter() (*command.Interpreter, func(), error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	opts, err := loadSolverOptions()
	if err != nil {
		return nil, nil, fmt.Errorf("loading solver config: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "origami"})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	opts.Logger = logger

	interp := command.New(session.New(catalog,
		session.WithSolverOptions(opts),
		session.WithLogger(logger),
	))

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: solve history unavailable: %v\n", err)
		return interp, func() {}, nil
	}
	interp.OnSolve = func(r session.Result) {
		//nolint:errcheck // Best-effort history, solving continues regardless
		store.SaveSolve(storage.SolveRecord{
			BoardKey: r.BoardKey,
			Mode:     r.Request.Mode.String(),
			Bound:    r.Request.Bound,
			Solution: r.Solution.String(),
			Moves:    len(r.Solution),
			Elapsed:  r.Elapsed,
		})
	}
	return interp, func() { store.Close() }, nil
}
