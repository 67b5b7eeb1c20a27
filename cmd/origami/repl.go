package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/command"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Line-based solver REPL on stdin",
	Long: `Read commands from stdin, one per line, and print the board and
solutions to stdout. Ctrl+C aborts a running solve without leaving
the REPL; 'quit' or EOF ends it.

The prompt is suppressed when stdin is not a terminal, so command
files pipe cleanly:

  origami repl < fight.txt`,
	RunE: runRepl,
}

func runRepl(_ *cobra.Command, _ []string) error {
	interp, cleanup, err := newInterpreter()
	if err != nil {
		return err
	}
	defer cleanup()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	fmt.Println(interp.Session().Board())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		// A solve in flight is cancelled by Ctrl+C instead of killing
		// the process.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		output, err := interp.Execute(ctx, scanner.Text())
		stop()

		if errors.Is(err, command.ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if output != "" {
			fmt.Println(output)
		}
	}
	return scanner.Err()
}
