package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/platform/tui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Full-screen interactive shell",
	Long: `Open the full-screen shell: a styled board, a command input line
and scrollback. Solves run in the background; press Esc to cancel
one, Ctrl+C to leave.`,
	RunE: runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	interp, cleanup, err := newInterpreter()
	if err != nil {
		return err
	}
	defer cleanup()

	p := tea.NewProgram(tui.NewShellModel(interp), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("shell error: %w", err)
	}
	return nil
}
