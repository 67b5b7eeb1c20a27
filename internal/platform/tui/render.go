package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Shell styles. The board itself stays plain ASCII so it reads the
// same over SSH, in scrollback and in a pipe.
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)
