// Package tui provides the interactive command shell and its SSH
// transport via Wish.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/command"
)

// maxScrollback bounds the number of lines kept in the shell history.
const maxScrollback = 500

// commandDoneMsg reports a finished command line.
type commandDoneMsg struct {
	line   string
	output string
	err    error
}

// ShellModel is the Bubble Tea model for the command shell. It wraps
// an interpreter, keeps a scrollback of command output and runs solves
// asynchronously so the user can cancel them with Esc.
type ShellModel struct {
	interp     *command.Interpreter
	input      textinput.Model
	scrollback []string
	width      int
	height     int
	solving    bool
	cancel     context.CancelFunc
	quitting   bool
}

// NewShellModel creates a shell around the interpreter.
func NewShellModel(interp *command.Interpreter) ShellModel {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "c2 124, solve, help ..."
	input.Focus()

	return ShellModel{
		interp:     interp,
		input:      input,
		scrollback: strings.Split(interp.Session().Board().String(), "\n"),
	}
}

// Init starts the cursor blink.
func (m ShellModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the shell state.
func (m ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil

	case commandDoneMsg:
		return m.handleDone(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m ShellModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return m, tea.Quit
	case "esc":
		// Abort a running solve, keep the session.
		if m.solving && m.cancel != nil {
			m.cancel()
		}
		return m, nil
	case "enter":
		if m.solving {
			return m, nil
		}
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		return m.runCommand(line)
	}

	if m.solving {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runCommand executes the line in the background so the UI stays
// responsive during long solves.
func (m ShellModel) runCommand(line string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.solving = true
	interp := m.interp

	return m, func() tea.Msg {
		output, err := interp.Execute(ctx, line)
		cancel()
		return commandDoneMsg{line: line, output: output, err: err}
	}
}

// handleDone appends the command result to the scrollback.
func (m ShellModel) handleDone(msg commandDoneMsg) (tea.Model, tea.Cmd) {
	m.solving = false
	m.cancel = nil

	if errors.Is(msg.err, command.ErrQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	m.scrollback = append(m.scrollback, promptStyle.Render("> "+msg.line))
	switch {
	case msg.err != nil:
		m.scrollback = append(m.scrollback, errorStyle.Render(msg.err.Error()))
	case msg.output != "":
		m.scrollback = append(m.scrollback, strings.Split(msg.output, "\n")...)
	}
	if len(m.scrollback) > maxScrollback {
		m.scrollback = m.scrollback[len(m.scrollback)-maxScrollback:]
	}
	return m, nil
}

// View renders the scrollback, the input line and a key hint.
func (m ShellModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("origami ring solver"))
	sb.WriteString("\n\n")

	visible := m.scrollback
	if m.height > 0 {
		// Leave room for the title, the input line and the hint.
		if budget := m.height - 5; budget > 0 && len(visible) > budget {
			visible = visible[len(visible)-budget:]
		}
	}
	for _, line := range visible {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	if m.solving {
		sb.WriteString(statusStyle.Render("solving... press esc to cancel"))
	} else {
		sb.WriteString(m.input.View())
	}
	sb.WriteByte('\n')
	sb.WriteString(helpStyle.Render("enter: run  esc: cancel solve  ctrl+c: quit"))
	return sb.String()
}
