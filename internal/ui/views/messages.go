package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusMsg carries a one-line notice for the footer
type StatusMsg struct {
	Message string
}

// ErrorMsg carries an error for the footer
type ErrorMsg struct {
	Err error
}

// ProjectsClosedMsg is sent when the project manager is dismissed
type ProjectsClosedMsg struct{}

func statusf(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg { return StatusMsg{Message: msg} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}
