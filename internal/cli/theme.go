package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Label  lipgloss.Style
	Stage  lipgloss.Style
	Detail lipgloss.Style
}

// NewTheme builds styles for w; color is dropped automatically when w is
// not a terminal.
func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		Label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Stage:  r.NewStyle().Bold(true),
		Detail: r.NewStyle().Faint(true),
	}
}
