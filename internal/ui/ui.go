// Package ui renders the four status classes (info, success, warning,
// error) that make up the tool's entire reporting surface.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // cyan
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
)

type Status struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
}

func New(quiet bool) *Status {
	return &Status{Out: os.Stdout, Err: os.Stderr, Quiet: quiet}
}

func (s *Status) Infof(format string, a ...any) {
	if s.Quiet {
		return
	}
	fmt.Fprintf(s.Out, "%s %s\n", infoStyle.Render("::"), fmt.Sprintf(format, a...))
}

func (s *Status) Successf(format string, a ...any) {
	if s.Quiet {
		return
	}
	fmt.Fprintf(s.Out, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, a...))
}

// Warnf reports a tolerated failure. Warnings print even in quiet mode;
// they are the only record a skipped item leaves behind.
func (s *Status) Warnf(format string, a ...any) {
	fmt.Fprintf(s.Out, "%s %s\n", warnStyle.Render("!"), fmt.Sprintf(format, a...))
}

func (s *Status) Errorf(format string, a ...any) {
	fmt.Fprintf(s.Err, "%s %s\n", errorStyle.Render("✗"), fmt.Sprintf(format, a...))
}
