package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	stepMark = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true).Render("==>")
	doneMark = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Render("✓")
	warnMark = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Render("!")
	failMark = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Render("✗")
)

// status prints the human readable phase lines. Structured logs are written
// separately through ctxlog.
type status struct {
	w io.Writer
}

func newStatus(w io.Writer) *status {
	return &status{w: w}
}

func (s *status) line(mark, format string, args ...any) {
	fmt.Fprintf(s.w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

func (s *status) Step(format string, args ...any) { s.line(stepMark, format, args...) }
func (s *status) Done(format string, args ...any) { s.line(doneMark, format, args...) }
func (s *status) Warn(format string, args ...any) { s.line(warnMark, format, args...) }
func (s *status) Fail(format string, args ...any) { s.line(failMark, format, args...) }
