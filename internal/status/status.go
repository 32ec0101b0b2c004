// Package status prints the user-visible progress lines of a run.
package status

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060")).
			Bold(true)

	markStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))
)

// Reporter receives status lines from a run.
type Reporter interface {
	Info(format string, args ...any)
	OK(format string, args ...any)
	Fail(format string, args ...any)
}

// Printer is a Reporter writing styled lines to w.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) line(mark string, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintf(p.w, "  %s %s\n", markStyle.Render(mark), style.Render(fmt.Sprintf(format, args...))) //nolint:errcheck
}

// Info prints a neutral progress line.
func (p *Printer) Info(format string, args ...any) {
	p.line("·", infoStyle, format, args...)
}

// OK prints a success line.
func (p *Printer) OK(format string, args ...any) {
	p.line("✦", okStyle, format, args...)
}

// Fail prints a failure line.
func (p *Printer) Fail(format string, args ...any) {
	p.line("✗", failStyle, format, args...)
}

// Discard drops every line.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Info(string, ...any) {}
func (discard) OK(string, ...any)   {}
func (discard) Fail(string, ...any) {}
