package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes one header line per processed project.
type Printer struct {
	out    io.Writer
	styled bool
	style  lipgloss.Style
}

// NewPrinter creates a printer for out. Headers are bold on a terminal.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{out: out, styled: IsTerminal(out)}
	if p.styled {
		p.style = lipgloss.NewRenderer(out).NewStyle().Bold(true)
	}
	return p
}

// Header prints "\n== name ==".
func (p *Printer) Header(name string) {
	line := fmt.Sprintf("== %s ==", name)
	if p.styled {
		line = p.style.Render(line)
	}
	_, _ = fmt.Fprintf(p.out, "\n%s\n", line)
}
