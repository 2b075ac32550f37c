package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows of data in aligned columns.
type Table struct {
	out     io.Writer
	styled  bool
	headers []string
	rows    [][]string
}

// NewTable creates a new table with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	return &Table{out: out, styled: IsTerminal(out), headers: headers}
}

// Row appends a row of values. The number of values should match the number of headers.
func (t *Table) Row(values ...any) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	t.rows = append(t.rows, parts)
}

// Flush writes the table.
func (t *Table) Flush() error {
	r := lipgloss.NewRenderer(t.out)
	cell := r.NewStyle().PaddingRight(2)
	head := cell
	if t.styled {
		head = cell.Bold(true)
	}

	tbl := table.New().
		Headers(t.headers...).
		Rows(t.rows...).
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})

	_, err := fmt.Fprintln(t.out, tbl.Render())
	return err
}
