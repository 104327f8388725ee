package logger

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A8291"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#88C0D0")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E9F0")).Padding(0, 1)
	tableAlertStyle  = tableCellStyle.Foreground(lipgloss.Color("#BF616A")).Bold(true)
	tablePlainStyle  = lipgloss.NewStyle().Padding(0, 1)
)

type Table struct {
	headers  []string
	rows     [][]string
	alerts   map[int]bool
	w        io.Writer
	colorize bool
}

func NewTable(headers []string, w io.Writer, colorize bool) *Table {
	return &Table{
		headers:  headers,
		alerts:   make(map[int]bool),
		w:        w,
		colorize: colorize,
	}
}

// AddRow appends a row, padding or truncating it to the header width.
func (t *Table) AddRow(cells ...string) {
	if len(cells) > len(t.headers) {
		cells = cells[:len(t.headers)]
	} else if len(cells) < len(t.headers) {
		padded := make([]string, len(t.headers))
		copy(padded, cells)
		cells = padded
	}

	t.rows = append(t.rows, cells)
}

// AddAlertRow appends a row highlighted as a problem.
func (t *Table) AddAlertRow(cells ...string) {
	t.AddRow(cells...)
	t.alerts[len(t.rows)-1] = true
}

func (t *Table) String() string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case !t.colorize:
				return tablePlainStyle
			case row == table.HeaderRow:
				return tableHeaderStyle
			case t.alerts[row]:
				return tableAlertStyle
			default:
				return tableCellStyle
			}
		})
	if t.colorize {
		tbl = tbl.BorderStyle(tableBorderStyle)
	}
	return tbl.String()
}

func (t *Table) Print() {
	fmt.Fprintln(t.w, t.String())
}
