package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/fmtwriter/pkg/runner"
)

// Table formatting constants.
const (
	heavySeparator   = "="
	lightSeparator   = "-"
	columnGap        = "  "
	defaultTermWidth = 100
	minPathWidth     = 12
)

// Table column indexes.
const (
	colScript = iota
	colTarget
	colStatus
	colOps
	colChoices
	colRewinds
	columnCount
)

var tableHeaders = [columnCount]string{"SCRIPT", "TARGET", "STATUS", "OPS", "CHOICES", "REWINDS"}

// TableRow is one script's entry in the status table.
type TableRow struct {
	Script   string
	Target   string
	Status   string
	Ops      int
	Choices  int
	Restores int
}

func (r TableRow) cells() [columnCount]string {
	return [columnCount]string{
		r.Script,
		r.Target,
		r.Status,
		strconv.Itoa(r.Ops),
		strconv.Itoa(r.Choices),
		strconv.Itoa(r.Restores),
	}
}

// TableFormatter formats run outcomes as a status table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
	relPath   func(string) string
}

// NewTableFormatter creates a new table formatter. relPath shortens paths for
// display and may be nil.
func NewTableFormatter(styles *Styles, termWidth int, relPath func(string) string) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	if relPath == nil {
		relPath = func(p string) string { return p }
	}
	return &TableFormatter{styles: styles, termWidth: termWidth, relPath: relPath}
}

// Rows converts outcomes into table rows.
func (t *TableFormatter) Rows(result *runner.Result) []TableRow {
	if result == nil {
		return nil
	}
	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		target := "-"
		if file.Target != "" {
			target = t.relPath(file.Target)
		}
		rows = append(rows, TableRow{
			Script:   t.relPath(file.Path),
			Target:   target,
			Status:   Status(file),
			Ops:      file.Replay.Ops,
			Choices:  file.Replay.Choices,
			Restores: file.Replay.Restores,
		})
	}
	return rows
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	rows := t.Rows(result)
	if len(rows) == 0 {
		return ""
	}

	widths := t.columnWidths(rows)

	var b strings.Builder
	b.WriteString(t.formatHeader(widths))
	b.WriteString("\n")
	b.WriteString(t.formatSeparator(widths, heavySeparator))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(t.formatRow(row, widths))
		b.WriteString("\n")
	}
	b.WriteString(t.formatSeparator(widths, lightSeparator))
	b.WriteString("\n")

	return b.String()
}

func (t *TableFormatter) columnWidths(rows []TableRow) [columnCount]int {
	var widths [columnCount]int
	for i, h := range tableHeaders {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row.cells() {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	// Shrink the path columns, widest first, to fit the terminal.
	total := 0
	for _, w := range widths {
		total += w + len(columnGap)
	}
	for excess := total - t.termWidth; excess > 0; excess-- {
		col := colScript
		if widths[colTarget] > widths[colScript] {
			col = colTarget
		}
		if widths[col] <= minPathWidth {
			break
		}
		widths[col]--
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths [columnCount]int) string {
	cells := make([]string, columnCount)
	for i, h := range tableHeaders {
		cells[i] = t.styles.Bold.Render(pad(h, widths[i], i >= colOps))
	}
	return strings.Join(cells, columnGap)
}

func (t *TableFormatter) formatSeparator(widths [columnCount]int, sep string) string {
	total := len(columnGap) * (columnCount - 1)
	for _, w := range widths {
		total += w
	}
	return t.styles.TableBorder.Render(strings.Repeat(sep, total))
}

func (t *TableFormatter) formatRow(row TableRow, widths [columnCount]int) string {
	cells := row.cells()
	out := make([]string, columnCount)
	for i, cell := range cells {
		text := pad(truncatePath(cell, widths[i]), widths[i], i >= colOps)
		switch i {
		case colScript:
			out[i] = t.styles.FilePath.Render(text)
		case colTarget:
			out[i] = t.styles.Target.Render(text)
		case colStatus:
			out[i] = t.styles.statusStyle(row.Status).Render(text)
		default:
			out[i] = t.styles.Dim.Render(text)
		}
	}
	return strings.Join(out, columnGap)
}

func pad(s string, width int, right bool) string {
	if right {
		return fmt.Sprintf("%*s", width+len(s)-lipgloss.Width(s), s)
	}
	return fmt.Sprintf("%-*s", width+len(s)-lipgloss.Width(s), s)
}

// truncatePath keeps the tail of s, which holds the file name.
func truncatePath(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width || width < 4 {
		return s
	}
	return "..." + string(runes[len(runes)-width+3:])
}
