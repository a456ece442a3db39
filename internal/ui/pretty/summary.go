package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/fmtwriter/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 scripts rendered, 1 would change, 1 error".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No layout scripts found") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s rendered", stats.FilesProcessed, plural(stats.FilesProcessed, "script", "scripts")),
	}

	pending := stats.FilesChanged - stats.FilesWritten
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Written.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if pending > 0 {
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%d would change", pending)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored,
			plural(stats.FilesErrored, "error", "errors"))))
	}
	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		parts[0] = s.Success.Render(parts[0])
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	row := func(label string, value int, style func(...string) string) {
		fmt.Fprintf(&b, "  %-18s %s\n", label+":", style(strconv.Itoa(value)))
	}

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	row("Scripts found", stats.FilesDiscovered, s.SummaryValue.Render)
	row("Scripts rendered", stats.FilesProcessed, s.SummaryValue.Render)
	if stats.FilesChanged > 0 {
		row("Targets changed", stats.FilesChanged, s.Changed.Render)
	}
	if stats.FilesWritten > 0 {
		row("Targets written", stats.FilesWritten, s.Written.Render)
	}
	if stats.FilesOverflowed > 0 {
		row("Over line width", stats.FilesOverflowed, s.Warning.Render)
	}
	if stats.FilesErrored > 0 {
		row("Errors", stats.FilesErrored, s.Error.Render)
	}

	b.WriteString("\n")
	row("Instructions", stats.Ops, s.SummaryValue.Render)
	row("Choices", stats.Choices, s.SummaryValue.Render)
	row("Rewinds", stats.Restores, s.SummaryValue.Render)
	row("Nodes", stats.Nodes, s.SummaryValue.Render)
	b.WriteString("\n")

	switch {
	case stats.FilesInternal > 0:
		b.WriteString(s.Internal.Render("Render hit writer contract violations"))
	case stats.FilesErrored > 0:
		b.WriteString(s.Failure.Render("Render failed"))
	case stats.FilesChanged > stats.FilesWritten:
		b.WriteString(s.Warning.Render("Some targets are out of date"))
	default:
		b.WriteString(s.Success.Render("All targets up to date"))
	}
	b.WriteString("\n")

	return b.String()
}
