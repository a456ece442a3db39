package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/fmtwriter/internal/ui/pretty"
	"github.com/yaklabco/fmtwriter/pkg/runner"
)

// TableReporter formats results as a per-script status table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
	rel       func(string) string
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	rel := relativeTo(opts.WorkingDir)
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, opts.TermWidth, rel),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
		rel:       rel,
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No layout scripts found."))
		}
		return 0, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(result))

	// Errors do not fit in a cell.
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintln(r.bw, r.styles.FormatError(r.rel(file.Path), file.Error, file.Internal))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return pendingChanges(result), nil
}
