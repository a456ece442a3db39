package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/fmtwriter/internal/ui/pretty"
	"github.com/yaklabco/fmtwriter/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	rel    func(string) string
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		rel:    relativeTo(opts.WorkingDir),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
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

	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report: %w", err)
		}
		if i > 0 && r.opts.ShowOutput {
			fmt.Fprintln(r.bw)
		}
		r.writeFile(file)
	}

	if r.opts.ShowSummary {
		if r.opts.ShowOutput {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return pendingChanges(result), nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome) {
	path := r.rel(file.Path)
	if file.Error != nil {
		fmt.Fprintln(r.bw, r.styles.FormatError(path, file.Error, file.Internal))
		return
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, r.rel(file.Target), pretty.Status(file)))
	if file.Language != "" {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  language: "+file.Language))
	}
	if file.BackedUp {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  backup created"))
	}
	if !r.opts.ShowOutput || len(file.Output) == 0 {
		return
	}

	out := string(file.Output)
	r.bw.WriteString(out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(r.bw)
	}
}
