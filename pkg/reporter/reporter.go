// Package reporter formats render results for the terminal and for tools.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/fmtwriter/pkg/runner"
)

// Reporter formats and writes render results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of targets whose content differs from the
	// rendered output and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// pendingChanges counts targets that differ and were not written.
func pendingChanges(result *runner.Result) int {
	if result == nil {
		return 0
	}
	var n int
	for _, f := range result.Files {
		if f.Changed() && !f.Written {
			n++
		}
	}
	return n
}

// relativeTo returns a function that shortens paths under dir.
// Paths that would need more than two "../" hops are left as-is.
func relativeTo(dir string) func(string) string {
	return func(path string) string {
		if dir == "" || path == "" || !filepath.IsAbs(path) {
			return path
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil || strings.Count(rel, "..") > 2 {
			return path
		}
		return rel
	}
}
