package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/fmtwriter/internal/ui/pretty"
	"github.com/yaklabco/fmtwriter/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{},
			want:  "No layout scripts found\n",
		},
		{
			name:  "single clean script",
			stats: runner.Stats{FilesDiscovered: 1, FilesProcessed: 1},
			want:  "1 script rendered\n",
		},
		{
			name:  "pending changes",
			stats: runner.Stats{FilesDiscovered: 3, FilesProcessed: 3, FilesChanged: 2, FilesWritten: 1},
			want:  "3 scripts rendered, 1 written, 1 would change\n",
		},
		{
			name:  "errors",
			stats: runner.Stats{FilesDiscovered: 4, FilesProcessed: 2, FilesErrored: 2},
			want:  "2 scripts rendered, 2 errors\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("clean", func(t *testing.T) {
		t.Parallel()
		out := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesProcessed: 2, Ops: 10, Choices: 1})
		assert.Contains(t, out, "Summary")
		assert.Contains(t, out, "Scripts found:")
		assert.Contains(t, out, "Instructions:")
		assert.Contains(t, out, "All targets up to date")
		assert.NotContains(t, out, "Errors:")
	})

	t.Run("stale targets", func(t *testing.T) {
		t.Parallel()
		out := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesProcessed: 1, FilesChanged: 1})
		assert.Contains(t, out, "Targets changed:")
		assert.Contains(t, out, "Some targets are out of date")
	})

	t.Run("internal errors", func(t *testing.T) {
		t.Parallel()
		out := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesErrored: 1, FilesInternal: 1})
		assert.Contains(t, out, "Errors:")
		assert.Contains(t, out, "contract violations")
	})
}
