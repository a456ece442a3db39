package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/fmtwriter/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single script's results.
type JSONFileResult struct {
	Path     string     `json:"path"`
	Target   string     `json:"target,omitempty"`
	Language string     `json:"language,omitempty"`
	Output   string     `json:"output"`
	Changed  bool       `json:"changed"`
	Written  bool       `json:"written,omitempty"`
	BackedUp bool       `json:"backedUp,omitempty"`
	Diff     string     `json:"diff,omitempty"`
	Replay   JSONReplay `json:"replay"`
	Error    string     `json:"error,omitempty"`
	Internal bool       `json:"internal,omitempty"`
}

// JSONReplay holds per-script replay counters.
type JSONReplay struct {
	Ops        int  `json:"ops"`
	Choices    int  `json:"choices"`
	Restores   int  `json:"restores"`
	Nodes      int  `json:"nodes"`
	Overflowed bool `json:"overflowed,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesChanged    int `json:"filesChanged"`
	FilesWritten    int `json:"filesWritten"`
	FilesErrored    int `json:"filesErrored"`
	FilesInternal   int `json:"filesInternal"`
	Ops             int `json:"ops"`
	Choices         int `json:"choices"`
	Restores        int `json:"restores"`
	Nodes           int `json:"nodes"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
	rel  func(string) string
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
		rel:  relativeTo(opts.WorkingDir),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return pendingChanges(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:     r.rel(file.Path),
			Target:   r.rel(file.Target),
			Language: file.Language,
			Output:   string(file.Output),
			Changed:  file.Changed(),
			Written:  file.Written,
			BackedUp: file.BackedUp,
			Diff:     file.Diff.String(),
			Replay: JSONReplay{
				Ops:        file.Replay.Ops,
				Choices:    file.Replay.Choices,
				Restores:   file.Replay.Restores,
				Nodes:      file.Nodes,
				Overflowed: file.Replay.Overflowed,
			},
			Internal: file.Internal,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesProcessed:  stats.FilesProcessed,
		FilesChanged:    stats.FilesChanged,
		FilesWritten:    stats.FilesWritten,
		FilesErrored:    stats.FilesErrored,
		FilesInternal:   stats.FilesInternal,
		Ops:             stats.Ops,
		Choices:         stats.Choices,
		Restores:        stats.Restores,
		Nodes:           stats.Nodes,
	}

	return output
}
