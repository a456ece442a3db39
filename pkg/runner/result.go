package runner

import (
	"github.com/yaklabco/fmtwriter/pkg/diff"
	"github.com/yaklabco/fmtwriter/pkg/script"
)

// FileOutcome is the result of rendering one script.
type FileOutcome struct {
	// Path is the script path.
	Path string

	// Target is the resolved target path, or "" if the script names none.
	Target string

	// Language is the detected target language, if detection ran.
	Language string

	// Output is the rendered text.
	Output []byte

	// Diff compares the target's current content with Output. Nil when the
	// script has no target or the target is already up to date.
	Diff *diff.Diff

	// Written is true if Output was stored to Target.
	Written bool

	// BackedUp is true if a sidecar backup was created before writing.
	BackedUp bool

	// Replay holds replay statistics.
	Replay script.Stats

	// Nodes is the number of nodes allocated, including abandoned ones.
	Nodes int

	// Error is set if the script could not be rendered or written.
	Error error

	// Internal marks errors caused by writer contract violations.
	Internal bool
}

// Changed reports whether the target differs from the rendered output.
func (o FileOutcome) Changed() bool {
	return o.Diff.HasChanges()
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesInternal   int
	FilesChanged    int
	FilesWritten    int
	FilesOverflowed int

	Ops      int
	Choices  int
	Restores int
	Nodes    int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any script failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasInternalErrors reports whether any script hit a writer contract violation.
func (r *Result) HasInternalErrors() bool {
	return r != nil && r.Stats.FilesInternal > 0
}

// HasChanges reports whether any target differs from its rendered output
// and was not written.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	for _, f := range r.Files {
		if f.Changed() && !f.Written {
			return true
		}
	}
	return false
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	r.Stats.Ops += outcome.Replay.Ops
	r.Stats.Choices += outcome.Replay.Choices
	r.Stats.Restores += outcome.Replay.Restores
	r.Stats.Nodes += outcome.Nodes

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		if outcome.Internal {
			r.Stats.FilesInternal++
		}
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed() {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Replay.Overflowed {
		r.Stats.FilesOverflowed++
	}
}
