package pretty

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/fmtwriter/pkg/runner"
)

// Status labels for a file outcome.
const (
	StatusError     = "error"
	StatusInternal  = "internal error"
	StatusWritten   = "written"
	StatusChanged   = "would change"
	StatusUnchanged = "up to date"
	StatusRendered  = "rendered"
)

// Status returns the label describing a file outcome.
func Status(file runner.FileOutcome) string {
	switch {
	case file.Internal:
		return StatusInternal
	case file.Error != nil:
		return StatusError
	case file.Written:
		return StatusWritten
	case file.Changed():
		return StatusChanged
	case file.Target != "":
		return StatusUnchanged
	default:
		return StatusRendered
	}
}

// FormatStatus renders a status label in its color.
func (s *Styles) FormatStatus(status string) string {
	return s.statusStyle(status).Render(status)
}

func (s *Styles) statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusInternal:
		return s.Internal
	case StatusError:
		return s.Error
	case StatusWritten:
		return s.Written
	case StatusChanged:
		return s.Changed
	default:
		return s.Unchanged
	}
}

// FormatFileHeader formats "script -> target (status)".
func (s *Styles) FormatFileHeader(path, target, status string) string {
	header := s.FilePath.Render(path)
	if target != "" {
		header += s.Arrow.Render(" -> ") + s.Target.Render(target)
	}
	return header + " " + s.Dim.Render("(") + s.FormatStatus(status) + s.Dim.Render(")")
}

// FormatError formats a per-file error line.
func (s *Styles) FormatError(path string, err error, internal bool) string {
	label := "error"
	style := s.Error
	if internal {
		label = "internal error"
		style = s.Internal
	}
	return fmt.Sprintf("%s: %s", s.FilePath.Render(path), style.Render(fmt.Sprintf("%s: %v", label, err)))
}
