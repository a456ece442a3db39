// Package diff produces unified diffs between a target's current content and
// freshly rendered output.
package diff

import (
	"fmt"
	"io"
	"strings"
)

// Kind classifies a diff line.
type Kind int

const (
	// Context is a line present on both sides.
	Context Kind = iota

	// Insert is a line only present in the modified content.
	Insert

	// Delete is a line only present in the original content.
	Delete
)

// Prefix returns the unified diff marker for k.
func (k Kind) Prefix() string {
	switch k {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is a single line of a hunk, without its terminator.
type Line struct {
	Kind Kind
	Text string

	// NoEOL marks the final line of a side that lacks a trailing newline.
	NoEOL bool
}

// Hunk is a contiguous block of changes with surrounding context.
// Start positions are 1-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line for the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Diff is the unified diff of one file.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// ContextLines is the number of unchanged lines kept around each change.
const ContextLines = 3

// Generate returns the diff between original and modified, or nil if they are
// byte-identical.
func Generate(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	ops := editScript(splitLines(original), splitLines(modified))

	d := &Diff{Path: path, Hunks: group(ops)}
	for _, op := range ops {
		switch op.line.Kind {
		case Insert:
			d.Added++
		case Delete:
			d.Removed++
		}
	}
	return d
}

// HasChanges reports whether d contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	p := displayPath(d.Path)
	return fmt.Sprintf("diff --git a/%s b/%s", p, p)
}

// String renders the diff in unified format, starting at the ---/+++ headers.
func (d *Diff) String() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

// WriteTo writes the unified diff to w.
func (d *Diff) WriteTo(w io.Writer) (int64, error) {
	if !d.HasChanges() {
		return 0, nil
	}

	cw := &countingWriter{w: w}
	p := displayPath(d.Path)
	fmt.Fprintf(cw, "--- a/%s\n+++ b/%s\n", p, p)
	for _, h := range d.Hunks {
		fmt.Fprintln(cw, h.Header())
		for _, l := range h.Lines {
			fmt.Fprintf(cw, "%s%s\n", l.Kind.Prefix(), l.Text)
			if l.NoEOL {
				io.WriteString(cw, "\\ No newline at end of file\n")
			}
		}
	}
	return cw.n, cw.err
}

func displayPath(path string) string {
	return strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "/")
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
