// Package render assembles writer items into final text using configurable
// indentation and newline renderings.
package render

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/yaklabco/fmtwriter/pkg/writer"
)

// Indentation controls how writer.KindIndent items are rendered.
type Indentation struct {
	// UseTabs renders each level as a tab character.
	UseTabs bool

	// Width is the number of spaces per level when UseTabs is false.
	Width uint8
}

// Spaces returns space indentation of width columns per level.
func Spaces(width uint8) Indentation {
	return Indentation{Width: width}
}

// Tabs returns tab indentation.
func Tabs() Indentation {
	return Indentation{UseTabs: true}
}

// Indent returns the rendering of count indentation levels.
func (i Indentation) Indent(count uint8) string {
	if count == 0 {
		return ""
	}
	if i.UseTabs {
		return strings.Repeat("\t", int(count))
	}
	return strings.Repeat(" ", int(count)*int(i.Width))
}

// Printer renders writer items to text.
type Printer struct {
	Indentation Indentation

	// NewLine is the line break sequence, typically "\n" or "\r\n".
	NewLine string
}

// NewPrinter creates a Printer. An empty newline defaults to "\n".
func NewPrinter(indentation Indentation, newline string) *Printer {
	if newline == "" {
		newline = "\n"
	}
	return &Printer{Indentation: indentation, NewLine: newline}
}

// Print renders items into a string.
func (p *Printer) Print(items iter.Seq[writer.Item]) string {
	var builder strings.Builder
	for item := range items {
		builder.WriteString(p.piece(item))
	}
	return builder.String()
}

// WriteTo renders items to out and returns the number of bytes written.
func (p *Printer) WriteTo(out io.Writer, items iter.Seq[writer.Item]) (int64, error) {
	bw := bufio.NewWriter(out)
	var total int64
	for item := range items {
		n, err := bw.WriteString(p.piece(item))
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("write item: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return total, fmt.Errorf("flush output: %w", err)
	}
	return total, nil
}

func (p *Printer) piece(item writer.Item) string {
	switch item.Kind {
	case writer.KindNewLine:
		return p.NewLine
	case writer.KindTab:
		return "\t"
	case writer.KindSpace:
		return " "
	case writer.KindIndent:
		return p.Indentation.Indent(item.Count)
	case writer.KindText:
		if item.Text == nil {
			return ""
		}
		return item.Text.Value
	default:
		return ""
	}
}
