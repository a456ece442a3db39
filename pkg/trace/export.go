package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format is a trace export format.
type Format string

// Supported export formats.
const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown trace format %q; valid formats: json, markdown, html", s)
	}
}

// Export writes the graph to out in the given format.
func (g *Graph) Export(out io.Writer, format Format, title string) error {
	switch format {
	case FormatJSON:
		return g.JSON(out)
	case FormatMarkdown:
		_, err := io.WriteString(out, g.Markdown(title))
		if err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		return nil
	case FormatHTML:
		return g.HTML(out, title)
	default:
		return fmt.Errorf("unsupported trace format: %s", format)
	}
}

// JSON writes the graph as indented JSON.
func (g *Graph) JSON(out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	return nil
}

// Markdown renders the graph as a GFM document with one table row per node.
func (g *Graph) Markdown(title string) string {
	var builder strings.Builder

	if title != "" {
		fmt.Fprintf(&builder, "# %s\n\n", escapeCell(title))
	}
	fmt.Fprintf(&builder, "%d nodes: %d committed, %d abandoned.\n\n",
		len(g.Nodes), g.Committed, g.Abandoned)

	builder.WriteString("| id | prev | item | status |\n")
	builder.WriteString("|---:|---:|---|---|\n")
	for _, n := range g.Nodes {
		status := "abandoned"
		if n.Committed {
			status = "**committed**"
		}
		prev := "-"
		if n.Prev != 0 {
			prev = strconv.FormatUint(uint64(n.Prev), 10)
		}
		fmt.Fprintf(&builder, "| %d | %s | %s | %s |\n", n.ID, prev, escapeCell(n.Label()), status)
	}

	return builder.String()
}

// HTML renders the Markdown report to HTML.
func (g *Graph) HTML(out io.Writer, title string) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert([]byte(g.Markdown(title)), &buf); err != nil {
		return fmt.Errorf("convert trace report: %w", err)
	}
	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

// cellEscaper escapes characters that would break a table cell or be read as markup.
//
//nolint:gochecknoglobals // Read-only replacer.
var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"<", `\<`,
	"[", `\[`,
)

func escapeCell(s string) string {
	if strings.TrimSpace(s) == "" {
		return strconv.Quote(s)
	}
	return cellEscaper.Replace(s)
}
