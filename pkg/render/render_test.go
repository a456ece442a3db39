package render_test

import (
	"bytes"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtwriter/pkg/render"
	"github.com/yaklabco/fmtwriter/pkg/writer"
)

func block(t *testing.T) *writer.Writer {
	t.Helper()

	w := writer.New(writer.NewArena(nil), writer.Options{IndentWidth: 2})
	w.WriteString("if x {")
	w.StartIndent()
	w.NewLine()
	w.WriteString("y")
	w.Tab()
	w.SpaceIfNotTrailing()
	w.WriteString("z")
	w.FinishIndent()
	w.NewLine()
	w.WriteString("}")
	return w
}

func TestIndentation_Indent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		indentation render.Indentation
		count       uint8
		want        string
	}{
		{"zero levels", render.Spaces(4), 0, ""},
		{"two spaces", render.Spaces(2), 3, "      "},
		{"four spaces", render.Spaces(4), 1, "    "},
		{"tabs", render.Tabs(), 2, "\t\t"},
		{"tabs ignore width", render.Indentation{UseTabs: true, Width: 8}, 1, "\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.indentation.Indent(tt.count))
		})
	}
}

func TestPrinter_Print(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		printer *render.Printer
		want    string
	}{
		{"spaces lf", render.NewPrinter(render.Spaces(2), "\n"), "if x {\n  y\t z\n}"},
		{"tabs crlf", render.NewPrinter(render.Tabs(), "\r\n"), "if x {\r\n\ty\t z\r\n}"},
		{"default newline", render.NewPrinter(render.Spaces(4), ""), "if x {\n    y\t z\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.printer.Print(block(t).Items()))
		})
	}
}

func TestPrinter_WriteTo(t *testing.T) {
	t.Parallel()

	w := block(t)
	printer := render.NewPrinter(render.Spaces(2), "\n")

	var buf bytes.Buffer
	n, err := printer.WriteTo(&buf, w.Items())
	require.NoError(t, err)
	assert.Equal(t, printer.Print(w.Items()), buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrinter_WriteToError(t *testing.T) {
	t.Parallel()

	_, err := render.NewPrinter(render.Spaces(2), "\n").WriteTo(failingWriter{}, block(t).Items())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestParseNewLineKind(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"lf", "crlf", "system", "auto"} {
		kind, err := render.ParseNewLineKind(s)
		require.NoError(t, err)
		assert.Equal(t, render.NewLineKind(s), kind)
	}

	kind, err := render.ParseNewLineKind("")
	require.NoError(t, err)
	assert.Equal(t, render.NewLineLF, kind)

	_, err = render.ParseNewLineKind("cr")
	require.Error(t, err)
}

func TestNewLineKind_Resolve(t *testing.T) {
	t.Parallel()

	system := "\n"
	if runtime.GOOS == "windows" {
		system = "\r\n"
	}

	tests := []struct {
		name      string
		kind      render.NewLineKind
		reference string
		want      string
	}{
		{"lf", render.NewLineLF, "a\r\nb", "\n"},
		{"crlf", render.NewLineCRLF, "a\nb", "\r\n"},
		{"system", render.NewLineSystem, "", system},
		{"auto crlf", render.NewLineAuto, "a\r\nb\n", "\r\n"},
		{"auto lf", render.NewLineAuto, "a\nb\r\n", "\n"},
		{"auto leading blank crlf", render.NewLineAuto, "\r\nb", "\r\n"},
		{"auto without reference", render.NewLineAuto, "", "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.kind.Resolve([]byte(tt.reference)))
		})
	}
}
