package runner_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtwriter/pkg/config"
	"github.com/yaklabco/fmtwriter/pkg/fsutil"
	"github.com/yaklabco/fmtwriter/pkg/runner"
	"github.com/yaklabco/fmtwriter/pkg/script"
	"github.com/yaklabco/fmtwriter/pkg/writer"
)

const callScript = `
ops:
  - write: "call("
  - indent:
      - newline
      - write: "x"
  - newline
  - write: ")"
`

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func targetScript(target string, lines ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "target: %s\nops:\n", target)
	for _, line := range lines {
		fmt.Fprintf(&b, "  - write: %q\n  - newline\n", line)
	}
	return b.String()
}

func run(t *testing.T, opts runner.Options) *runner.Result {
	t.Helper()
	result, err := runner.New().Run(context.Background(), opts)
	require.NoError(t, err)
	return result
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result := run(t, runner.Options{WorkingDir: t.TempDir()})
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasChanges())
}

func TestRunner_Run_RendersScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeScript(t, dir, "call.layout.yaml", callScript)

	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{name: "defaults", cfg: nil, want: "call(\n  x\n)"},
		{name: "tabs", cfg: &config.Config{IndentWidth: 4, UseTabs: config.Bool(true)}, want: "call(\n\tx\n)"},
		{name: "wide spaces", cfg: &config.Config{IndentWidth: 4}, want: "call(\n    x\n)"},
		{name: "crlf", cfg: &config.Config{IndentWidth: 2, NewLine: "crlf"}, want: "call(\r\n  x\r\n)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := run(t, runner.Options{WorkingDir: dir, Config: tt.cfg})
			require.Len(t, result.Files, 1)

			outcome := result.Files[0]
			require.NoError(t, outcome.Error)
			assert.Equal(t, tt.want, string(outcome.Output))
			assert.Empty(t, outcome.Target)
			assert.False(t, outcome.Changed())
			assert.Equal(t, 6, outcome.Replay.Ops)
			assert.Positive(t, outcome.Nodes)
		})
	}
}

func TestRunner_Run_CheckAndWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(target, []byte("old\n"), 0o600))
	writeScript(t, dir, "out.layout.yaml", targetScript("out.txt", "new"))

	// Check only: the diff is reported and the target is untouched.
	result := run(t, runner.Options{WorkingDir: dir})
	require.Len(t, result.Files, 1)
	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, target, outcome.Target)
	assert.True(t, outcome.Changed())
	assert.False(t, outcome.Written)
	assert.True(t, result.HasChanges())
	assert.Contains(t, outcome.Diff.String(), "-old\n+new\n")
	assert.Equal(t, "out.txt", outcome.Diff.Path)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(content))

	// Write with backup.
	result = run(t, runner.Options{WorkingDir: dir, Write: true, Backup: true})
	outcome = result.Files[0]
	require.NoError(t, outcome.Error)
	assert.True(t, outcome.Written)
	assert.True(t, outcome.BackedUp)
	assert.False(t, result.HasChanges())
	assert.Equal(t, 1, result.Stats.FilesWritten)

	content, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "mode is preserved")

	backup, err := os.ReadFile(fsutil.BackupPath(target))
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(backup))

	// Up to date: nothing to do.
	result = run(t, runner.Options{WorkingDir: dir, Write: true})
	outcome = result.Files[0]
	assert.Nil(t, outcome.Diff)
	assert.False(t, outcome.Written)
}

func TestRunner_Run_CreatesMissingTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeScript(t, dir, "gen/new.layout.yaml", targetScript("new.txt", "hello"))

	result := run(t, runner.Options{WorkingDir: dir, Write: true})
	require.NoError(t, result.Files[0].Error)
	assert.True(t, result.Files[0].Written)

	content, err := os.ReadFile(filepath.Join(dir, "gen", "new.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))
}

func TestRunner_Run_LanguageDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	writeScript(t, dir, "main.layout.yaml", `
target: main.go
ops:
  - write: "func f() {"
  - indent:
      - newline
      - write: "x"
  - newline
  - write: "}"
  - newline
`)

	cfg := config.NewConfig()
	cfg.DetectLanguage = config.Bool(true)

	result := run(t, runner.Options{WorkingDir: dir, Config: cfg})
	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, "Go", outcome.Language)
	assert.Equal(t, "func f() {\n\tx\n}\n", string(outcome.Output))
}

func TestRunner_Run_NewLineAuto(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "win.txt"), []byte("a\r\nb\r\n"), 0o644))
	writeScript(t, dir, "win.layout.yaml", targetScript("win.txt", "a", "b"))

	cfg := config.NewConfig()
	cfg.NewLine = "auto"

	result := run(t, runner.Options{WorkingDir: dir, Config: cfg})
	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, "a\r\nb\r\n", string(outcome.Output))
	assert.False(t, outcome.Changed())
}

func TestRunner_Run_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeScript(t, dir, "a_violation.layout.yaml", "ops:\n  - finish_indent\n")
	writeScript(t, dir, "b_malformed.layout.yaml", "ops:\n  - explode\n")
	writeScript(t, dir, "c_width.layout.yaml", "indent_width: 0\nops: []\n")
	writeScript(t, dir, "d_ok.layout.yaml", callScript)

	result := run(t, runner.Options{WorkingDir: dir})
	require.Len(t, result.Files, 4)

	violation := result.Files[0]
	require.Error(t, violation.Error)
	assert.True(t, violation.Internal)
	assert.ErrorIs(t, violation.Error, writer.ErrContractViolation)

	malformed := result.Files[1]
	assert.ErrorIs(t, malformed.Error, script.ErrMalformed)
	assert.False(t, malformed.Internal)

	width := result.Files[2]
	assert.ErrorIs(t, width.Error, script.ErrMalformed)

	assert.NoError(t, result.Files[3].Error)

	assert.True(t, result.HasErrors())
	assert.True(t, result.HasInternalErrors())
	assert.Equal(t, 3, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesInternal)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 12 {
		writeScript(t, dir, fmt.Sprintf("f%02d.layout.yaml", i), targetScript("ignored", strings.Repeat("x", i+1)))
	}

	serial := run(t, runner.Options{WorkingDir: dir, Jobs: 1})
	parallel := run(t, runner.Options{WorkingDir: dir, Jobs: 6})

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Output, parallel.Files[i].Output)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_CustomRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 5 {
		writeScript(t, dir, fmt.Sprintf("s%d.layout.yaml", i), "ops: []\n")
	}

	var calls atomic.Int32
	boom := errors.New("boom")
	r := &runner.Runner{
		Render: func(_ context.Context, path string, _ *config.Config, _ runner.RenderOptions) (*runner.Rendering, error) {
			calls.Add(1)
			if strings.HasSuffix(path, "s3.layout.yaml") {
				return nil, boom
			}
			return &runner.Rendering{Path: path, Output: []byte(filepath.Base(path))}, nil
		},
	}

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 3})
	require.NoError(t, err)
	assert.Equal(t, int32(5), calls.Load())
	assert.ErrorIs(t, result.Files[3].Error, boom)
	assert.Equal(t, "s0.layout.yaml", string(result.Files[0].Output))
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeScript(t, dir, "a.layout.yaml", callScript)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{WorkingDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}
