package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/fmtwriter/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	if result.Config.IndentWidth != config.DefaultIndentWidth {
		t.Errorf("expected indent width %d, got %d", config.DefaultIndentWidth, result.Config.IndentWidth)
	}
	if result.Config.LineWidth != config.DefaultLineWidth {
		t.Errorf("expected line width %d, got %d", config.DefaultLineWidth, result.Config.LineWidth)
	}
	if result.Config.TabsEnabled() {
		t.Error("expected spaces by default")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtwriter.yml"), `
indent_width: 4
use_tabs: true
line_width: 80
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.IndentWidth != 4 {
		t.Errorf("expected indent width 4, got %d", result.Config.IndentWidth)
	}
	if !result.Config.TabsEnabled() {
		t.Error("expected tabs from project config")
	}
	if result.Config.LineWidth != 80 {
		t.Errorf("expected line width 80, got %d", result.Config.LineWidth)
	}
	if result.Config.NewLine != config.DefaultNewLine {
		t.Errorf("expected default newline to survive, got %q", result.Config.NewLine)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ".fmtwriter.yaml"), "line_width: 60\n")

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.LineWidth != 60 {
		t.Errorf("expected line width 60, got %d", result.Config.LineWidth)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".fmtwriter.yml"), "line_width: 60\n")

	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at VCS root, found %q", path)
	}
}

func TestFindProjectConfig_GitFileMarksWorktree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".fmtwriter.yml"), "line_width: 60\n")

	worktree := filepath.Join(root, "worktree")
	if err := os.MkdirAll(worktree, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(worktree, ".git"), "gitdir: ../.git/worktrees/worktree\n")

	path, err := FindProjectConfig(context.Background(), worktree)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at worktree root, found %q", path)
	}
}

func TestDiscoverPaths_UserConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "fmtwriter")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "config.yml"), "indent_width: 8\n")

	paths, err := DiscoverPaths(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("DiscoverPaths() error = %v", err)
	}
	if want := filepath.Join(dir, "config.yml"); paths.User != want {
		t.Errorf("User = %q, want %q", paths.User, want)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtwriter.yml"), "indent_width: 4\nline_width: 80\n")

	explicitPath := filepath.Join(tmpDir, "custom.yaml")
	writeFile(t, explicitPath, "line_width: 100\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = explicitPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.LineWidth != 100 {
		t.Errorf("expected explicit line width 100, got %d", result.Config.LineWidth)
	}
	if result.Config.IndentWidth != 4 {
		t.Errorf("expected project indent width 4, got %d", result.Config.IndentWidth)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicitPath {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtwriter.yml"), "use_tabs: true\nline_width: 80\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		UseTabs: config.Bool(false),
		Jobs:    3,
		Format:  config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.TabsEnabled() {
		t.Error("expected CLI to turn tabs off")
	}
	if result.Config.LineWidth != 80 {
		t.Errorf("expected line width 80 from project, got %d", result.Config.LineWidth)
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", result.Config.Jobs)
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", result.Config.Format)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtwriter.yml"), "line_width: 80\n")

	t.Setenv("FMTWRITER_LINE_WIDTH", "90")
	t.Setenv("FMTWRITER_USE_TABS", "true")
	t.Setenv("FMTWRITER_IGNORE", "a/**, b/*.yaml")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{LineWidth: 70}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.LineWidth != 70 {
		t.Errorf("expected CLI to beat env, got %d", result.Config.LineWidth)
	}
	if !result.Config.TabsEnabled() {
		t.Error("expected tabs from env")
	}
	if len(result.Config.Ignore) != 2 || result.Config.Ignore[1] != "b/*.yaml" {
		t.Errorf("unexpected ignore list %v", result.Config.Ignore)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("FMTWRITER_INDENT_WIDTH", "wide")

	opts := isolatedOptions(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "FMTWRITER_INDENT_WIDTH") {
		t.Fatalf("expected env error naming the variable, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "newline", content: "newline: cr\n", field: "newline"},
		{name: "width mode", content: "width_mode: pixels\n", field: "width_mode"},
		{name: "ignore glob", content: "ignore: [\"[a-\"]\n", field: "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, ".fmtwriter.yml")
			writeFile(t, configPath, tt.content)

			_, err := Load(context.Background(), isolatedOptions(tmpDir))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
			if verr.FilePath != configPath {
				t.Errorf("expected file path %q, got %q", configPath, verr.FilePath)
			}
		})
	}
}

func TestLoad_ReportsEveryValidationError(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtwriter.yml"), "newline: cr\nwidth_mode: pixels\nignore: [\"[a-\"]\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"newline", "width_mode", "ignore[0]"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %q in error, got %v", field, err)
		}
	}

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "newline" {
		t.Errorf("expected first ValidationError for newline, got %v", err)
	}
}

func TestValidationResult_Err(t *testing.T) {
	t.Parallel()

	if err := Validate(config.NewConfig()).Err(); err != nil {
		t.Errorf("expected nil for valid config, got %v", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".fmtwriter.yml"), "line_width: [\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil || !strings.Contains(err.Error(), "load project config") {
		t.Fatalf("expected project config error, got %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.LineWidth = 10

	result := Validate(cfg)
	if !result.Valid() {
		t.Fatalf("unexpected errors: %v", result.AllMessages())
	}
	if !result.HasWarnings() {
		t.Error("expected narrow line width warning")
	}
}

func TestValidate_WriteAndCheck(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Check = true

	if Validate(cfg).Valid() {
		t.Error("expected write+check to be rejected")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{IndentWidth: 4, Ignore: []string{"a"}},
		&config.Config{DetectLanguage: config.Bool(true)},
		&config.Config{Ignore: []string{"b"}},
	)

	if merged.IndentWidth != 4 {
		t.Errorf("expected indent width 4, got %d", merged.IndentWidth)
	}
	if !merged.LanguageDetectionEnabled() {
		t.Error("expected language detection enabled")
	}
	if len(merged.Ignore) != 1 || merged.Ignore[0] != "b" {
		t.Errorf("expected later slice to replace, got %v", merged.Ignore)
	}
	if MergeAll() != nil {
		t.Error("expected nil for no configs")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if _, ok := vars["FMTWRITER_LINE_WIDTH"]; !ok {
		t.Error("expected FMTWRITER_LINE_WIDTH to be listed")
	}
	if got := GetEnvVarName("width_mode"); got != "FMTWRITER_WIDTH_MODE" {
		t.Errorf("GetEnvVarName(width_mode) = %q", got)
	}
}
