package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/fmtwriter/pkg/config"
	"github.com/yaklabco/fmtwriter/pkg/fsutil"
	"github.com/yaklabco/fmtwriter/pkg/langdetect"
	"github.com/yaklabco/fmtwriter/pkg/render"
	"github.com/yaklabco/fmtwriter/pkg/script"
	"github.com/yaklabco/fmtwriter/pkg/writer"
)

// Settings is the layout configuration resolved for one script.
type Settings struct {
	Indentation render.Indentation
	LineWidth   uint32
	NewLine     string
	WidthMode   config.WidthMode

	// Language is the detected target language, if detection ran.
	Language string
}

// Measure returns the text width function for the settings.
func (s Settings) Measure() writer.WidthFunc {
	if s.WidthMode == config.WidthDisplay {
		return writer.DisplayWidth
	}
	return writer.CharCount
}

// ResolveSettings layers configuration, language defaults for the target and
// the script's own overrides, in that order. existing is the target's current
// content and is consulted for language detection and newline "auto".
func ResolveSettings(cfg *config.Config, sc *script.Script, target string, existing []byte) (Settings, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	s := Settings{
		Indentation: render.Indentation{UseTabs: cfg.TabsEnabled(), Width: cfg.IndentWidth},
		LineWidth:   cfg.LineWidth,
		WidthMode:   cfg.WidthMode,
	}

	if cfg.LanguageDetectionEnabled() && target != "" {
		indent, lang, ok := langdetect.IndentationFor(target, existing)
		s.Language = lang
		if ok {
			s.Indentation = render.Indentation{UseTabs: indent.UseTabs, Width: indent.Width}
		}
	}

	if sc.IndentWidth != nil {
		s.Indentation.Width = *sc.IndentWidth
	}
	if sc.UseTabs != nil {
		s.Indentation.UseTabs = *sc.UseTabs
	}
	if sc.LineWidth != nil {
		s.LineWidth = *sc.LineWidth
	}

	if s.Indentation.Width == 0 {
		return Settings{}, fmt.Errorf("%w: indent_width must be at least 1", script.ErrMalformed)
	}

	newline := cfg.NewLine
	if sc.NewLine != "" {
		newline = sc.NewLine
	}
	kind, err := render.ParseNewLineKind(newline)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", script.ErrMalformed, err)
	}
	s.NewLine = kind.Resolve(existing)

	return s, nil
}

// RenderOptions controls RenderFile.
type RenderOptions struct {
	// Trace records every allocated node so the decision graph can be exported.
	Trace bool
}

// Rendering is the result of rendering one script.
type Rendering struct {
	Path   string
	Script *script.Script

	// Target is the absolute target path, or "" if the script names none.
	Target string

	// Existing is the target's content before rendering (nil if absent).
	Existing []byte

	// TargetInfo snapshots the target for modification checks (nil if absent).
	TargetInfo *fsutil.FileInfo

	Settings Settings
	Output   []byte
	Stats    script.Stats

	Arena    *writer.Arena
	Tail     writer.NodeID
	Recorder *writer.Recorder
}

// RenderFile reads, resolves and replays the script at path. A contract
// violation raised by the script is returned as an error wrapping
// writer.ErrContractViolation.
func RenderFile(ctx context.Context, path string, cfg *config.Config, opts RenderOptions) (*Rendering, error) {
	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	sc, err := script.ParseFile(path, data)
	if err != nil {
		return nil, err
	}

	r := &Rendering{Path: path, Script: sc}

	if sc.Target != "" {
		r.Target = sc.Target
		if !filepath.IsAbs(r.Target) {
			r.Target = filepath.Join(filepath.Dir(path), r.Target)
		}

		r.Existing, r.TargetInfo, err = fsutil.ReadFile(ctx, r.Target)
		if err != nil && !errors.Is(err, fsutil.ErrNotFound) {
			return nil, fmt.Errorf("read target: %w", err)
		}
	}

	r.Settings, err = ResolveSettings(cfg, sc, r.Target, r.Existing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r.Arena = writer.NewArena(r.Settings.Measure())
	wopts := writer.Options{IndentWidth: r.Settings.Indentation.Width}
	if opts.Trace {
		r.Recorder = writer.NewRecorder()
		wopts.Collector = r.Recorder
	}
	w := writer.New(r.Arena, wopts)

	replayErr := writer.Guard(func() {
		r.Stats = script.Replay(w, sc.Ops, script.ReplayOptions{LineWidth: r.Settings.LineWidth})
	})
	r.Tail = w.CurrentNodeID()
	if replayErr != nil {
		return r, fmt.Errorf("%s: %w", path, replayErr)
	}

	printer := render.NewPrinter(r.Settings.Indentation, r.Settings.NewLine)
	r.Output = []byte(printer.Print(w.Items()))

	return r, nil
}
