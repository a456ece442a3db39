package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/fmtwriter/internal/logging"
	"github.com/yaklabco/fmtwriter/pkg/config"
	"github.com/yaklabco/fmtwriter/pkg/diff"
	"github.com/yaklabco/fmtwriter/pkg/fsutil"
	"github.com/yaklabco/fmtwriter/pkg/writer"
)

// ErrTargetModified is returned when a target changes on disk between being
// read and being written.
var ErrTargetModified = errors.New("target modified during render")

// RenderFunc renders one script.
type RenderFunc func(ctx context.Context, path string, cfg *config.Config, opts RenderOptions) (*Rendering, error)

// Runner renders many scripts concurrently.
type Runner struct {
	// Render renders a single script. Defaults to RenderFile.
	Render RenderFunc
}

// New creates a Runner that uses RenderFile.
func New() *Runner {
	return &Runner{Render: RenderFile}
}

// Run discovers scripts under opts.Paths and processes them with a worker
// pool. Outcomes are returned in discovery order regardless of completion
// order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered scripts", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				outcome := r.process(ctx, path, workDir, opts)
				select {
				case <-ctx.Done():
					return
				case outCh <- outcome:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
	)

	return result, nil
}

// process renders one script and, if requested, writes its target.
func (r *Runner) process(ctx context.Context, path, workDir string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	outcome := FileOutcome{Path: path}

	rendering, err := r.Render(ctx, path, opts.effectiveConfig(), RenderOptions{})
	if rendering != nil {
		outcome.Target = rendering.Target
		outcome.Language = rendering.Settings.Language
		outcome.Replay = rendering.Stats
		if rendering.Arena != nil {
			outcome.Nodes = rendering.Arena.Len()
		}
	}
	if err != nil {
		outcome.Error = err
		outcome.Internal = errors.Is(err, writer.ErrContractViolation)
		logger.Debug("render failed", logging.FieldError, err)
		return outcome
	}

	outcome.Output = rendering.Output
	logger.Debug("rendered",
		logging.FieldOps, rendering.Stats.Ops,
		logging.FieldChoices, rendering.Stats.Choices,
		logging.FieldRestores, rendering.Stats.Restores,
		logging.FieldLanguage, rendering.Settings.Language,
	)

	if rendering.Target == "" {
		return outcome
	}

	outcome.Diff = diff.Generate(displayPath(workDir, rendering.Target), rendering.Existing, rendering.Output)
	if !opts.Write || !outcome.Changed() {
		return outcome
	}

	if err := r.store(ctx, rendering, opts, &outcome); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", rendering.Target, err)
	}
	return outcome
}

func (r *Runner) store(ctx context.Context, rendering *Rendering, opts Options, outcome *FileOutcome) error {
	mode := fsutil.DefaultFileMode
	if info := rendering.TargetInfo; info != nil {
		mode = info.Mode
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			return err
		}
		if modified {
			return ErrTargetModified
		}
	}

	if opts.Backup {
		backedUp, err := fsutil.CreateBackup(ctx, rendering.Target)
		if err != nil {
			return err
		}
		outcome.BackedUp = backedUp
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, rendering.Target, rendering.Output, mode)
	if err != nil {
		return err
	}
	outcome.Written = written
	return nil
}

func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
