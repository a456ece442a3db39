package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/fmtwriter/internal/configloader"
	"github.com/yaklabco/fmtwriter/internal/logging"
	"github.com/yaklabco/fmtwriter/pkg/config"
	"github.com/yaklabco/fmtwriter/pkg/reporter"
	"github.com/yaklabco/fmtwriter/pkg/runner"
)

type renderFlags struct {
	format         string
	indentWidth    uint8
	useTabs        bool
	newline        string
	lineWidth      uint32
	widthMode      string
	detectLanguage bool
	ignore         []string
	backup         bool
	compact        bool
	quiet          bool
}

func newRenderCommand() *cobra.Command {
	var cfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render layout scripts",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &cfg, flags)
		},
	}

	addRenderFlags(cmd, &cfg, flags)

	return cmd
}

const renderLongDescription = `Render layout scripts and compare them with their targets.

By default, renders every *.layout.yaml and *.layout.yml file under the
current directory and prints the result. Specify paths to render specific
scripts or directories.

Examples:
  fmtwriter render                      # Render every script below .
  fmtwriter render gen/api.layout.yaml  # Render a single script
  fmtwriter render --check              # Fail if any target is out of date
  fmtwriter render --write --backup     # Update targets, keeping a backup
  fmtwriter render --format diff        # Show what --write would change
  fmtwriter render --use-tabs --line-width 100`

func runRender(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cliCfg.Write && cliCfg.Check {
		return withExitCode(ExitInvalidUsage, errors.New("--write and --check are mutually exclusive"))
	}

	applyRenderFlags(cmd, cliCfg, flags)

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	logger := logging.Default()
	logger.Debug("configuration loaded",
		logging.FieldIndentWidth, cfg.IndentWidth,
		logging.FieldUseTabs, cfg.TabsEnabled(),
		logging.FieldLineWidth, cfg.LineWidth,
		logging.FieldNewLine, cfg.NewLine,
		logging.FieldJobs, cfg.Jobs,
	)
	ctx = logging.WithLogger(ctx, logger)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Write:        cfg.Write,
		Backup:       flags.backup,
		Config:       cfg,
	}

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("render run failed: %w", err))
	}

	logger.Debug("render finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldOps, result.Stats.Ops,
		logging.FieldChoices, result.Stats.Choices,
		logging.FieldRestores, result.Stats.Restores,
	)

	if err := report(ctx, cmd, workDir, cfg, flags, result); err != nil {
		return withExitCode(ExitIOError, err)
	}

	switch code := ExitCodeFromResult(result, cfg.Check); code {
	case ExitSuccess:
		return nil
	case ExitCheckFailed:
		return ErrCheckFailed
	default:
		return withExitCode(code, errors.New("one or more scripts failed"))
	}
}

// applyRenderFlags copies explicitly set flags into cfg. Unset flags stay at
// their zero value so lower configuration layers show through.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	changed := cmd.Flags().Changed

	cfg.Format = config.OutputFormat(flags.format)
	cfg.Ignore = flags.ignore
	if changed("indent-width") {
		cfg.IndentWidth = flags.indentWidth
	}
	if changed("use-tabs") {
		cfg.UseTabs = config.Bool(flags.useTabs)
	}
	if changed("newline") {
		cfg.NewLine = flags.newline
	}
	if changed("line-width") {
		cfg.LineWidth = flags.lineWidth
	}
	if changed("width-mode") {
		cfg.WidthMode = config.WidthMode(flags.widthMode)
	}
	if changed("detect-language") {
		cfg.DetectLanguage = config.Bool(flags.detectLanguage)
	}
}

// loadConfig layers configuration files, environment and CLI values.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

func report(
	ctx context.Context,
	cmd *cobra.Command,
	workDir string,
	cfg *config.Config,
	flags *renderFlags,
	result *runner.Result,
) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowOutput:  !cfg.Write && !cfg.Check,
		ShowSummary: !flags.quiet,
		Compact:     flags.compact,
		TermWidth:   terminalWidth(cmd),
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func addRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write rendered output to each script's target")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "exit 1 if any target differs from its rendered output")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .fmtwriter.bak copy of each overwritten target")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of scripts to skip")

	cmd.Flags().Uint8Var(&flags.indentWidth, "indent-width", config.DefaultIndentWidth, "columns per indentation level")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent with tabs instead of spaces")
	cmd.Flags().StringVar(&flags.newline, "newline", config.DefaultNewLine, "line break: lf, crlf, system, auto")
	cmd.Flags().Uint32Var(&flags.lineWidth, "line-width", config.DefaultLineWidth, "column limit for layout choices")
	cmd.Flags().StringVar(&flags.widthMode, "width-mode", string(config.WidthChars),
		"text measurement: chars or display")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"derive indentation from the target's language")

	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress the summary line")
}
