package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/fmtwriter/internal/logging"
	"github.com/yaklabco/fmtwriter/pkg/fsutil"
	"github.com/yaklabco/fmtwriter/pkg/runner"
	"github.com/yaklabco/fmtwriter/pkg/script"
	"github.com/yaklabco/fmtwriter/pkg/trace"
	"github.com/yaklabco/fmtwriter/pkg/writer"
)

type traceFlags struct {
	format string
	output string
	title  string
}

func newTraceCommand() *cobra.Command {
	flags := &traceFlags{}

	cmd := &cobra.Command{
		Use:   "trace <script>",
		Short: "Export the decision graph of a script's render",
		Long: `Render a single layout script while recording every node the writer
allocates, then export the graph. Nodes on the final output path are marked
committed; nodes from rewound choices are marked abandoned.

A trace is exported even when the script violates a writer contract, which
makes it the quickest way to see where an unbalanced indent started.

Examples:
  fmtwriter trace api.layout.yaml
  fmtwriter trace api.layout.yaml --format markdown
  fmtwriter trace api.layout.yaml --format html -o trace.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "json", "export format: json, markdown, html")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the trace to a file instead of stdout")
	cmd.Flags().StringVar(&flags.title, "title", "", "document title (default: the script name)")

	return cmd
}

func runTrace(cmd *cobra.Command, path string, flags *traceFlags) error {
	ctx := cmd.Context()

	format, err := trace.ParseFormat(flags.format)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, nil)
	if err != nil {
		return err
	}

	rendering, renderErr := runner.RenderFile(ctx, path, cfg, runner.RenderOptions{Trace: true})
	if rendering == nil || rendering.Recorder == nil {
		return withExitCode(renderExitCode(renderErr), renderErr)
	}

	graph := trace.Build(rendering.Arena, rendering.Recorder.Nodes(), rendering.Tail)

	title := flags.title
	if title == "" {
		title = filepath.Base(path)
	}

	var buf bytes.Buffer
	if err := graph.Export(&buf, format, title); err != nil {
		return withExitCode(ExitIOError, err)
	}

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("write trace: %w", err))
		}
	} else {
		if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
			return withExitCode(ExitIOError, err)
		}
		logging.Default().Info("wrote trace",
			logging.FieldOutput, flags.output,
			logging.FieldNodes, len(graph.Nodes),
		)
	}

	if renderErr != nil {
		return withExitCode(renderExitCode(renderErr), renderErr)
	}
	return nil
}

func renderExitCode(err error) int {
	switch {
	case errors.Is(err, writer.ErrContractViolation):
		return ExitInternalError
	case errors.Is(err, script.ErrMalformed):
		return ExitConfigError
	default:
		return ExitIOError
	}
}
