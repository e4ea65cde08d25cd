// Package gen implements the generation invoker: it runs the external
// generator for one task, or emits an equivalent self-contained shell script.
package gen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/tdbuild/internal/core/domain"
	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Invoker = (*ToolInvoker)(nil)

// ToolInvoker implements ports.Invoker using os/exec.
type ToolInvoker struct {
	logger ports.Logger
}

// NewInvoker creates a new ToolInvoker.
func NewInvoker(logger ports.Logger) *ToolInvoker {
	return &ToolInvoker{logger: logger}
}

// Invoke executes the generator synchronously. The argument list comes from
// the task's Argv, the same assembly the script mode uses. Stdout and stderr
// are captured in full; when a telemetry vertex rides on the context they are
// streamed there as well. A non-zero exit yields a generation error carrying
// the exit code and both captured streams. The failure is scoped to this one
// task; the invoker makes no retry.
func (i *ToolInvoker) Invoke(ctx context.Context, task *domain.GenerationTask) (*domain.Artifact, error) {
	if err := ensureOutputDir(task.OutputPath); err != nil {
		return nil, zerr.With(err, "task", task.Name)
	}

	//nolint:gosec // Generator and arguments come from the loaded manifest.
	cmd := exec.CommandContext(ctx, task.Generator, task.Argv()...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if v := ports.VertexFromContext(ctx); v != nil {
		cmd.Stdout = io.MultiWriter(&stdout, v.Stdout())
		cmd.Stderr = io.MultiWriter(&stderr, v.Stderr())
	}

	i.logger.Info("running generator: " + strings.Join(cmd.Args, " "))

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}

		genErr := zerr.With(errors.Join(domain.ErrGenerationFailed, err), "task", task.Name)
		genErr = zerr.With(genErr, "exit_code", exitCode)
		genErr = zerr.With(genErr, "stdout", stdout.String())
		return nil, zerr.With(genErr, "stderr", strings.TrimSpace(stderr.String()))
	}

	return &domain.Artifact{TaskName: task.Name, OutputPath: task.OutputPath}, nil
}

func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "." {
		return nil
	}
	if err := mkdirAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", dir)
	}
	return nil
}
