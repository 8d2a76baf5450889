package execs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/hop/pkg/log"
)

// Executor runs a [Command], tracing each execution.
type Executor struct {
	tracer trace.Tracer
	cmd    Command
}

// NewExecutor creates a new [Executor] for cmd.
func NewExecutor(cmd Command) Executor {
	return Executor{
		tracer: otel.Tracer("executor"),
		cmd:    cmd,
	}
}

// Exec runs the command in dir and returns its output.
//
// When the command fails, the error wraps [ErrCommandExecution]; the [Result]
// is still returned if the command produced any output.
func (e Executor) Exec(ctx context.Context, dir string) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "exec", trace.WithAttributes(
		attribute.String("command", e.String()),
		attribute.String("path", dir),
	))
	defer span.End()

	if e.cmd.Command == "" {
		return nil, ErrEmptyCommand
	}

	logger := log.WithContext(ctx).With(
		slog.String("command", e.String()),
		slog.String("path", dir),
	)

	start := time.Now()

	//nolint:gosec // G204: Subprocess launched with a potential tainted input or cmd arguments.
	cmd := exec.CommandContext(ctx, e.cmd.Command, e.cmd.Args...)
	cmd.Dir = dir
	cmd.Env = e.cmd.GetEnv()

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		logger.DebugContext(ctx, "command failed",
			slog.Duration("duration", time.Since(start)),
			slog.String("stderr", strings.TrimSpace(result.Stderr)),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "command failed")

		if stdout.Len() > 0 || stderr.Len() > 0 {
			return result, fmt.Errorf("%w: %w", ErrCommandExecution, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrCommandExecution, err)
	}

	logger.DebugContext(ctx, "command executed successfully",
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (e Executor) String() string {
	return e.cmd.String()
}
