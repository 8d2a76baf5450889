package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/hop/pkg/log"
)

// TracedToolHandler is a tool handler wrapped by [WithTracing].
type TracedToolHandler[In, Out any] func(
	context.Context,
	*mcp.ServerSession,
	*mcp.CallToolParamsFor[In],
) (*mcp.CallToolResultFor[Out], error)

// WithTracing wraps handler so that each call runs in its own span and is
// logged with the span's trace ID. Failed calls, including results flagged
// as errors, are recorded on the span.
func WithTracing[In, Out any](
	tracer trace.Tracer,
	handler TracedToolHandler[In, Out],
) mcp.ToolHandlerFor[In, Out] {
	return func(
		ctx context.Context,
		session *mcp.ServerSession,
		params *mcp.CallToolParamsFor[In],
	) (*mcp.CallToolResultFor[Out], error) {
		name := params.Name

		ctx, span := tracer.Start(ctx, "tool "+name)
		defer span.End()

		logger := log.WithContext(ctx)

		logger.DebugContext(ctx, "handling tool call",
			slog.String("name", name),
			slog.Any("args", params.Arguments),
		)

		result, err := handler(ctx, session, params)

		switch {
		case err != nil:
			logger.ErrorContext(ctx, "tool call failed",
				slog.String("name", name),
				slog.Any("err", err),
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, "tool call failed")

		case result != nil && result.IsError:
			logger.DebugContext(ctx, "tool call returned an error result", slog.String("name", name))
			span.SetStatus(codes.Error, "tool error result")

		default:
			logger.DebugContext(ctx, "tool call completed", slog.String("name", name))
		}

		return result, err
	}
}
