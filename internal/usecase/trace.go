package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var pipelineTracer = otel.Tracer("voetbalpool/pipeline")

// startSpan opens a child span for one pipeline stage. Untraced batch runs
// get the parent's no-op span back and pay nothing.
func startSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return pipelineTracer.Start(ctx, stage)
}
