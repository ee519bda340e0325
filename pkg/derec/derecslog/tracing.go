package derecslog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanEnder closes the span opened by StartSpan, recording err (if any)
// as the span's terminal status.
type SpanEnder func(err error)

// StartSpan opens a span named name under tracer, with the given
// attributes, and returns the derived context plus a closer. Passing a
// nil tracer is valid and returns a no-op closer, so orchestrators can
// unconditionally wrap their protocol runs in StartSpan/end without a
// tracer being mandatory.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, SpanEnder) {
	if tracer == nil {
		return ctx, func(error) {}
	}

	spanCtx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return spanCtx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
