package navigation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTracerName is the tracer used when none is configured.
const DefaultTracerName = "outlet"

// Span attribute keys.
const (
	attrKind    = attribute.Key("outlet.navigation.kind")
	attrURI     = attribute.Key("outlet.navigation.uri")
	attrPath    = attribute.Key("outlet.navigation.path")
	attrPattern = attribute.Key("outlet.route.pattern")
	attrTarget  = attribute.Key("outlet.route.target")
	attrOutcome = attribute.Key("outlet.navigation.outcome")
	attrPushed  = attribute.Key("outlet.history.pushed")
)

// defaultTracer resolves the tracer from the global provider.
func defaultTracer() trace.Tracer {
	return otel.Tracer(DefaultTracerName)
}

func (c *Controller[M]) startSpan(kind navKind, uri string) (context.Context, trace.Span) {
	return c.tracer.Start(c.ctx, "outlet.navigate."+string(kind),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attrKind.String(string(kind)),
			attrURI.String(uri),
		),
	)
}

func markSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attrOutcome.String(outcomeError))
}
