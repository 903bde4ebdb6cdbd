package graphsearch

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used for search spans.
const TracerName = "github.com/pdrpinto/graphsearch"

func startSearchSpan(contextObject context.Context, strategy string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(contextObject, "graphsearch.Search",
		trace.WithAttributes(attribute.String("graphsearch.strategy", strategy)),
	)
}

func endSearchSpan[StateType comparable, ActionType comparable](span trace.Span, result Result[StateType, ActionType], err error) {
	defer span.End()

	span.SetAttributes(
		attribute.Bool("graphsearch.found", result.Found),
		attribute.Int("graphsearch.expanded", result.Expanded),
		attribute.Int("graphsearch.generated", result.Generated),
		attribute.Int("graphsearch.peak_frontier", result.PeakFrontier),
	)
	if result.Found {
		span.SetAttributes(
			attribute.Int("graphsearch.plan_length", len(result.Actions)),
			attribute.Float64("graphsearch.cost", result.Cost),
		)
	}

	// No solution is an answer, not a failure.
	if err != nil && !errors.Is(err, ErrNoSolution) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
