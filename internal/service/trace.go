package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/storefront/internal/metrics"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/tracing"
)

var tracer = tracing.Tracer("service")

// slowQueryThreshold is the latency above which catalog queries are logged
// as warnings. For deferred queries the span starts after the simulated
// delay, so only the query itself is measured.
const slowQueryThreshold = time.Second

// traceQuery starts a span for a catalog operation. The returned function
// must be called when the operation completes:
//
//	ctx, end := traceQuery(ctx, s.logger, "search")
//	defer func() { end(err, len(products)) }()
//
// It records the query duration and result count metrics and logs slow
// queries.
func traceQuery(ctx context.Context, fallback *slog.Logger, operation string, attrs ...attribute.KeyValue) (context.Context, func(err error, results int)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "catalog."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(append(attrs, attribute.String("catalog.operation", operation))...),
	)

	return ctx, func(err error, results int) {
		elapsed := time.Since(start)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("catalog.results", results))
			metrics.CatalogQueryResults.WithLabelValues(operation).Observe(float64(results))
		}
		span.End()

		metrics.CatalogQueryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())

		if elapsed >= slowQueryThreshold {
			l := logger.FromContextOr(ctx, fallback)
			l.WarnContext(ctx, "slow catalog query",
				slog.String("operation", operation),
				slog.Duration("duration", elapsed),
			)
		}
	}
}
