package observability

import (
	"context"
	"net/http"

	"go-chi-simpson/internal/handlers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises error handling across all domains: records the error
// on the span, increments the provided error counter, logs with trace context,
// and writes a JSON error HTTP response. kind is the machine-readable error tag
// and may be empty.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, kind, msg string, err error, status int, w http.ResponseWriter) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	attrs := []attribute.KeyValue{attribute.String("operation", opName)}
	if kind != "" {
		attrs = append(attrs, attribute.String("error.kind", kind))
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))

	logger.Error(msg,
		zap.String("operation", opName),
		zap.String("kind", kind),
		zap.Error(err),
		zap.Int("status", status),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	if kind == "" {
		handlers.WriteError(w, status, msg)
		return
	}
	handlers.WriteErrorKind(w, status, kind, msg)
}
