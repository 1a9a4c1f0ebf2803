package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bmi-tracker/internal/apperr"
	"bmi-tracker/internal/handlers"
)

// ErrorKind classifies err for metric and log attributes.
func ErrorKind(err error) string {
	switch {
	case apperr.IsValidation(err):
		return "validation"
	case apperr.IsStorage(err):
		return "storage"
	default:
		return "internal"
	}
}

// RecordError marks span as failed, counts the error for opName, logs it with
// request and trace ids, and writes the {"error": msg} response.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	kind := ErrorKind(err)

	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attribute.String("error.kind", kind))

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("kind", kind),
	))

	log := logger.Error
	if kind == "validation" {
		log = logger.Warn
	}
	log(msg,
		zap.String("operation", opName),
		zap.String("kind", kind),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	handlers.WriteError(w, status, msg)
}
