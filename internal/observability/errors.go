package observability

import (
	"context"
	"errors"
	"net/http"

	"calcservice/internal/handlers"
	"calcservice/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises error handling across all domains: records the error
// on the span, increments the provided error counter, logs with trace context,
// and writes a JSON error HTTP response.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	recordFailure(ctx, span, logger, counter, opName, msg, err)
	handlers.WriteError(w, status, msg)
}

// RecordValidationError is RecordError for field-level validation failures:
// the response is a 422 carrying the field → messages mapping.
func RecordValidationError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName string, fieldErrs validation.FieldErrors, w http.ResponseWriter) {
	recordFailure(ctx, span, logger, counter, opName, "validation failed", fieldErrs)
	handlers.WriteFieldErrors(w, fieldErrs)
}

// RecordDecodeError maps a failure from decoding a JSON request body onto
// its response: 400 for a missing or malformed body, 422 for field errors.
func RecordDecodeError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName string, err error, w http.ResponseWriter) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.Is(err, validation.ErrNoInput):
		RecordError(ctx, span, logger, counter, opName, validation.NoInputMessage, err, http.StatusBadRequest, w)
	case errors.Is(err, validation.ErrMalformedBody):
		RecordError(ctx, span, logger, counter, opName, "invalid request body", err, http.StatusBadRequest, w)
	case errors.As(err, &fieldErrs):
		RecordValidationError(ctx, span, logger, counter, opName, fieldErrs, w)
	default:
		RecordError(ctx, span, logger, counter, opName, "internal error", err, http.StatusInternalServerError, w)
	}
}

func recordFailure(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", opName)))

	logger.Error(msg,
		zap.String("operation", opName),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)
}
