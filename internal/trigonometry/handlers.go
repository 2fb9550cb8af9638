package trigonometry

import (
	"errors"
	"net/http"
	"time"

	"calcservice/internal/handlers"
	"calcservice/internal/observability"
	"calcservice/internal/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("trigonometry")

// AngleQuery is the query string of GET /trigonometry/{sin,cos,tan}.
type AngleQuery struct {
	Theta *float64 `query:"theta" validate:"required"`
}

// Handler serves the trigonometry endpoints. It holds no per-request state.
type Handler struct {
	validator *validation.Validator
	metrics   *observability.OperationMetrics
}

func NewHandler(v *validation.Validator, m *observability.OperationMetrics) *Handler {
	return &Handler{validator: v, metrics: m}
}

// Hello handles GET /trigonometry/
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	handlers.WriteSuccess(w, http.StatusOK, map[string]string{"hello": "trigonometry world"})
}

// Sin handles GET /trigonometry/sin?theta=N
func (h *Handler) Sin(w http.ResponseWriter, r *http.Request) {
	h.handleFunction(w, r, Sin)
}

// Cos handles GET /trigonometry/cos?theta=N
func (h *Handler) Cos(w http.ResponseWriter, r *http.Request) {
	h.handleFunction(w, r, Cos)
}

// Tan handles GET /trigonometry/tan?theta=N
func (h *Handler) Tan(w http.ResponseWriter, r *http.Request) {
	h.handleFunction(w, r, Tan)
}

func (h *Handler) handleFunction(w http.ResponseWriter, r *http.Request, fn Function) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := string(fn)

	ctx, span := tracer.Start(ctx, "trigonometry."+opName,
		trace.WithAttributes(
			attribute.String("trigonometry.function", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	// Query failures are a 400 with the summary, unlike body field errors.
	var q AngleQuery
	if err := h.validator.DecodeQuery(r.URL.Query(), &q); err != nil {
		status := http.StatusBadRequest
		var fieldErrs validation.FieldErrors
		if !errors.As(err, &fieldErrs) {
			status = http.StatusInternalServerError
		}
		observability.RecordError(ctx, span, logger, h.metrics.Errors, opName, err.Error(), err, status, w)
		return
	}
	theta := *q.Theta

	span.SetAttributes(attribute.Float64("trigonometry.theta_degrees", theta))

	start := time.Now()
	result, err := Evaluate(fn, theta)
	elapsed := time.Since(start)

	if err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.Errors, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	h.metrics.RecordSuccess(ctx, opName, elapsed, result)

	span.SetAttributes(attribute.Float64("trigonometry.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("trigonometric function evaluated",
		zap.String("operation", opName),
		zap.Float64("theta", theta),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Duration("duration", elapsed),
	)

	handlers.WriteSuccess(w, http.StatusCreated, result)
}

// Calculate handles POST /trigonometry/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	const opName = "calculate"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "trigonometry.calculate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var in TriangleInput
	if err := h.validator.DecodeJSON(r.Body, &in); err != nil {
		observability.RecordDecodeError(ctx, span, logger, h.metrics.Errors, opName, err, w)
		return
	}

	sides, err := Classify(in)
	if err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.Errors, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("triangle.known_sides", sidesName(sides)))

	start := time.Now()
	tri, err := Solve(sides)
	elapsed := time.Since(start)

	if err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.Errors, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	h.metrics.RecordSuccess(ctx, opName, elapsed, tri.Theta)

	span.AddEvent("triangle.solved", trace.WithAttributes(
		attribute.Float64("opposite", tri.Opposite),
		attribute.Float64("adjacent", tri.Adjacent),
		attribute.Float64("hypotenuse", tri.Hypotenuse),
		attribute.Float64("theta", tri.Theta),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("triangle solved",
		zap.String("known_sides", sidesName(sides)),
		zap.Float64("opposite", tri.Opposite),
		zap.Float64("adjacent", tri.Adjacent),
		zap.Float64("hypotenuse", tri.Hypotenuse),
		zap.Float64("theta", tri.Theta),
		zap.String("request_id", requestID),
		zap.Duration("duration", elapsed),
	)

	handlers.WriteSuccess(w, http.StatusCreated, tri)
}

func sidesName(s KnownSides) string {
	switch s.(type) {
	case OppositeHypotenuse:
		return "opposite_hypotenuse"
	case AdjacentHypotenuse:
		return "adjacent_hypotenuse"
	case OppositeAdjacent:
		return "opposite_adjacent"
	default:
		return "unknown"
	}
}
