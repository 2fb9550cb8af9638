package arithmetic

import (
	"fmt"
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

// tracer is the arithmetic service's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("arithmetic")

// Handler serves the arithmetic endpoints. It holds no per-request state.
type Handler struct {
	validator *validation.Validator
	metrics   *observability.OperationMetrics
}

func NewHandler(v *validation.Validator, m *observability.OperationMetrics) *Handler {
	return &Handler{validator: v, metrics: m}
}

// Hello handles GET /arithmetic/
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	handlers.WriteSuccess(w, http.StatusOK, map[string]string{"hello": "arithmetic world"})
}

// Add handles POST /arithmetic/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, Add)
}

// Subtract handles POST /arithmetic/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, Subtract)
}

// Multiply handles POST /arithmetic/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, Multiply)
}

// Divide handles POST /arithmetic/divide
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, Divide)
}

// handleBinaryOp is the shared pipeline for the binary operations: a child
// span, validation, evaluation, metrics, a trace-correlated log line and the
// enveloped response.
func (h *Handler) handleBinaryOp(w http.ResponseWriter, r *http.Request, op Operator) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := string(op)

	ctx, span := tracer.Start(ctx, "arithmetic."+opName,
		trace.WithAttributes(
			attribute.String("arithmetic.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req OperandsRequest
	if err := h.validator.DecodeJSON(r.Body, &req); err != nil {
		observability.RecordDecodeError(ctx, span, logger, h.metrics.Errors, opName, err, w)
		return
	}
	a, b := *req.A, *req.B

	span.SetAttributes(
		attribute.Float64("arithmetic.operand.a", a),
		attribute.Float64("arithmetic.operand.b", b),
	)

	start := time.Now()
	result, err := Evaluate(op, a, b)
	elapsed := time.Since(start)

	if err != nil {
		observability.RecordError(ctx, span, logger, h.metrics.Errors, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	h.metrics.RecordSuccess(ctx, opName, elapsed, result)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
	))
	span.SetAttributes(attribute.Float64("arithmetic.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("arithmetic operation completed",
		zap.String("operation", opName),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Duration("duration", elapsed),
	)

	handlers.WriteSuccess(w, http.StatusCreated, result)
}

// Chain handles POST /arithmetic/chain. It applies each step to a running
// total under its own child span, so a chain renders as a multi-level trace.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "arithmetic.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := h.validator.DecodeJSON(r.Body, &req); err != nil {
		observability.RecordDecodeError(ctx, span, logger, h.metrics.Errors, "chain", err, w)
		return
	}
	steps := req.steps()

	span.SetAttributes(
		attribute.Float64("chain.initial", *req.Initial),
		attribute.Int("chain.steps_count", len(steps)),
	)

	start := time.Now()
	running := *req.Initial
	results := make([]StepResult, 0, len(steps))

	for i, step := range steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("arithmetic.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", string(step.Op)),
				attribute.Float64("chain.step.input", running),
				attribute.Float64("chain.step.value", step.Value),
			),
		)

		next, err := Evaluate(step.Op, running, step.Value)
		if err != nil {
			stepErr := &StepError{Index: i, Op: step.Op, Err: err}
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			observability.RecordError(ctx, span, logger, h.metrics.Errors, "chain", stepErr.Error(), stepErr, http.StatusBadRequest, w)
			return
		}

		stepSpan.SetAttributes(attribute.Float64("chain.step.result", next))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", string(step.Op)),
			zap.Float64("input", running),
			zap.Float64("value", step.Value),
			zap.Float64("result", next),
		)

		running = next
		results = append(results, StepResult{Op: step.Op, Value: step.Value, Result: running})
	}

	h.metrics.RecordSuccess(ctx, "chain", time.Since(start), running)

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", running),
		attribute.Int("total_steps", len(steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", running))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", *req.Initial),
		zap.Float64("result", running),
		zap.Int("steps", len(steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteSuccess(w, http.StatusCreated, ChainResult{
		Initial: *req.Initial,
		Steps:   results,
		Result:  running,
	})
}
