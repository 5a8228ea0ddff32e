package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-chi-simpson/internal/expr"
	"go-chi-simpson/internal/handlers"
	"go-chi-simpson/internal/observability"
	"go-chi-simpson/internal/simpson"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const maxBodyBytes = 64 << 10

// Handler serves the calculator endpoints. MaxIntervals caps n for HTTP
// callers; zero disables the cap.
type Handler struct {
	MaxIntervals int
}

func NewHandler(maxIntervals int) *Handler {
	return &Handler{MaxIntervals: maxIntervals}
}

// Integrate handles POST /calculator/integrate. The request is validated and
// run in separate child spans so a trace shows where a failure happened.
func (h *Handler) Integrate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.integrate",
		trace.WithAttributes(
			attribute.String("calculator.operation", "integrate"),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	req := newIntegrateRequest()
	if err := decodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "integrate", "", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	p := simpson.Params(req)

	span.SetAttributes(
		attribute.Float64("simpson.a", p.A),
		attribute.Float64("simpson.b", p.B),
		attribute.Int("simpson.n", p.N),
		attribute.String("simpson.expression", p.Expression),
	)

	if h.MaxIntervals > 0 && p.N > h.MaxIntervals {
		err := &simpson.Error{
			Kind: simpson.KindInvalidIntervalCount,
			Msg:  fmt.Sprintf("number of intervals n must be at most %d, got %d", h.MaxIntervals, p.N),
		}
		fail(ctx, span, logger, err, w)
		return
	}

	// --- validate ---
	_, validateSpan := tracer.Start(ctx, "calculator.integrate.validate")
	f, err := simpson.Validate(p)
	if err != nil {
		endWithError(validateSpan, err)
		fail(ctx, span, logger, err, w)
		return
	}
	validateSpan.SetAttributes(
		attribute.String("expression.canonical", f.String()),
		attribute.Bool("expression.constant", f.IsConstant()),
	)
	validateSpan.SetStatus(codes.Ok, "")
	validateSpan.End()

	// --- run ---
	_, runSpan := tracer.Start(ctx, "calculator.integrate.run",
		trace.WithAttributes(attribute.Int("simpson.samples", p.N+1)),
	)
	start := time.Now()
	res, err := simpson.Run(p, f)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		var se *simpson.Error
		if errors.As(err, &se) && se.Kind == simpson.KindEvaluation {
			runSpan.AddEvent("sample.failed", trace.WithAttributes(
				attribute.Int("index", se.Index),
				attribute.Float64("x", se.X),
			))
		}
		endWithError(runSpan, err)
		fail(ctx, span, logger, err, w)
		return
	}

	runSpan.AddEvent("samples.complete", trace.WithAttributes(
		attribute.Float64("sum", res.Sum),
		attribute.Float64("h", res.H),
		attribute.Float64("duration_ms", elapsed),
	))
	runSpan.SetStatus(codes.Ok, "")
	runSpan.End()

	attrs := metric.WithAttributes(attribute.Bool("constant", f.IsConstant()))
	integrationsCounter.Add(ctx, 1, attrs)
	durationHistogram.Record(ctx, elapsed, attrs)
	samplesHistogram.Record(ctx, int64(len(res.Steps)), attrs)
	resultGauge.Record(ctx, res.Value, attrs)

	span.SetAttributes(attribute.Float64("simpson.result", res.Value))
	span.SetStatus(codes.Ok, "")

	logger.Info("integration completed",
		zap.Float64("a", p.A),
		zap.Float64("b", p.B),
		zap.Int("n", p.N),
		zap.String("expression", p.Expression),
		zap.Float64("result", res.Value),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, IntegrateResponse{
		A:          p.A,
		B:          p.B,
		N:          p.N,
		Expression: p.Expression,
		H:          res.H,
		Result:     res.Value,
		Steps:      res.Steps,
	})
}

// Validate handles POST /calculator/validate. An invalid expression is a
// successful check and is answered with 200 and valid=false.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.validate",
		trace.WithAttributes(
			attribute.String("calculator.operation", "validate"),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ValidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "validate", "", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	v := expr.Check(req.Expression)

	span.SetAttributes(
		attribute.String("simpson.expression", req.Expression),
		attribute.Bool("expression.valid", v.Valid),
		attribute.Bool("expression.constant", v.Constant),
	)
	span.SetStatus(codes.Ok, "")

	logger.Debug("expression checked",
		zap.String("expression", req.Expression),
		zap.Bool("valid", v.Valid),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, v)
}

// statusFor maps an engine error kind to its HTTP status.
func statusFor(k simpson.Kind) int {
	if k == simpson.KindEvaluation {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func fail(ctx context.Context, span trace.Span, logger *zap.Logger, err error, w http.ResponseWriter) {
	k := simpson.KindOf(err)
	observability.RecordError(ctx, span, logger, errorCounter, "integrate", k.String(), err.Error(), err, statusFor(k), w)
}

func endWithError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
