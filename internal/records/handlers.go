package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bmi-tracker/internal/apperr"
	"bmi-tracker/internal/handlers"
	"bmi-tracker/internal/observability"
)

var tracer = otel.Tracer("records")

// maxBodyBytes bounds POST bodies; a measurement is a few dozen bytes.
const maxBodyBytes = 1 << 16

// Handler exposes a Service over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/records.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	op := h.begin(r, "list")
	defer op.end()

	recs, err := h.svc.List(op.ctx)
	if err != nil {
		op.fail(w, err)
		return
	}

	op.span.SetAttributes(attribute.Int("records.count", len(recs)))
	op.succeed()
	op.logger.Debug("records listed",
		zap.Int("count", len(recs)),
		zap.String("request_id", op.requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ListResponse{Data: recs})
}

// Create handles POST /api/records.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	op := h.begin(r, "create")
	defer op.end()

	weight, height, err := decodeCreate(w, r)
	if err != nil {
		op.fail(w, err)
		return
	}

	op.span.SetAttributes(
		attribute.Float64("records.weight", weight),
		attribute.Float64("records.height", height),
	)

	rec, err := h.svc.Create(op.ctx, weight, height)
	if err != nil {
		op.fail(w, err)
		return
	}

	bmiHistogram.Record(op.ctx, rec.BMI.Float64())
	op.span.SetAttributes(
		attribute.Int64("records.id", rec.RecordID),
		attribute.String("records.bmi", rec.BMI.String()),
	)
	op.succeed()
	op.logger.Info("record created",
		zap.Int64("record_id", rec.RecordID),
		zap.Float64("weight", rec.Weight),
		zap.Float64("height", rec.Height),
		zap.Stringer("bmi", rec.BMI),
		zap.String("record_date", rec.RecordDate),
		zap.String("request_id", op.requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, CreateResponse{Message: messageCreated, Data: rec})
}

// Delete handles DELETE /api/records/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	op := h.begin(r, "delete")
	defer op.end()

	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		op.fail(w, apperr.Invalid("id", "must be an integer, got %q", raw))
		return
	}
	op.span.SetAttributes(attribute.Int64("records.id", id))

	changes, err := h.svc.Delete(op.ctx, id)
	if err != nil {
		op.fail(w, err)
		return
	}

	op.span.SetAttributes(attribute.Int64("records.changes", changes))
	op.succeed()
	op.logger.Info("record deleted",
		zap.Int64("record_id", id),
		zap.Int64("changes", changes),
		zap.String("request_id", op.requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, DeleteResponse{Message: messageDeleted, Changes: changes})
}

// decodeCreate reads a CreateRequest. Unknown fields, trailing data, wrong
// types and missing fields are all validation errors.
func decodeCreate(w http.ResponseWriter, r *http.Request) (weight, height float64, err error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var req CreateRequest
	if err := dec.Decode(&req); err != nil {
		return 0, 0, bodyError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return 0, 0, apperr.Invalid("body", "must contain a single JSON object")
	}

	if req.Weight == nil {
		return 0, 0, apperr.Invalid("weight", "is required")
	}
	if req.Height == nil {
		return 0, 0, apperr.Invalid("height", "is required")
	}
	return *req.Weight, *req.Height, nil
}

func bodyError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		return apperr.Invalid(typeErr.Field, "must be a number")
	case errors.As(err, &maxErr):
		return apperr.Invalid("body", "exceeds %d bytes", maxErr.Limit)
	case errors.Is(err, io.EOF):
		return apperr.Invalid("body", "is empty")
	default:
		return apperr.Invalid("body", "invalid JSON: %v", err)
	}
}

// operation carries the per-request telemetry of one handler call.
type operation struct {
	name      string
	ctx       context.Context
	span      trace.Span
	logger    *zap.Logger
	requestID string
	start     time.Time
	outcome   string
}

func (h *Handler) begin(r *http.Request, name string) *operation {
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("records.%s", name),
		trace.WithAttributes(
			attribute.String("records.operation", name),
			attribute.String("request.id", requestID),
		),
	)

	return &operation{
		name:      name,
		ctx:       ctx,
		span:      span,
		logger:    observability.LoggerWithTrace(ctx),
		requestID: requestID,
		start:     time.Now(),
		outcome:   "error",
	}
}

func (o *operation) succeed() {
	o.outcome = "ok"
	opsCounter.Add(o.ctx, 1, metric.WithAttributes(attribute.String("operation", o.name)))
	o.span.SetStatus(codes.Ok, "")
}

// fail answers 400 for every failure, validation or storage alike.
func (o *operation) fail(w http.ResponseWriter, err error) {
	observability.RecordError(o.ctx, o.span, o.logger, errorCounter, o.name, err.Error(), err, http.StatusBadRequest, w)
}

func (o *operation) end() {
	elapsed := float64(time.Since(o.start).Microseconds()) / 1000.0
	opsHistogram.Record(o.ctx, elapsed, metric.WithAttributes(
		attribute.String("operation", o.name),
		attribute.String("outcome", o.outcome),
	))
	o.span.End()
}
