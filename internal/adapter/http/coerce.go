package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"

	"github.com/couchcryptid/climatology-overlay/internal/domain"
	"github.com/couchcryptid/climatology-overlay/internal/observability"
	"github.com/couchcryptid/climatology-overlay/internal/statistics"
)

// RequestIDHeader carries the caller's correlation ID, or one assigned by the server.
const RequestIDHeader = "X-Request-ID"

// Outcome labels for the HTTP request counter.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeTooLarge = "too_large"
)

// CoerceHandler serves POST /api/v1/coerce: a CoerceRequest body in, a
// CoercedSeries out.
type CoerceHandler struct {
	coercer  *statistics.Coercer
	metrics  *observability.Metrics
	maxBytes int64
	logger   *slog.Logger
}

// NewCoerceHandler creates a handler rejecting bodies over maxBytes. metrics may be nil.
func NewCoerceHandler(coercer *statistics.Coercer, metrics *observability.Metrics, maxBytes int64, logger *slog.Logger) *CoerceHandler {
	return &CoerceHandler{
		coercer:  coercer,
		metrics:  metrics,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func (h *CoerceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	var req domain.CoerceRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.observe(outcomeTooLarge)
			sharedobs.WriteJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		h.observe(outcomeInvalid)
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{
			Error:  fmt.Sprintf("%v: %v", domain.ErrDecodeRequest, err),
			Reason: domain.ReasonDecode,
		})
		return
	}
	if req.RequestID == "" {
		req.RequestID = requestID
	}

	series, err := domain.CoerceSeries(domain.NormalizeRequest(req), h.coercer)
	if err != nil {
		reason := domain.FailureReason(err)
		h.logger.Info("coerce request rejected", "request_id", requestID, "reason", reason, "error", err)
		h.observe(outcomeInvalid)
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Reason: reason})
		return
	}

	h.observe(outcomeOK)
	if h.metrics != nil {
		h.metrics.PointsEmitted.Observe(float64(len(series.Points)))
	}
	sharedobs.WriteJSON(w, http.StatusOK, series)
}

func (h *CoerceHandler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.HTTPRequests.WithLabelValues(outcome).Inc()
	}
}
