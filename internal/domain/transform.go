package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/climatology-overlay/internal/statistics"
)

// ErrDecodeRequest reports a source message that is not a valid CoerceRequest.
var ErrDecodeRequest = errors.New("decode request")

// idNamespace scopes coerced series IDs (UUIDv5) to this service.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/couchcryptid/climatology-overlay"))

// Failure reasons used as metric labels.
const (
	ReasonDecode          = "decode"
	ReasonInvalidPeriod   = "invalid_period"
	ReasonInvalidEndTime  = "invalid_end_time"
	ReasonInvalidTimeZone = "invalid_time_zone"
	ReasonUnknown         = "unknown"
)

// ParseRawMessage deserializes a RawMessage's value into a normalized CoerceRequest.
// The message key stands in for a missing request_id.
func ParseRawMessage(raw RawMessage) (CoerceRequest, error) {
	var req CoerceRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return CoerceRequest{}, fmt.Errorf("%w: %w", ErrDecodeRequest, err)
	}
	if req.RequestID == "" {
		req.RequestID = string(raw.Key)
	}
	return NormalizeRequest(req), nil
}

// NormalizeRequest trims identifiers and applies the location and parameter
// code conventions described in the package documentation.
func NormalizeRequest(req CoerceRequest) CoerceRequest {
	req.RequestID = strings.TrimSpace(req.RequestID)
	req.Period = strings.ToUpper(strings.TrimSpace(req.Period))
	req.TimeZone = strings.TrimSpace(req.TimeZone)
	req.MonitoringLocationID = normalizeLocationID(req.MonitoringLocationID)
	req.ParameterCode = normalizeParameterCode(req.ParameterCode)
	return req
}

// CoerceSeries runs the request through the coercer and wraps the points with
// identity, summary and processing metadata.
func CoerceSeries(req CoerceRequest, coercer *statistics.Coercer) (CoercedSeries, error) {
	points, err := coercer.Coerce(req.Series, req.Period, req.TimeZone)
	if err != nil {
		return CoercedSeries{}, fmt.Errorf("coerce %s %s: %w", req.MonitoringLocationID, req.ParameterCode, err)
	}

	return CoercedSeries{
		ID:                   generateID(req),
		RequestID:            req.RequestID,
		MonitoringLocationID: req.MonitoringLocationID,
		ParameterCode:        req.ParameterCode,
		Period:               req.Period,
		TimeZone:             req.TimeZone,
		EndTime:              req.Series.EndTime,
		Points:               points,
		Summary:              summarize(points),
		ProcessedAt:          clock.Now().UTC(),
	}, nil
}

// SerializeCoercedSeries marshals a CoercedSeries for the sink topic.
func SerializeCoercedSeries(s CoercedSeries) (OutputMessage, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize coerced series: %w", err)
	}
	return OutputMessage{
		Key:   []byte(s.ID),
		Value: data,
		Headers: map[string]string{
			"period":       s.Period,
			"time_zone":    s.TimeZone,
			"processed_at": s.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// FailureReason classifies a transform error into a metric label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrDecodeRequest):
		return ReasonDecode
	case errors.Is(err, statistics.ErrInvalidPeriod):
		return ReasonInvalidPeriod
	case errors.Is(err, statistics.ErrInvalidEndTime):
		return ReasonInvalidEndTime
	case errors.Is(err, statistics.ErrInvalidTimeZone):
		return ReasonInvalidTimeZone
	default:
		return ReasonUnknown
	}
}

// generateID produces a deterministic UUIDv5 from the request's identity.
func generateID(req CoerceRequest) string {
	name := strings.Join([]string{
		req.MonitoringLocationID,
		req.ParameterCode,
		req.Period,
		req.TimeZone,
		strings.TrimSpace(req.Series.EndTime),
	}, "|")
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// normalizeLocationID prefixes bare site numbers with the USGS agency code.
func normalizeLocationID(id string) string {
	id = strings.TrimSpace(id)
	if id != "" && isDigits(id) {
		return "USGS-" + id
	}
	return id
}

// normalizeParameterCode zero-pads numeric codes to five digits, e.g. "60" -> "00060".
func normalizeParameterCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) >= 5 || !isDigits(code) {
		return code
	}
	return strings.Repeat("0", 5-len(code)) + code
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
