package domain

import (
	"context"
	"time"

	"github.com/couchcryptid/climatology-overlay/internal/statistics"
)

// RawMessage represents an unprocessed message from the source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// CoerceRequest asks for a statistical series to be placed on a display window.
type CoerceRequest struct {
	RequestID            string                       `json:"request_id,omitempty"`
	MonitoringLocationID string                       `json:"monitoring_location_id,omitempty"`
	ParameterCode        string                       `json:"parameter_code,omitempty"`
	Period               string                       `json:"period"`
	TimeZone             string                       `json:"time_zone,omitempty"`
	Series               statistics.StatisticalSeries `json:"series"`
}

// Summary describes the non-null values of a coerced series.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// CoercedSeries is the statistical series placed on concrete instants.
type CoercedSeries struct {
	ID                   string                    `json:"id"`
	RequestID            string                    `json:"request_id,omitempty"`
	MonitoringLocationID string                    `json:"monitoring_location_id,omitempty"`
	ParameterCode        string                    `json:"parameter_code,omitempty"`
	Period               string                    `json:"period"`
	TimeZone             string                    `json:"time_zone,omitempty"`
	EndTime              string                    `json:"end_time"`
	Points               []statistics.CoercedPoint `json:"points"`
	Summary              *Summary                  `json:"summary,omitempty"`
	ProcessedAt          time.Time                 `json:"processed_at"`
}

// OutputMessage is the serialized form destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
