package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/climatology-overlay/internal/domain"
	"github.com/couchcryptid/climatology-overlay/internal/observability"
	"github.com/couchcryptid/climatology-overlay/internal/statistics"
)

// SeriesTransformer implements Transformer by decoding a CoerceRequest and
// running it through a statistics.Coercer.
type SeriesTransformer struct {
	coercer *statistics.Coercer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a SeriesTransformer. metrics may be nil.
func NewTransformer(coercer *statistics.Coercer, logger *slog.Logger, metrics *observability.Metrics) *SeriesTransformer {
	return &SeriesTransformer{
		coercer: coercer,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *SeriesTransformer) Transform(_ context.Context, raw domain.RawMessage) (domain.CoercedSeries, error) {
	req, err := domain.ParseRawMessage(raw)
	if err != nil {
		return domain.CoercedSeries{}, err
	}

	series, err := domain.CoerceSeries(req, t.coercer)
	if err != nil {
		return domain.CoercedSeries{}, err
	}

	if t.metrics != nil {
		t.metrics.PointsEmitted.Observe(float64(len(series.Points)))
	}
	t.logger.Debug("series coerced",
		"id", series.ID,
		"request_id", series.RequestID,
		"period", series.Period,
		"points", len(series.Points),
	)
	return series, nil
}
