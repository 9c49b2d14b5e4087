package domain

import (
	"github.com/montanaflynn/stats"

	"github.com/couchcryptid/climatology-overlay/internal/statistics"
)

// summarize computes descriptive statistics over the non-null point values.
// Returns nil when no point carries a value.
func summarize(points []statistics.CoercedPoint) *Summary {
	data := make(stats.Float64Data, 0, len(points))
	for _, p := range points {
		if p.Value != nil {
			data = append(data, *p.Value)
		}
	}
	if len(data) == 0 {
		return nil
	}

	// The inputs are non-empty, the only error condition these functions report.
	minV, _ := data.Min()
	maxV, _ := data.Max()
	mean, _ := data.Mean()
	median, _ := data.Median()

	return &Summary{
		Count:  len(data),
		Min:    minV,
		Max:    maxV,
		Mean:   mean,
		Median: median,
	}
}
