package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const chicago = "America/Chicago"

// yearOfMedians returns one point per calendar day of a leap year, with
// value = month + 2*day so tests can tell days apart.
func yearOfMedians() []DayOfYearPoint {
	points := make([]DayOfYearPoint, 0, 366)
	for d := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2016; d = d.AddDate(0, 0, 1) {
		v := float64(int(d.Month()) + d.Day()*2)
		points = append(points, DayOfYearPoint{
			Month: int(d.Month()),
			Day:   d.Day(),
			Value: &v,
			Extra: map[string]any{"label": "Median"},
		})
	}
	return points
}

func withoutLeapDay(points []DayOfYearPoint) []DayOfYearPoint {
	out := make([]DayOfYearPoint, 0, len(points))
	for _, p := range points {
		if p.Month == 2 && p.Day == 29 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func ptr(v float64) *float64 { return &v }
