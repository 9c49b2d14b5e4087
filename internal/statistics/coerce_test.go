package statistics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localDates(t *testing.T, points []CoercedPoint, loc *time.Location) []time.Time {
	t.Helper()
	out := make([]time.Time, len(points))
	for i, p := range points {
		out[i] = p.DateTime.Time().In(loc)
	}
	return out
}

func hasDay(dates []time.Time, day int) bool {
	for _, d := range dates {
		if d.Day() == day {
			return true
		}
	}
	return false
}

func yearSet(dates []time.Time) map[int]bool {
	years := map[int]bool{}
	for _, d := range dates {
		years[d.Year()] = true
	}
	return years
}

func TestCoerce_SingleYearWithoutLeapDay(t *testing.T) {
	loc := mustLoad(t, chicago)
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2015-03-03"}

	result, err := CoerceStatisticalSeries(series, "P7D", chicago, nil)
	require.NoError(t, err)

	dates := localDates(t, result, loc)
	require.Len(t, result, 8)
	assert.Equal(t, map[int]bool{2015: true}, yearSet(dates))
	assert.False(t, hasDay(dates, 29))
}

func TestCoerce_SingleYearWithLeapDay(t *testing.T) {
	loc := mustLoad(t, chicago)
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2016-03-03"}

	result, err := CoerceStatisticalSeries(series, "P7D", chicago, nil)
	require.NoError(t, err)

	dates := localDates(t, result, loc)
	require.Len(t, result, 8)
	assert.Equal(t, map[int]bool{2016: true}, yearSet(dates))
	assert.True(t, hasDay(dates, 29))
}

func TestCoerce_LeapYearWithoutLeapDayPoint(t *testing.T) {
	series := StatisticalSeries{Points: withoutLeapDay(yearOfMedians()), EndTime: "2016-03-03"}

	result, err := CoerceStatisticalSeries(series, "P7D", chicago, nil)
	require.NoError(t, err)

	assert.Len(t, result, 7)
	assert.False(t, hasDay(localDates(t, result, mustLoad(t, chicago)), 29))
}

func TestCoerce_ThirtyDays(t *testing.T) {
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2015-03-03"}

	result, err := CoerceStatisticalSeries(series, "P30D", chicago, nil)
	require.NoError(t, err)
	assert.Len(t, result, 31)
}

func TestCoerce_NonLeapYearPeriod(t *testing.T) {
	loc := mustLoad(t, chicago)
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2015-03-03"}

	result, err := CoerceStatisticalSeries(series, "P1Y", chicago, nil)
	require.NoError(t, err)

	dates := localDates(t, result, loc)
	require.Len(t, result, 365)
	assert.Equal(t, map[int]bool{2014: true, 2015: true}, yearSet(dates))
	for _, d := range dates {
		assert.False(t, d.Month() == time.February && d.Day() == 29)
	}
}

func TestCoerce_LeapYearPeriodWithoutZone(t *testing.T) {
	loc := mustLoad(t, chicago)
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2016-03-03"}

	result, err := CoerceStatisticalSeries(series, "P1Y", "", loc)
	require.NoError(t, err)

	require.Len(t, result, 366)
	years := map[int]bool{}
	leapDay := false
	for _, p := range result {
		require.True(t, p.DateTime.Zoned())
		local := p.DateTime.Time()
		assert.Equal(t, loc, local.Location())
		years[local.Year()] = true
		if local.Month() == time.February && local.Day() == 29 {
			leapDay = true
		}
	}
	assert.Equal(t, map[int]bool{2015: true, 2016: true}, years)
	assert.True(t, leapDay)
}

func TestCoerce_LeapDayEndMinusYear(t *testing.T) {
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2016-02-29"}

	result, err := CoerceStatisticalSeries(series, "P1Y", "UTC", nil)
	require.NoError(t, err)

	require.Len(t, result, 366)
	assert.Equal(t, time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC), result[0].DateTime.Time())
	assert.Equal(t, time.Date(2016, 2, 29, 0, 0, 0, 0, time.UTC), result[365].DateTime.Time())
}

func TestCoerce_MiddayWithoutZone(t *testing.T) {
	loc := mustLoad(t, chicago)
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2018-03-06T19:26"}

	result, err := CoerceStatisticalSeries(series, "P7D", "", loc)
	require.NoError(t, err)

	require.Len(t, result, 9)
	at := func(i int) time.Time { return result[i].DateTime.Time() }
	assert.True(t, time.Date(2018, 2, 27, 19, 26, 0, 0, loc).Equal(at(0)))
	assert.True(t, time.Date(2018, 2, 28, 0, 0, 0, 0, loc).Equal(at(1)))
	assert.True(t, time.Date(2018, 3, 6, 0, 0, 0, 0, loc).Equal(at(len(result)-2)))
	assert.True(t, time.Date(2018, 3, 6, 19, 26, 0, 0, loc).Equal(at(len(result)-1)))

	for _, p := range result[1 : len(result)-1] {
		local := p.DateTime.Time()
		assert.Zero(t, local.Hour())
		assert.Zero(t, local.Minute())
	}

	// The edges carry the statistic of their own calendar day.
	assert.Equal(t, ptr(2+27*2), result[0].Value)
	assert.Equal(t, ptr(3+6*2), result[len(result)-1].Value)
}

func TestCoerce_ZoneSelectsAbsoluteRepresentation(t *testing.T) {
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2018-03-06T19:26"}

	result, err := CoerceStatisticalSeries(series, "P7D", chicago, time.UTC)
	require.NoError(t, err)
	require.NotEmpty(t, result)

	for _, p := range result {
		assert.False(t, p.DateTime.Zoned())
		assert.Equal(t, time.UTC, p.DateTime.Time().Location())
	}
	// The zone governs how the naive end time is read.
	loc := mustLoad(t, chicago)
	assert.Equal(t, time.Date(2018, 3, 6, 19, 26, 0, 0, loc).UnixMilli(), result[len(result)-1].DateTime.UnixMilli())
}

func TestCoerce_AbsoluteEndTime(t *testing.T) {
	loc := mustLoad(t, chicago)
	end := time.Date(2018, 3, 6, 19, 26, 0, 0, loc)

	forms := []string{
		FormatEndTime(end),
		FormatEndTime(end.UTC()),
		"1520385960000",
	}
	for _, form := range forms {
		t.Run(form, func(t *testing.T) {
			series := StatisticalSeries{Points: yearOfMedians(), EndTime: form}
			result, err := CoerceStatisticalSeries(series, "P7D", chicago, nil)
			require.NoError(t, err)
			require.Len(t, result, 9)
			assert.Equal(t, end.UnixMilli(), result[8].DateTime.UnixMilli())
		})
	}
}

func TestCoerce_PassThroughFields(t *testing.T) {
	points := []DayOfYearPoint{{
		Month: 3,
		Day:   3,
		Value: ptr(41.5),
		Extra: map[string]any{"label": "Median", "dateTime": nil, "percentile": 50.0},
	}}
	series := StatisticalSeries{Points: points, EndTime: "2015-03-03"}

	result, err := CoerceStatisticalSeries(series, "P7D", "UTC", nil)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, map[string]any{"label": "Median", "percentile": 50.0}, result[0].Extra)
	assert.Equal(t, ptr(41.5), result[0].Value)

	// Output is freshly allocated.
	*result[0].Value = 0
	result[0].Extra["label"] = "changed"
	assert.Equal(t, 41.5, *points[0].Value)
	assert.Equal(t, "Median", points[0].Extra["label"])
}

func TestCoerce_NullValuesKept(t *testing.T) {
	points := []DayOfYearPoint{{Month: 3, Day: 2}, {Month: 3, Day: 3, Value: ptr(1)}}
	series := StatisticalSeries{Points: points, EndTime: "2015-03-03"}

	result, err := CoerceStatisticalSeries(series, "P7D", "UTC", nil)
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Nil(t, result[0].Value)
	assert.Equal(t, ptr(1), result[1].Value)
}

func TestCoerce_EmptyPoints(t *testing.T) {
	result, err := CoerceStatisticalSeries(StatisticalSeries{EndTime: "2015-03-03"}, "P1Y", chicago, nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestCoerce_DuplicatePointsLastWins(t *testing.T) {
	points := []DayOfYearPoint{
		{Month: 3, Day: 3, Value: ptr(1)},
		{Month: 3, Day: 3, Value: ptr(2)},
	}
	result, err := CoerceStatisticalSeries(StatisticalSeries{Points: points, EndTime: "2015-03-03"}, "P7D", "UTC", nil)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, ptr(2), result[0].Value)
}

func TestCoerce_Errors(t *testing.T) {
	points := yearOfMedians()

	tests := []struct {
		name    string
		series  StatisticalSeries
		period  string
		zone    string
		wantErr error
	}{
		{"bad period", StatisticalSeries{Points: points, EndTime: "2015-03-03"}, "P1M", chicago, ErrInvalidPeriod},
		{"period checked first", StatisticalSeries{Points: points, EndTime: "garbage"}, "P2Y", "Nowhere/City", ErrInvalidPeriod},
		{"bad end time", StatisticalSeries{Points: points, EndTime: "March 3rd"}, "P7D", chicago, ErrInvalidEndTime},
		{"empty end time", StatisticalSeries{Points: points}, "P7D", "", ErrInvalidEndTime},
		{"impossible date", StatisticalSeries{Points: points, EndTime: "2015-02-29"}, "P7D", "", ErrInvalidEndTime},
		{"bad zone", StatisticalSeries{Points: points, EndTime: "2015-03-03"}, "P7D", "Nowhere/City", ErrInvalidTimeZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CoerceStatisticalSeries(tt.series, tt.period, tt.zone, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, result)
		})
	}
}

func TestCoerce_Deterministic(t *testing.T) {
	c := NewCoercer(mustLoad(t, chicago))
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2018-03-06T19:26"}

	for _, zone := range []string{"", chicago} {
		first, err := c.Coerce(series, "P1Y", zone)
		require.NoError(t, err)
		second, err := c.Coerce(series, "P1Y", zone)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestCoerce_AscendingWithoutDuplicates(t *testing.T) {
	c := NewCoercer(mustLoad(t, chicago))
	ends := []string{"2015-03-03", "2016-03-03", "2016-02-29T06:45", "2018-03-06T19:26", "2019-12-31T23:59:59"}
	for _, period := range []string{"P1D", "P7D", "P30D", "P365D", "P1Y"} {
		for _, end := range ends {
			for _, zone := range []string{"", "UTC", chicago, "Asia/Kolkata"} {
				result, err := c.Coerce(StatisticalSeries{Points: yearOfMedians(), EndTime: end}, period, zone)
				require.NoError(t, err)
				for i := 1; i < len(result); i++ {
					assert.Less(t, result[i-1].DateTime.UnixMilli(), result[i].DateTime.UnixMilli(),
						"%s ending %s in %q at %d", period, end, zone, i)
				}
			}
		}
	}
}

type countingLoader struct {
	calls int
}

func (l *countingLoader) Load(name string) (*time.Location, error) {
	l.calls++
	return time.LoadLocation(name)
}

func TestCoercer_WithLocationLoader(t *testing.T) {
	loader := &countingLoader{}
	c := NewCoercer(nil, WithLocationLoader(loader))
	series := StatisticalSeries{Points: yearOfMedians(), EndTime: "2015-03-03"}

	_, err := c.Coerce(series, "P7D", chicago)
	require.NoError(t, err)
	_, err = c.Coerce(series, "P7D", "")
	require.NoError(t, err)

	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, time.UTC, c.DefaultZone())
}
