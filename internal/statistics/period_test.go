package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Period
	}{
		{"one day", "P1D", Period{Unit: Days, Amount: 1}},
		{"week", "P7D", Period{Unit: Days, Amount: 7}},
		{"thirty days", "P30D", Period{Unit: Days, Amount: 30}},
		{"max days", "P366D", Period{Unit: Days, Amount: 366}},
		{"leading zero", "P07D", Period{Unit: Days, Amount: 7}},
		{"year", "P1Y", Period{Unit: Year, Amount: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, in := range []string{"", "P", "P0D", "P-1D", "P367D", "P2Y", "P1M", "PT1H", "P1W", "7D", "p7d", "P7D ", "P1Y2D", "P99999D"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePeriod(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "P7D", Period{Unit: Days, Amount: 7}.String())
	assert.Equal(t, "P1Y", Period{Unit: Year, Amount: 1}.String())
	assert.Equal(t, "days", Days.String())
	assert.Equal(t, "year", Year.String())
}

func TestPeriod_SubtractFrom(t *testing.T) {
	loc := mustLoad(t, chicago)
	week := Period{Unit: Days, Amount: 7}
	year := Period{Unit: Year, Amount: 1}

	tests := []struct {
		name string
		p    Period
		in   time.Time
		want time.Time
	}{
		{"days across month end", week, time.Date(2015, 3, 3, 0, 0, 0, 0, loc), time.Date(2015, 2, 24, 0, 0, 0, 0, loc)},
		{"days across leap day", week, time.Date(2016, 3, 3, 0, 0, 0, 0, loc), time.Date(2016, 2, 25, 0, 0, 0, 0, loc)},
		{"days keep wall clock", week, time.Date(2018, 3, 6, 19, 26, 0, 0, loc), time.Date(2018, 2, 27, 19, 26, 0, 0, loc)},
		{"days keep wall clock across DST", week, time.Date(2018, 3, 14, 9, 0, 0, 0, loc), time.Date(2018, 3, 7, 9, 0, 0, 0, loc)},
		{"year keeps month and day", year, time.Date(2015, 3, 3, 0, 0, 0, 0, loc), time.Date(2014, 3, 3, 0, 0, 0, 0, loc)},
		{"leap day rounds down", year, time.Date(2016, 2, 29, 8, 15, 0, 0, loc), time.Date(2015, 2, 28, 8, 15, 0, 0, loc)},
		{"march first stays", year, time.Date(2016, 3, 1, 0, 0, 0, 0, loc), time.Date(2015, 3, 1, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.SubtractFrom(tt.in)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestIsLeap(t *testing.T) {
	assert.True(t, isLeap(2016))
	assert.True(t, isLeap(2000))
	assert.False(t, isLeap(2015))
	assert.False(t, isLeap(1900))
}
