package statistics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// naiveLayouts are calendar date-times without an offset, read in the
// governing zone. Fractional seconds are accepted after the seconds field.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseEndTime reads s as an absolute instant (RFC 3339 or epoch milliseconds)
// or as a zone-naive date-time in loc. The result is expressed in loc.
func parseEndTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidEndTime)
	}

	if isEpochMillis(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidEndTime, s, err)
		}
		return time.UnixMilli(ms).In(loc), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidEndTime, s)
}

func isEpochMillis(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
