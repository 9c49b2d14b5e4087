package statistics

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Unit is the calendar unit of a Period.
type Unit int

const (
	Days Unit = iota + 1
	Year
)

func (u Unit) String() string {
	switch u {
	case Days:
		return "days"
	case Year:
		return "year"
	default:
		return "unknown"
	}
}

// MaxDays is the longest day-count period accepted; it keeps the window no
// longer than the one-year form.
const MaxDays = 366

// periodRe matches the two supported ISO-8601 forms, e.g. "P7D" or "P1Y".
var periodRe = regexp.MustCompile(`^P(?:([0-9]{1,4})D|(1)Y)$`)

// Period is a parsed trailing-window length.
type Period struct {
	Unit   Unit
	Amount int
}

// ParsePeriod parses "P<N>D" (1 <= N <= MaxDays) or "P1Y".
func ParsePeriod(s string) (Period, error) {
	m := periodRe.FindStringSubmatch(s)
	if m == nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	if m[2] != "" {
		return Period{Unit: Year, Amount: 1}, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > MaxDays {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Unit: Days, Amount: n}, nil
}

// String formats the period back to its ISO-8601 form.
func (p Period) String() string {
	if p.Unit == Year {
		return fmt.Sprintf("P%dY", p.Amount)
	}
	return fmt.Sprintf("P%dD", p.Amount)
}

// SubtractFrom returns t moved back by the period in t's location, keeping the
// wall clock. February 29 minus one year becomes February 28 of a non-leap year.
func (p Period) SubtractFrom(t time.Time) time.Time {
	if p.Unit == Days {
		return t.AddDate(0, 0, -p.Amount)
	}
	y, m, d := t.Date()
	y -= p.Amount
	if m == time.February && d == 29 && !isLeap(y) {
		d = 28
	}
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
