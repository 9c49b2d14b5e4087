package statistics

import (
	"cmp"
	"slices"
	"time"
)

// monthDay is the year-agnostic key shared by the window and the lookup table.
type monthDay struct {
	month time.Month
	day   int
}

func monthDayOf(t time.Time) monthDay {
	_, m, d := t.Date()
	return monthDay{month: m, day: d}
}

// maxZoneSteps bounds the zone-period walk in DayStart. No tz database zone
// has more than two transitions touching one calendar date.
const maxZoneSteps = 4

// ResolveWindow returns the ascending boundary instants for the window of
// length p ending at end, computed in loc.
//
// Interior boundaries are the first instants of local calendar dates, no
// earlier than the window start, with each (month, day) used once; when the
// window wraps a full year the latest occurrence is kept. Dates the zone
// skipped entirely contribute nothing. A start or end instant carrying a
// time-of-day is emitted as its own boundary at the corresponding edge and is
// not deduplicated against the midnights.
func ResolveWindow(end time.Time, p Period, loc *time.Location) []time.Time {
	end = end.In(loc)
	start := p.SubtractFrom(end)

	startDate, endDate := civilDate(start), civilDate(end)
	startMidday := !isDayStart(start, loc)
	endMidday := !isDayStart(end, loc)

	// Walk calendar dates backwards so the latest occurrence of a (month, day) wins.
	seen := make(map[monthDay]struct{}, p.maxBoundaries())
	midnights := make([]time.Time, 0, p.maxBoundaries())
	for date := endDate; !date.Before(startDate); date = date.AddDate(0, 0, -1) {
		key := monthDayOf(date)
		if _, dup := seen[key]; dup {
			continue
		}
		y, m, d := date.Date()
		midnight, ok := DayStart(y, m, d, loc)
		if !ok || midnight.Before(start) {
			continue
		}
		seen[key] = struct{}{}
		midnights = append(midnights, midnight)
	}
	slices.Reverse(midnights)

	bounds := make([]time.Time, 0, len(midnights)+2)
	if startMidday {
		bounds = append(bounds, start)
	}
	bounds = append(bounds, midnights...)
	if endMidday {
		bounds = append(bounds, end)
	}
	return bounds
}

// DayStart returns the first instant of the calendar date y-m-d in loc. It
// reports false when loc skipped that date entirely, as Pacific/Apia did with
// 2011-12-30. A midnight lost to a DST gap resolves to the end of the gap.
func DayStart(y int, m time.Month, d int, loc *time.Location) (time.Time, bool) {
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = date.Date()
	atOffset := func(offset int) time.Time {
		return date.Add(-time.Duration(offset) * time.Second).In(loc)
	}

	u := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for range maxZoneSteps {
		switch compareDate(u, date) {
		case -1:
			// u precedes the date; the date can only begin where u's zone period ends.
			_, periodEnd := u.ZoneBounds()
			if periodEnd.IsZero() {
				return time.Time{}, false
			}
			periodEnd = periodEnd.In(loc)
			if compareDate(periodEnd, date) == 0 {
				return periodEnd, true
			}
			return time.Time{}, false

		case 1:
			// u is past the date; look for it in the preceding zone period.
			periodStart, _ := u.ZoneBounds()
			if periodStart.IsZero() {
				return time.Time{}, false
			}
			before := periodStart.Add(-time.Nanosecond).In(loc)
			if compareDate(before, date) < 0 {
				if compareDate(periodStart.In(loc), date) == 0 {
					return periodStart.In(loc), true
				}
				return time.Time{}, false
			}
			_, offset := before.Zone()
			u = atOffset(offset)

		default:
			periodStart, _ := u.ZoneBounds()
			_, offset := u.Zone()
			local := atOffset(offset)
			if periodStart.IsZero() {
				return local, true
			}
			before := periodStart.Add(-time.Nanosecond).In(loc)
			if compareDate(before, date) < 0 {
				// The date begins inside u's zone period, or at its start
				// when a gap swallowed the local midnight.
				if local.Before(periodStart) {
					return periodStart.In(loc), true
				}
				return local, true
			}
			// A repeated hour: the earlier offset reaches the date first.
			_, offset = before.Zone()
			u = atOffset(offset)
		}
	}
	return time.Time{}, false
}

// civilDate returns t's local calendar date as midnight UTC, so stepping by
// AddDate never meets a zone transition.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isDayStart(t time.Time, loc *time.Location) bool {
	y, m, d := t.Date()
	first, ok := DayStart(y, m, d, loc)
	return ok && first.Equal(t)
}

// compareDate orders t's local calendar date against date's UTC calendar date.
func compareDate(t, date time.Time) int {
	ty, tm, td := t.Date()
	y, m, d := date.Date()
	if c := cmp.Compare(ty, y); c != 0 {
		return c
	}
	if c := cmp.Compare(tm, m); c != 0 {
		return c
	}
	return cmp.Compare(td, d)
}

func (p Period) maxBoundaries() int {
	if p.Unit == Year {
		return 367 * p.Amount
	}
	return p.Amount + 1
}
