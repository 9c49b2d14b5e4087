package statistics

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"time"
)

// Keys owned by the point itself; anything else is passed through via Extra.
const (
	keyMonth    = "month"
	keyDay      = "day"
	keyValue    = "value"
	keyDateTime = "dateTime"
)

// DayOfYearPoint is one climatological sample keyed by calendar month and day.
type DayOfYearPoint struct {
	Month int
	Day   int
	Value *float64 // nil when the statistic is absent

	// Extra holds pass-through fields such as descriptive labels.
	Extra map[string]any
}

// StatisticalSeries is the caller-owned input to a coercion.
type StatisticalSeries struct {
	Points  []DayOfYearPoint `json:"points"`
	EndTime string           `json:"endTime"`
}

// FormatEndTime renders an absolute instant in a form accepted as
// StatisticalSeries.EndTime.
func FormatEndTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// CoercedPoint is a statistic placed on a concrete instant.
type CoercedPoint struct {
	DateTime DateTime
	Value    *float64
	Extra    map[string]any
}

// DateTime is a boundary instant in one of two representations: absolute,
// serialised as epoch milliseconds, or zoned, serialised as RFC 3339 with the
// offset of its zone.
type DateTime struct {
	t     time.Time
	zoned bool
}

// AbsoluteDateTime wraps t as a zone-independent instant.
func AbsoluteDateTime(t time.Time) DateTime {
	return DateTime{t: t.UTC()}
}

// ZonedDateTime wraps t as a calendar value in loc.
func ZonedDateTime(t time.Time, loc *time.Location) DateTime {
	return DateTime{t: t.In(loc), zoned: true}
}

// Time returns the instant; zoned values keep their location.
func (d DateTime) Time() time.Time { return d.t }

// UnixMilli returns the instant as epoch milliseconds.
func (d DateTime) UnixMilli() int64 { return d.t.UnixMilli() }

// Zoned reports whether d carries calendar fields of a specific zone.
func (d DateTime) Zoned() bool { return d.zoned }

// Equal reports whether two values denote the same instant and representation.
func (d DateTime) Equal(o DateTime) bool {
	return d.zoned == o.zoned && d.t.Equal(o.t)
}

func (d DateTime) String() string {
	if d.zoned {
		return d.t.Format(time.RFC3339Nano)
	}
	return strconv.FormatInt(d.UnixMilli(), 10)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.zoned {
		return json.Marshal(d.t.Format(time.RFC3339Nano))
	}
	return []byte(strconv.FormatInt(d.UnixMilli(), 10)), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("decode zoned date time: %w", err)
		}
		*d = DateTime{t: t, zoned: true}
		return nil
	}
	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("decode absolute date time: %w", err)
	}
	*d = AbsoluteDateTime(time.UnixMilli(ms))
	return nil
}

func (p DayOfYearPoint) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+3)
	maps.Copy(out, p.Extra)
	out[keyMonth] = p.Month
	out[keyDay] = p.Day
	out[keyValue] = p.Value
	return json.Marshal(out)
}

func (p *DayOfYearPoint) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("decode day-of-year point: %w", err)
	}

	var pt DayOfYearPoint
	for k, raw := range fields {
		var err error
		switch k {
		case keyMonth:
			err = json.Unmarshal(raw, &pt.Month)
		case keyDay:
			err = json.Unmarshal(raw, &pt.Day)
		case keyValue:
			err = json.Unmarshal(raw, &pt.Value)
		default:
			var v any
			if err = json.Unmarshal(raw, &v); err == nil {
				if pt.Extra == nil {
					pt.Extra = make(map[string]any)
				}
				pt.Extra[k] = v
			}
		}
		if err != nil {
			return fmt.Errorf("decode day-of-year point %q: %w", k, err)
		}
	}
	*p = pt
	return nil
}

func (p CoercedPoint) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+2)
	maps.Copy(out, p.Extra)
	out[keyDateTime] = p.DateTime
	out[keyValue] = p.Value
	return json.Marshal(out)
}

func (p *CoercedPoint) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("decode coerced point: %w", err)
	}

	var pt CoercedPoint
	for k, raw := range fields {
		var err error
		switch k {
		case keyDateTime:
			err = json.Unmarshal(raw, &pt.DateTime)
		case keyValue:
			err = json.Unmarshal(raw, &pt.Value)
		default:
			var v any
			if err = json.Unmarshal(raw, &v); err == nil {
				if pt.Extra == nil {
					pt.Extra = make(map[string]any)
				}
				pt.Extra[k] = v
			}
		}
		if err != nil {
			return fmt.Errorf("decode coerced point %q: %w", k, err)
		}
	}
	*p = pt
	return nil
}
