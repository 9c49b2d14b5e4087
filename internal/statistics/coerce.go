package statistics

import (
	"fmt"
	"time"
)

// LocationLoader resolves IANA zone names. time.LoadLocation satisfies it
// through LoadLocationFunc; internal/zone provides a cached implementation.
type LocationLoader interface {
	Load(name string) (*time.Location, error)
}

// LoadLocationFunc adapts a function to LocationLoader.
type LoadLocationFunc func(name string) (*time.Location, error)

func (f LoadLocationFunc) Load(name string) (*time.Location, error) { return f(name) }

// Coercer maps statistical series onto concrete windows. It holds only
// immutable configuration and is safe for concurrent use.
type Coercer struct {
	defaultZone *time.Location
	locations   LocationLoader
}

// Option configures a Coercer.
type Option func(*Coercer)

// WithLocationLoader replaces time.LoadLocation as the zone resolver.
func WithLocationLoader(l LocationLoader) Option {
	return func(c *Coercer) {
		if l != nil {
			c.locations = l
		}
	}
}

// NewCoercer creates a Coercer that governs calls without a time zone by
// defaultZone. A nil defaultZone means UTC.
func NewCoercer(defaultZone *time.Location, opts ...Option) *Coercer {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	c := &Coercer{
		defaultZone: defaultZone,
		locations:   LoadLocationFunc(time.LoadLocation),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultZone returns the zone used when a call names none.
func (c *Coercer) DefaultZone() *time.Location { return c.defaultZone }

// Coerce places series on boundary instants for the trailing period ending at
// series.EndTime. An empty timeZone selects the default zone and zoned output;
// a named zone selects absolute output.
func (c *Coercer) Coerce(series StatisticalSeries, period, timeZone string) ([]CoercedPoint, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	loc, absolute, err := c.governingZone(timeZone)
	if err != nil {
		return nil, err
	}

	end, err := parseEndTime(series.EndTime, loc)
	if err != nil {
		return nil, err
	}

	bounds := ResolveWindow(end, p, loc)
	table := NewLookupTable(series.Points)
	return CoercePoints(bounds, table, loc, absolute), nil
}

func (c *Coercer) governingZone(name string) (*time.Location, bool, error) {
	if name == "" {
		return c.defaultZone, false, nil
	}
	loc, err := c.locations.Load(name)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %q: %w", ErrInvalidTimeZone, name, err)
	}
	return loc, true, nil
}

// CoercePoints resolves each boundary's calendar date in loc and attaches the
// matching statistic. Boundaries without a statistic are dropped.
func CoercePoints(bounds []time.Time, table LookupTable, loc *time.Location, absolute bool) []CoercedPoint {
	out := make([]CoercedPoint, 0, len(bounds))
	for _, b := range bounds {
		local := b.In(loc)
		src, ok := table.Lookup(local.Month(), local.Day())
		if !ok {
			continue
		}

		dt := ZonedDateTime(local, loc)
		if absolute {
			dt = AbsoluteDateTime(b)
		}
		out = append(out, CoercedPoint{
			DateTime: dt,
			Value:    copyValue(src.Value),
			Extra:    passThrough(src.Extra),
		})
	}
	return out
}

// CoerceStatisticalSeries is the one-shot form of Coercer.Coerce.
func CoerceStatisticalSeries(series StatisticalSeries, period, timeZone string, defaultZone *time.Location) ([]CoercedPoint, error) {
	return NewCoercer(defaultZone).Coerce(series, period, timeZone)
}

// passThrough copies extra fields, dropping keys the coerced point owns.
func passThrough(extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		switch k {
		case keyMonth, keyDay, keyDateTime, keyValue:
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
