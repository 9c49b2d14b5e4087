package statistics

import "time"

// LookupTable indexes day-of-year points by calendar month and day.
type LookupTable struct {
	points map[monthDay]DayOfYearPoint
}

// NewLookupTable builds a table from points. When two points share a
// (month, day) the later one in the slice wins.
func NewLookupTable(points []DayOfYearPoint) LookupTable {
	table := make(map[monthDay]DayOfYearPoint, len(points))
	for _, p := range points {
		table[monthDay{month: time.Month(p.Month), day: p.Day}] = p
	}
	return LookupTable{points: table}
}

// Lookup returns the point for the given month and day.
func (t LookupTable) Lookup(month time.Month, day int) (DayOfYearPoint, bool) {
	p, ok := t.points[monthDay{month: month, day: day}]
	return p, ok
}

// Len returns the number of distinct (month, day) keys.
func (t LookupTable) Len() int { return len(t.points) }
