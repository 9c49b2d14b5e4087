// Package statistics coerces year-agnostic day-of-year statistics onto concrete
// timestamps for a trailing display window.
//
// # Inputs
//
// A statistical series is a set of day-of-year points, each keyed by calendar
// month and day with no year attached (for example the median discharge for
// every March 3 on record), plus the end instant of the window the caller wants
// to display:
//
//	{"month": 3, "day": 3, "value": 412.0, "label": "Median"}
//
// The end instant may be absolute ("2018-03-06T19:26:00-06:00"), zone-naive
// ("2018-03-06T19:26", read in the governing zone), or epoch milliseconds.
//
// # Periods
//
// Only two duration forms are recognised:
//
//	P<N>D  N calendar days, N >= 1
//	P1Y    one calendar year
//
// Subtraction is calendar-aware: whole days move the date and keep the wall
// clock; one year keeps month and day, except that February 29 lands on
// February 28 when the previous year is not a leap year.
//
// # Boundaries
//
// The window is resolved into boundary instants: one local midnight per
// calendar day, plus the exact start and end instants when they carry a
// time-of-day. Each (month, day) is used for at most one midnight boundary, so
// a one-year window ending on March 3 covers 365 or 366 days rather than
// repeating March 3 at both ends. A midnight that falls inside a DST gap
// resolves to the first instant of that day.
//
// # Output representation
//
// When the caller names a time zone the output DateTime is an absolute instant
// (epoch milliseconds in JSON). Without one, DateTime is a zoned value in the
// injected default zone so consumers can read local calendar fields directly.
//
// Every function in this package is pure and safe for concurrent use.
package statistics
