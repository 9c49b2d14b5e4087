package statistics

import "errors"

var (
	// ErrInvalidPeriod reports a period that is neither P<N>D nor P1Y.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidEndTime reports a series end time that cannot be read as an instant.
	ErrInvalidEndTime = errors.New("invalid end time")

	// ErrInvalidTimeZone reports a time zone name the location database does not know.
	ErrInvalidTimeZone = errors.New("invalid time zone")
)
