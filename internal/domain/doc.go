// Package domain models requests to overlay daily statistics on a live
// hydrograph window, and the coerced series produced for them.
//
// # Data Source
//
// Requests originate from the upstream fetch service, which pulls the daily
// statistics endpoint of the water data service for a monitoring location and
// parameter, reduces them to one median per calendar day, and publishes a JSON
// request to the source topic together with the end time of the live series
// being charted.
//
// # Conventions
//
// Monitoring location IDs:
//
//	Agency-prefixed site numbers, e.g. "USGS-05413500". Bare site numbers
//	("05413500") are assumed to belong to USGS and are prefixed.
//
// Parameter codes:
//
//	Five-digit codes, e.g. "00060" = discharge (cubic feet per second),
//	"00065" = gage height. Shorter numeric codes lost their leading zeros in
//	transit and are zero-padded: "60" -> "00060".
//
// Periods:
//
//	"P7D", "P30D" and "P1Y" are what the hydrograph offers; any "P<N>D" up to
//	P366D is accepted. See package statistics for the window rules.
//
// Time zones:
//
//	IANA names of the monitoring location's zone. An empty zone means the
//	service's configured default zone, and the output is emitted as zoned
//	date-times instead of epoch milliseconds.
//
// # ID Generation
//
// Coerced series IDs are UUIDv5 (SHA-1) over location|parameter|period|zone|
// endTime. Re-sending the same request produces the same ID, so downstream
// upserts stay idempotent. See [generateID].
package domain
