// Command genmock generates request and coerced-series fixtures for the
// pipeline and integration tests. Coerced output is produced by the real
// domain package so fixtures match pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -requests-out data/mock/coerce_requests.json \
//	  -coerced-out data/mock/coerced_series.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climatology-overlay/internal/domain"
	"github.com/couchcryptid/climatology-overlay/internal/statistics"
)

// fixtureClock pins processed_at so regenerated fixtures are byte-stable.
var fixtureClock = time.Date(2018, time.March, 7, 6, 0, 0, 0, time.UTC)

// scenario is one request written to the fixture.
type scenario struct {
	requestID string
	period    string
	timeZone  string
	endTime   string
	leapDay   bool
}

var scenarios = []scenario{
	{requestID: "week-2015", period: "P7D", timeZone: "America/Chicago", endTime: "2015-03-03", leapDay: true},
	{requestID: "week-2016", period: "P7D", timeZone: "America/Chicago", endTime: "2016-03-03", leapDay: true},
	{requestID: "week-midday", period: "P7D", timeZone: "America/Chicago", endTime: "2018-03-06T19:26:00-06:00", leapDay: true},
	{requestID: "month-utc", period: "P30D", timeZone: "UTC", endTime: "2018-03-31", leapDay: true},
	{requestID: "year-leap", period: "P1Y", timeZone: "America/New_York", endTime: "2016-12-31", leapDay: true},
	{requestID: "year-no-leap-point", period: "P1Y", timeZone: "America/New_York", endTime: "2016-12-31", leapDay: false},
	{requestID: "year-default-zone", period: "P1Y", endTime: "2019-06-15T08:30"},
	{requestID: "epoch-end", period: "P1D", timeZone: "Europe/Berlin", endTime: "1520385960000", leapDay: true},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	requestsOut := flag.String("requests-out", "", "output path for the coerce request fixture")
	coercedOut := flag.String("coerced-out", "", "output path for the coerced series fixture")
	location := flag.String("location", "05428500", "monitoring location ID stamped on every request")
	parameter := flag.String("parameter", "00060", "parameter code stamped on every request")
	flag.Parse()

	if *requestsOut == "" || *coercedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -requests-out, -coerced-out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureClock))
	defer domain.SetClock(nil)

	coercer := statistics.NewCoercer(time.UTC)
	requests := make([]domain.CoerceRequest, 0, len(scenarios))
	coerced := make([]domain.CoercedSeries, 0, len(scenarios))

	for _, sc := range scenarios {
		req := domain.NormalizeRequest(domain.CoerceRequest{
			RequestID:            sc.requestID,
			MonitoringLocationID: *location,
			ParameterCode:        *parameter,
			Period:               sc.period,
			TimeZone:             sc.timeZone,
			Series: statistics.StatisticalSeries{
				Points:  dailyMedians(sc.leapDay),
				EndTime: sc.endTime,
			},
		})
		out, err := domain.CoerceSeries(req, coercer)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", sc.requestID, err)
		}
		requests = append(requests, req)
		coerced = append(coerced, out)
		log.Printf("%-20s %-5s %-18s %3d points", sc.requestID, sc.period, zoneLabel(sc.timeZone), len(out.Points))
	}

	if err := writeJSON(*requestsOut, requests); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote request fixture: %s", *requestsOut)

	if err := writeJSON(*coercedOut, coerced); err != nil {
		return fmt.Errorf("writing coerced fixture: %w", err)
	}
	log.Printf("wrote coerced fixture: %s", *coercedOut)
	return nil
}

// dailyMedians builds a smooth seasonal curve peaking in mid-April, the
// shape of a snowmelt-driven discharge record.
func dailyMedians(leapDay bool) []statistics.DayOfYearPoint {
	points := make([]statistics.DayOfYearPoint, 0, 366)
	for d := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2016; d = d.AddDate(0, 0, 1) {
		if !leapDay && d.Month() == time.February && d.Day() == 29 {
			continue
		}
		doy := float64(d.YearDay())
		v := math.Round((420+380*math.Cos(2*math.Pi*(doy-106)/366))*10) / 10
		points = append(points, statistics.DayOfYearPoint{
			Month: int(d.Month()),
			Day:   d.Day(),
			Value: &v,
			Extra: map[string]any{
				"label":           "Median",
				"percentile":      50,
				"years_of_record": 78,
			},
		})
	}
	return points
}

func zoneLabel(name string) string {
	if name == "" {
		return "(default)"
	}
	return name
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
