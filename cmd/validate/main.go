// Command validate checks coerced output against the calendar invariants of
// the overlay: ordering, day-of-year fidelity, leap-day handling, midnight
// alignment and fixture parity.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -requests data/mock/coerce_requests.json \
//	  -coerced data/mock/coerced_series.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climatology-overlay/internal/domain"
	"github.com/couchcryptid/climatology-overlay/internal/statistics"
)

// fixtureClock matches genmock so series IDs and processed_at line up.
var fixtureClock = time.Date(2018, time.March, 7, 6, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// result pairs a request with its freshly coerced series.
type result struct {
	req    domain.CoerceRequest
	series domain.CoercedSeries
	loc    *time.Location
	err    error
}

func main() {
	requestsPath := flag.String("requests", "", "path to coerce request JSON fixture")
	coercedPath := flag.String("coerced", "", "optional path to coerced series JSON fixture")
	flag.Parse()

	if *requestsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*requestsPath, *coercedPath); code != 0 {
		os.Exit(code)
	}
}

func run(requestsPath, coercedPath string) int {
	domain.SetClock(clockwork.NewFakeClockAt(fixtureClock))
	defer domain.SetClock(nil)

	fmt.Println("=== Climatology Overlay Validation ===")
	fmt.Println()

	requests, err := loadJSON[domain.CoerceRequest](requestsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load requests: %v\n", err)
		return 1
	}

	var fixture []json.RawMessage
	if coercedPath != "" {
		fixture, err = loadJSON[json.RawMessage](coercedPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load coerced fixture: %v\n", err)
			return 1
		}
	}

	coercer := statistics.NewCoercer(time.UTC)
	results := make([]result, len(requests))
	for i, req := range requests {
		results[i] = coerceOne(coercer, req)
	}

	phases := []*phase{
		validateRequests(results),
		validateOrdering(results),
		validateCalendar(results),
		validateAlignment(results),
		validateDeterminism(coercer, results),
	}
	if fixture != nil {
		phases = append(phases, validateFixtureParity(results, fixture))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Requests: %d, points: %d\n", len(requests), countPoints(results))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func coerceOne(coercer *statistics.Coercer, req domain.CoerceRequest) result {
	req = domain.NormalizeRequest(req)
	r := result{req: req, loc: coercer.DefaultZone()}
	if req.TimeZone != "" {
		loc, err := time.LoadLocation(req.TimeZone)
		if err != nil {
			r.err = err
			return r
		}
		r.loc = loc
	}
	r.series, r.err = domain.CoerceSeries(req, coercer)
	return r
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func countPoints(results []result) int {
	n := 0
	for _, r := range results {
		n += len(r.series.Points)
	}
	return n
}

// ── Phase 1: every request coerces ──

func validateRequests(results []result) *phase {
	p := &phase{name: "Phase 1: Requests coerce"}
	for _, r := range results {
		if r.err != nil {
			p.errorf("%s: %v", r.req.RequestID, r.err)
			continue
		}
		if _, err := statistics.ParsePeriod(r.req.Period); err != nil {
			p.errorf("%s: period %q accepted by coercer but not by parser", r.req.RequestID, r.req.Period)
		}
		wantAbsolute := r.req.TimeZone != ""
		for i, pt := range r.series.Points {
			if pt.DateTime.Zoned() == wantAbsolute {
				p.errorf("%s: point %d representation zoned=%v with time_zone %q", r.req.RequestID, i, pt.DateTime.Zoned(), r.req.TimeZone)
				break
			}
		}
	}
	fmt.Printf("  %s: %d requests\n", p.name, len(results))
	return p
}

// ── Phase 2: strictly ascending, no duplicate instants ──

func validateOrdering(results []result) *phase {
	p := &phase{name: "Phase 2: Ordering"}
	for _, r := range results {
		pts := r.series.Points
		for i := 1; i < len(pts); i++ {
			prev, cur := pts[i-1].DateTime.Time(), pts[i].DateTime.Time()
			if !cur.After(prev) {
				p.errorf("%s: point %d (%s) not after point %d (%s)", r.req.RequestID, i, cur, i-1, prev)
			}
		}
	}
	return p
}

// ── Phase 3: values come from the matching day of year ──

func validateCalendar(results []result) *phase {
	p := &phase{name: "Phase 3: Calendar fidelity"}
	for _, r := range results {
		if r.err != nil {
			continue
		}
		table := statistics.NewLookupTable(r.req.Series.Points)
		for i, pt := range r.series.Points {
			local := pt.DateTime.Time().In(r.loc)
			src, ok := table.Lookup(local.Month(), local.Day())
			if !ok {
				p.errorf("%s: point %d on %s has no source day", r.req.RequestID, i, local.Format("01-02"))
				continue
			}
			if !floatPtrEq(src.Value, pt.Value) {
				p.errorf("%s: point %d on %s value mismatch", r.req.RequestID, i, local.Format("2006-01-02"))
			}
			if local.Month() == time.February && local.Day() == 29 && !isLeap(local.Year()) {
				p.errorf("%s: Feb 29 placed in non-leap year %d", r.req.RequestID, local.Year())
			}
		}
	}
	return p
}

// ── Phase 4: interior boundaries on local midnight ──

func validateAlignment(results []result) *phase {
	p := &phase{name: "Phase 4: Midnight alignment"}
	for _, r := range results {
		pts := r.series.Points
		for i := 1; i < len(pts)-1; i++ {
			local := pts[i].DateTime.Time().In(r.loc)
			y, m, d := local.Date()
			if first, ok := statistics.DayStart(y, m, d, r.loc); !ok || !local.Equal(first) {
				p.errorf("%s: interior point %d at %s is not local midnight", r.req.RequestID, i, local.Format(time.RFC3339))
			}
		}
	}
	return p
}

// ── Phase 5: repeated coercion is identical ──

func validateDeterminism(coercer *statistics.Coercer, results []result) *phase {
	p := &phase{name: "Phase 5: Determinism"}
	for _, r := range results {
		if r.err != nil {
			continue
		}
		again, err := domain.CoerceSeries(r.req, coercer)
		if err != nil {
			p.errorf("%s: second run failed: %v", r.req.RequestID, err)
			continue
		}
		a, b := genericJSON(r.series), genericJSON(again)
		if diff := cmp.Diff(a, b); diff != "" {
			p.errorf("%s: second run differs (-first +second):\n%s", r.req.RequestID, diff)
		}
	}
	return p
}

// ── Phase 6: output matches the committed fixture ──

func validateFixtureParity(results []result, fixture []json.RawMessage) *phase {
	p := &phase{name: "Phase 6: Fixture parity"}
	if len(fixture) != len(results) {
		p.errorf("fixture has %d series, requests produced %d", len(fixture), len(results))
		return p
	}
	for i, r := range results {
		var want any
		if err := json.Unmarshal(fixture[i], &want); err != nil {
			p.errorf("fixture %d: %v", i, err)
			continue
		}
		if diff := cmp.Diff(want, genericJSON(r.series), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			p.errorf("%s: differs from fixture (-fixture +coerced):\n%s", r.req.RequestID, diff)
		}
	}
	return p
}

// genericJSON round-trips v through JSON so series compare by wire form.
func genericJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return err.Error()
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return err.Error()
	}
	return out
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
