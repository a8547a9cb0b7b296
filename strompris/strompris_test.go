package strompris

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/types"
)

// dayPayload builds an upstream-shaped JSON body with one record per
// local hour of the given day, so transition days get 23 or 25 records.
func dayPayload(t *testing.T, date dates.Date, price func(hour int) float64) []byte {
	t.Helper()

	start := date.Midnight()
	end := date.AddDays(1).Midnight()

	var records []map[string]any
	for i, ts := 0, start; ts.Before(end); i, ts = i+1, ts.Add(time.Hour) {
		records = append(records, map[string]any{
			"NOK_per_kWh": price(i),
			"EUR_per_kWh": price(i) / 11.5,
			"EXR":         11.5,
			"time_start":  ts.Format(time.RFC3339),
			"time_end":    ts.Add(time.Hour).Format(time.RFC3339),
		})
	}

	body, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return body
}

var dayPathRe = regexp.MustCompile(`^/(\d{4})/(\d{2})-(\d{2})_(NO\d)\.json$`)

type fakeUpstream struct {
	*httptest.Server
	requests atomic.Int64
	// failFor makes requests for that region answer 500
	failFor types.Region
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()

	f := &fakeUpstream{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)

		m := dayPathRe.FindStringSubmatch(r.URL.Path)
		if m == nil {
			http.NotFound(w, r)
			return
		}
		if f.failFor != "" && types.Region(m[4]) == f.failFor {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		date := dates.New(year, time.Month(month), day)

		w.Header().Set("Content-Type", "application/json")
		w.Write(dayPayload(t, date, func(hour int) float64 { return 1.0 + float64(hour)*0.01 }))
	}))
	t.Cleanup(f.Server.Close)
	return f
}

func TestFetchDayPricesBeforeAvailabilityFloor(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := New(upstream.URL, nil)

	for _, region := range types.AllRegions() {
		_, err := client.FetchDayPrices(context.Background(), dates.New(2023, time.September, 30), region)

		var invalidDate *InvalidDateError
		if !errors.As(err, &invalidDate) {
			t.Errorf("region %s: expected InvalidDateError, got %v", region, err)
		}
	}

	if n := upstream.requests.Load(); n != 0 {
		t.Errorf("expected no upstream requests, got %d", n)
	}
}

func TestFetchDayPricesUnknownRegion(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := New(upstream.URL, nil)

	_, err := client.FetchDayPrices(context.Background(), dates.New(2024, time.June, 1), "SE3")

	var unknownRegion *UnknownRegionError
	if !errors.As(err, &unknownRegion) {
		t.Fatalf("expected UnknownRegionError, got %v", err)
	}
}

func TestFetchDayPricesRowCounts(t *testing.T) {
	tests := []struct {
		name string
		date dates.Date
		rows int
	}{
		{name: "ordinary day", date: dates.New(2024, time.June, 1), rows: 24},
		{name: "autumn transition, clocks back", date: dates.New(2023, time.October, 29), rows: 25},
		{name: "spring transition, clocks forward", date: dates.New(2024, time.March, 31), rows: 23},
	}

	upstream := newFakeUpstream(t)
	client := New(upstream.URL, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := client.FetchDayPrices(context.Background(), tt.date, types.RegionBergen)
			if err != nil {
				t.Fatalf("FetchDayPrices() unexpected error: %v", err)
			}
			if len(table) != tt.rows {
				t.Fatalf("expected %d rows, got %d", tt.rows, len(table))
			}

			first := table[0]
			if !first.TimeStart.Equal(tt.date.Midnight()) {
				t.Errorf("first row should start at local midnight, got %v", first.TimeStart)
			}
			if first.Region != types.RegionBergen || first.RegionName != "Bergen" {
				t.Errorf("row not tagged with region, got %s/%s", first.Region, first.RegionName)
			}
			for _, rec := range table {
				if rec.TimeStart.Location() != dates.Location() {
					t.Fatalf("row not normalized to Oslo zone: %v", rec.TimeStart)
				}
			}
		})
	}
}

func TestFetchDayPricesUpstreamFailure(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.failFor = types.RegionOslo
	client := New(upstream.URL, nil)

	_, err := client.FetchDayPrices(context.Background(), dates.New(2024, time.June, 1), types.RegionOslo)

	var unavailable *UpstreamUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UpstreamUnavailableError, got %v", err)
	}
	if unavailable.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", unavailable.StatusCode)
	}
}

func TestFetchDayPricesNetworkFailure(t *testing.T) {
	upstream := newFakeUpstream(t)
	url := upstream.URL
	upstream.Close()
	client := New(url, nil)

	_, err := client.FetchDayPrices(context.Background(), dates.New(2024, time.June, 1), types.RegionOslo)

	var unavailable *UpstreamUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UpstreamUnavailableError, got %v", err)
	}
}

func TestFetchDayPricesMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"this is": "not an hourly array"`))
	}))
	defer srv.Close()
	client := New(srv.URL, nil)

	_, err := client.FetchDayPrices(context.Background(), dates.New(2024, time.June, 1), types.RegionOslo)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestFetchPrices(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := New(upstream.URL, nil)

	end := dates.New(2024, time.June, 10)
	regions := []types.Region{types.RegionOslo, types.RegionTrondheim}

	table, err := client.FetchPrices(context.Background(), end, 3, regions)
	if err != nil {
		t.Fatalf("FetchPrices() unexpected error: %v", err)
	}

	if expected := 2 * 3 * 24; len(table) != expected {
		t.Errorf("expected %d rows, got %d", expected, len(table))
	}
	if n := upstream.requests.Load(); n != 6 {
		t.Errorf("expected 6 upstream requests, got %d", n)
	}

	// Region blocks keep input order; rows in a block belong to that region
	for i, rec := range table {
		expected := regions[0]
		if i >= 3*24 {
			expected = regions[1]
		}
		if rec.Region != expected || rec.RegionName != expected.Name() {
			t.Fatalf("row %d tagged %s/%s, expected %s", i, rec.Region, rec.RegionName, expected)
		}
	}

	// Days run from the end date backwards
	if got := dates.FromTime(table[0].TimeStart); got != end {
		t.Errorf("first block should be the end date, got %v", got)
	}
	if got := dates.FromTime(table[24].TimeStart); got != end.AddDays(-1) {
		t.Errorf("second block should be the day before the end date, got %v", got)
	}
}

func TestFetchPricesEmptyInputs(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := New(upstream.URL, nil)

	tests := []struct {
		name    string
		days    int
		regions []types.Region
	}{
		{name: "zero days", days: 0, regions: []types.Region{types.RegionOslo}},
		{name: "negative days", days: -1, regions: []types.Region{types.RegionOslo}},
		{name: "empty regions", days: 7, regions: []types.Region{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := client.FetchPrices(context.Background(), dates.New(2024, time.June, 1), tt.days, tt.regions)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(table) != 0 {
				t.Errorf("expected empty table, got %d rows", len(table))
			}
		})
	}

	if n := upstream.requests.Load(); n != 0 {
		t.Errorf("expected no upstream requests, got %d", n)
	}
}

func TestFetchPricesDuplicateRegionsNotDeduplicated(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := New(upstream.URL, nil)

	table, err := client.FetchPrices(context.Background(), dates.New(2024, time.June, 1), 1,
		[]types.Region{types.RegionOslo, types.RegionOslo})
	if err != nil {
		t.Fatalf("FetchPrices() unexpected error: %v", err)
	}

	if len(table) != 48 {
		t.Errorf("expected 48 rows for a duplicated region, got %d", len(table))
	}
	if n := upstream.requests.Load(); n != 2 {
		t.Errorf("expected 2 upstream requests, got %d", n)
	}
}

func TestFetchPricesFailFast(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.failFor = types.RegionTrondheim
	client := New(upstream.URL, nil)

	_, err := client.FetchPrices(context.Background(), dates.New(2024, time.June, 1), 2,
		[]types.Region{types.RegionOslo, types.RegionTrondheim, types.RegionBergen})

	var unavailable *UpstreamUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UpstreamUnavailableError, got %v", err)
	}
	// NO1 both days, then the first NO3 request fails the aggregation
	if n := upstream.requests.Load(); n != 3 {
		t.Errorf("expected 3 upstream requests before failing, got %d", n)
	}
}

func TestDayURL(t *testing.T) {
	got := DayURL("https://example.org/api/v1/prices", dates.New(2023, time.October, 1), types.RegionTromsoe)
	expected := "https://example.org/api/v1/prices/2023/10-01_NO4.json"
	if got != expected {
		t.Errorf("DayURL() expected %q, got %q", expected, got)
	}
}
