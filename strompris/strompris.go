// Package strompris fetches hourly electricity spot prices from the
// hvakosterstrommen.no API and assembles them into price tables.
package strompris

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/types"
)

const DefaultBaseURL = "https://www.hvakosterstrommen.no/api/v1/prices"

// availabilityFloor is the first date the upstream dataset covers.
var availabilityFloor = dates.New(2023, time.October, 1)

type rawPrice struct {
	NOKPerKWh float64   `json:"NOK_per_kWh"`
	EURPerKWh float64   `json:"EUR_per_kWh"`
	EXR       float64   `json:"EXR"`
	TimeStart time.Time `json:"time_start"`
	TimeEnd   time.Time `json:"time_end"`
}

// DayURL is the upstream path for one region/day, built
// deterministically from the date components.
func DayURL(baseURL string, date dates.Date, region types.Region) string {
	return fmt.Sprintf("%s/%04d/%02d-%02d_%s.json",
		baseURL, date.Year, date.Month, date.Day, region)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a price client. The transport is typically the caching
// transport so repeated day fetches never hit the network twice; pass
// nil for a plain http.DefaultTransport client.
func New(baseURL string, transport http.RoundTripper) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Transport: transport},
	}
}

// FetchDayPrices fetches one day of hourly prices for one region.
// Start times are converted from the reported offset to the Oslo zone,
// so a day with a DST transition yields 23 or 25 rows instead of 24.
func (c *Client) FetchDayPrices(ctx context.Context, date dates.Date, region types.Region) (types.PriceTable, error) {
	if date.IsZero() {
		date = dates.Today()
	}
	if date.Before(availabilityFloor) {
		return nil, &InvalidDateError{Date: date, Floor: availabilityFloor}
	}
	if !region.Valid() {
		return nil, &UnknownRegionError{Region: region}
	}

	url := DayURL(c.baseURL, date, region)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamUnavailableError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamUnavailableError{URL: url, StatusCode: resp.StatusCode}
	}

	var rawPrices []rawPrice
	if err := json.NewDecoder(resp.Body).Decode(&rawPrices); err != nil {
		return nil, &MalformedResponseError{URL: url, Err: err}
	}

	table := make(types.PriceTable, 0, len(rawPrices))
	for _, raw := range rawPrices {
		table = append(table, types.PriceRecord{
			TimeStart:  raw.TimeStart.In(dates.Location()),
			Price:      raw.NOKPerKWh,
			Region:     region,
			RegionName: region.Name(),
		})
	}

	return table, nil
}

// FetchPrices fetches a range of consecutive days for a set of regions
// into one combined table. A zero end date means today, nil regions
// means all known regions, and days <= 0 yields an empty table without
// any fetches. A single failed region/day fetch fails the whole range.
func (c *Client) FetchPrices(ctx context.Context, end dates.Date, days int, regions []types.Region) (types.PriceTable, error) {
	if end.IsZero() {
		end = dates.Today()
	}
	if regions == nil {
		regions = types.AllRegions()
	}

	var table types.PriceTable
	for _, region := range regions {
		for day := 0; day < days; day++ {
			current := end.AddDays(-day)
			daily, err := c.FetchDayPrices(ctx, current, region)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch prices for %s %s: %w", region, current, err)
			}
			table = table.Append(daily)
		}
	}

	return table, nil
}
