package www

import (
	"net/url"
	"strconv"

	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/types"
)

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func floatOrDefault(u *url.URL, key string, defaultValue float64) float64 {
	if v := u.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func stringOrDefault(u *url.URL, key string, defaultValue string) string {
	if v := u.Query().Get(key); v != "" {
		return v
	}
	return defaultValue
}

func dateOrDefault(u *url.URL, key string, defaultValue dates.Date) (dates.Date, error) {
	if v := u.Query().Get(key); v != "" {
		return dates.Parse(v)
	}
	return defaultValue, nil
}

// regionsFromQuery collects repeated "region" parameters. Nil means
// the caller wants all regions; duplicates are passed through as-is.
func regionsFromQuery(u *url.URL) []types.Region {
	values := u.Query()["region"]
	if len(values) == 0 {
		return nil
	}
	regions := make([]types.Region, 0, len(values))
	for _, v := range values {
		regions = append(regions, types.Region(v))
	}
	return regions
}
