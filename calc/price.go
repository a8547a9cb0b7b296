package calc

import (
	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/types"
)

// ActivityCost is the price of running an activity of the given power
// for a number of minutes at one hourly spot price.
func ActivityCost(energyUsageKW, minutes, pricePerKWh float64) float64 {
	return energyUsageKW / 60 * minutes * pricePerKWh
}

type DailyAverage struct {
	Region     types.Region
	RegionName string
	Day        dates.Date
	Price      float64
}

// DailyAverages groups a price table by region and Oslo-local calendar
// day and returns the arithmetic mean price per group. The local date
// is the grouping key, a UTC date would shift late-evening hours into
// the wrong day. Groups keep first-appearance order.
func DailyAverages(table types.PriceTable) []DailyAverage {
	type key struct {
		region types.Region
		day    dates.Date
	}

	var order []key
	sums := make(map[key]float64)
	counts := make(map[key]int)
	names := make(map[key]string)

	for _, rec := range table {
		k := key{region: rec.Region, day: dates.FromTime(rec.TimeStart)}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
			names[k] = rec.RegionName
		}
		sums[k] += rec.Price
		counts[k]++
	}

	averages := make([]DailyAverage, 0, len(order))
	for _, k := range order {
		averages = append(averages, DailyAverage{
			Region:     k.region,
			RegionName: names[k],
			Day:        k.day,
			Price:      sums[k] / float64(counts[k]),
		})
	}

	return averages
}
