// Package chart builds declarative Vega-Lite specifications from price
// tables. The builders are pure, rendering happens in the browser.
package chart

import (
	"time"

	"github.com/angas/strompris-go/calc"
	"github.com/angas/strompris-go/convert"
	"github.com/angas/strompris-go/types"
)

type priceValue struct {
	TimeStart string  `json:"time_start"`
	Price     float64 `json:"NOK_per_kWh"`
	Region    string  `json:"region"`
}

type dailyValue struct {
	Day    string  `json:"day"`
	Price  float64 `json:"NOK_per_kWh"`
	Region string  `json:"region"`
}

type activityValue struct {
	TimeStart string  `json:"time_start"`
	Cost      float64 `json:"cost"`
}

// Prices builds the raw multi-region series, one line per region over
// time.
func Prices(table types.PriceTable) Chart {
	return Chart{
		Schema:   SchemaURL,
		Width:    "container",
		Data:     Data{Values: priceValues(table)},
		Mark:     &Mark{Type: "line"},
		Encoding: priceEncoding(),
	}
}

// DailyPrices builds the per-day average series, one point per region
// per Oslo-local calendar day.
func DailyPrices(table types.PriceTable) Chart {
	return Chart{
		Schema:   SchemaURL,
		Width:    "container",
		Data:     Data{Values: dailyValues(table)},
		Mark:     &Mark{Type: "line", Point: true},
		Encoding: dailyEncoding(),
	}
}

// PricesWithDailyAverage layers the raw hourly series with the daily
// average series in a single chart.
func PricesWithDailyAverage(table types.PriceTable) Chart {
	hourly := priceValues(table)
	daily := dailyValues(table)

	values := make([]map[string]any, 0, len(hourly)+len(daily))
	for _, v := range hourly {
		values = append(values, map[string]any{
			"time_start":  v.TimeStart,
			"NOK_per_kWh": v.Price,
			"region":      v.Region,
		})
	}
	for _, v := range daily {
		values = append(values, map[string]any{
			"day":         v.Day,
			"NOK_per_kWh": v.Price,
			"region":      v.Region,
		})
	}

	return Chart{
		Schema: SchemaURL,
		Width:  "container",
		Data:   Data{Values: values},
		Layer: []Layer{
			{
				Mark:     &Mark{Type: "line", Opacity: 0.8},
				Encoding: priceEncoding(),
			},
			{
				Mark: &Mark{Type: "line", Point: true, Interpolate: "step-after", StrokeDash: []int{4, 4}},
				Encoding: Encoding{
					X:     &Field{Field: "day", Type: "temporal", Title: "Day"},
					Y:     &Field{Field: "NOK_per_kWh", Type: "quantitative", Title: "Daily average (NOK/kWh)"},
					Color: &Field{Field: "region", Type: "nominal", Title: "Region"},
					Tooltip: []Field{
						{Field: "day", Type: "temporal", Title: "Day"},
						{Field: "region", Type: "nominal", Title: "Region"},
						{Field: "NOK_per_kWh", Type: "quantitative", Title: "NOK/kWh", Format: ".4f"},
					},
				},
			},
		},
	}
}

// ActivityCosts maps each price record to the cost of running the
// named activity for the given duration at that hour's price.
func ActivityCosts(table types.PriceTable, activity string, minutes float64) (Chart, error) {
	spec, ok := types.ActivityByName(activity)
	if !ok {
		return Chart{}, &UnknownActivityError{Name: activity}
	}
	if minutes <= 0 {
		return Chart{}, &InvalidDurationError{Minutes: minutes}
	}

	values := make([]activityValue, 0, len(table))
	for _, rec := range table {
		values = append(values, activityValue{
			TimeStart: rec.TimeStart.Format(time.RFC3339),
			Cost:      convert.RoundFloat64(calc.ActivityCost(spec.EnergyUsageKW, minutes, rec.Price), 4),
		})
	}

	return Chart{
		Schema: SchemaURL,
		Width:  "container",
		Data:   Data{Values: values},
		Mark:   &Mark{Type: "line"},
		Encoding: Encoding{
			X: &Field{Field: "time_start", Type: "temporal", Title: "Time"},
			Y: &Field{Field: "cost", Type: "quantitative", Title: "Cost (NOK)"},
			Tooltip: []Field{
				{Field: "time_start", Type: "temporal", Title: "Time"},
				{Field: "cost", Type: "quantitative", Title: "NOK", Format: ".2f"},
			},
		},
	}, nil
}

func priceValues(table types.PriceTable) []priceValue {
	values := make([]priceValue, 0, len(table))
	for _, rec := range table {
		values = append(values, priceValue{
			TimeStart: rec.TimeStart.Format(time.RFC3339),
			Price:     rec.Price,
			Region:    rec.RegionName,
		})
	}
	return values
}

func dailyValues(table types.PriceTable) []dailyValue {
	averages := calc.DailyAverages(table)
	values := make([]dailyValue, 0, len(averages))
	for _, avg := range averages {
		values = append(values, dailyValue{
			Day:    avg.Day.String(),
			Price:  convert.RoundFloat64(avg.Price, 4),
			Region: avg.RegionName,
		})
	}
	return values
}

func dailyEncoding() Encoding {
	return Encoding{
		X:     &Field{Field: "day", Type: "temporal", Title: "Day"},
		Y:     &Field{Field: "NOK_per_kWh", Type: "quantitative", Title: "NOK/kWh"},
		Color: &Field{Field: "region", Type: "nominal", Title: "Region"},
		Tooltip: []Field{
			{Field: "day", Type: "temporal", Title: "Day"},
			{Field: "region", Type: "nominal", Title: "Region"},
			{Field: "NOK_per_kWh", Type: "quantitative", Title: "NOK/kWh", Format: ".4f"},
		},
	}
}

func priceEncoding() Encoding {
	return Encoding{
		X:     &Field{Field: "time_start", Type: "temporal", Title: "Time"},
		Y:     &Field{Field: "NOK_per_kWh", Type: "quantitative", Title: "NOK/kWh"},
		Color: &Field{Field: "region", Type: "nominal", Title: "Region"},
		Tooltip: []Field{
			{Field: "time_start", Type: "temporal", Title: "Time"},
			{Field: "region", Type: "nominal", Title: "Region"},
			{Field: "NOK_per_kWh", Type: "quantitative", Title: "NOK/kWh", Format: ".4f"},
		},
	}
}
