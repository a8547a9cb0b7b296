package types

import "time"

// PriceRecord is one hour of spot price data for one region.
// TimeStart is always normalized to the Oslo zone.
type PriceRecord struct {
	TimeStart  time.Time `json:"time_start"`
	Price      float64   `json:"NOK_per_kWh"`
	Region     Region    `json:"region"`
	RegionName string    `json:"region_name"`
}

// PriceTable is an ordered sequence of price records, either a single
// region/day fetch or a concatenation of many. Rows keep their fetch
// order; no global time sorting or deduplication is applied.
type PriceTable []PriceRecord

func (t PriceTable) Append(other PriceTable) PriceTable {
	return append(t, other...)
}
