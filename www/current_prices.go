package www

import (
	"context"
	"time"

	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/types"
)

type CurrentPrice struct {
	Region     types.Region
	RegionName string
	Price      float64
	Valid      bool
}

type CurrentPricesData struct {
	UpdatedAt string
	Prices    []CurrentPrice
}

// currentPrices resolves this hour's spot price per region for the live
// ticker. The day fetches are served from the warm cache, only a cold
// start goes upstream.
func (s *Server) currentPrices(ctx context.Context) (CurrentPricesData, error) {
	now := time.Now().In(dates.Location())
	today := dates.FromTime(now)

	data := CurrentPricesData{
		UpdatedAt: now.Format("15:04"),
	}

	for _, region := range types.AllRegions() {
		table, err := s.client.FetchDayPrices(ctx, today, region)
		if err != nil {
			return CurrentPricesData{}, err
		}

		cp := CurrentPrice{Region: region, RegionName: region.Name()}
		for _, rec := range table {
			if !rec.TimeStart.After(now) && now.Before(rec.TimeStart.Add(time.Hour)) {
				cp.Price = rec.Price
				cp.Valid = true
				break
			}
		}
		data.Prices = append(data.Prices, cp)
	}

	return data, nil
}
