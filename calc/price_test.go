package calc

import (
	"testing"
	"time"

	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/types"
)

func TestActivityCost(t *testing.T) {
	tests := []struct {
		name     string
		kW       float64
		minutes  float64
		price    float64
		expected float64
	}{
		{name: "ten minute shower", kW: 30, minutes: 10, price: 2.0, expected: 10.0},
		{name: "one hour of heating", kW: 1, minutes: 60, price: 1.5, expected: 1.5},
		{name: "free electricity", kW: 2.5, minutes: 45, price: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActivityCost(tt.kW, tt.minutes, tt.price); got != tt.expected {
				t.Errorf("ActivityCost() expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func record(ts time.Time, price float64, region types.Region) types.PriceRecord {
	return types.PriceRecord{
		TimeStart:  ts.In(dates.Location()),
		Price:      price,
		Region:     region,
		RegionName: region.Name(),
	}
}

func TestDailyAveragesHandComputed(t *testing.T) {
	day := dates.New(2024, time.June, 1).Midnight()
	table := types.PriceTable{
		record(day, 1.0, types.RegionOslo),
		record(day.Add(1*time.Hour), 1.0, types.RegionOslo),
		record(day.Add(2*time.Hour), 3.0, types.RegionOslo),
		record(day.Add(3*time.Hour), 3.0, types.RegionOslo),
	}

	averages := DailyAverages(table)
	if len(averages) != 1 {
		t.Fatalf("expected a single group, got %d", len(averages))
	}
	avg := averages[0]
	if avg.Price != 2.0 {
		t.Errorf("expected average 2.0, got %v", avg.Price)
	}
	if avg.Day != dates.New(2024, time.June, 1) {
		t.Errorf("unexpected day: %v", avg.Day)
	}
	if avg.Region != types.RegionOslo || avg.RegionName != "Oslo" {
		t.Errorf("unexpected region tag: %s/%s", avg.Region, avg.RegionName)
	}
}

func TestDailyAveragesGroupsByLocalDay(t *testing.T) {
	// 22:30 UTC on June 1st is 00:30 June 2nd in Oslo
	lateUTC := time.Date(2024, time.June, 1, 22, 30, 0, 0, time.UTC)
	table := types.PriceTable{
		record(time.Date(2024, time.June, 1, 20, 0, 0, 0, time.UTC), 1.0, types.RegionBergen),
		record(lateUTC, 5.0, types.RegionBergen),
	}

	averages := DailyAverages(table)
	if len(averages) != 2 {
		t.Fatalf("expected two local-day groups, got %d", len(averages))
	}
	if averages[0].Day != dates.New(2024, time.June, 1) {
		t.Errorf("first group should be June 1st, got %v", averages[0].Day)
	}
	if averages[1].Day != dates.New(2024, time.June, 2) {
		t.Errorf("second group should be June 2nd, got %v", averages[1].Day)
	}
	if averages[1].Price != 5.0 {
		t.Errorf("late hour should average alone, got %v", averages[1].Price)
	}
}

func TestDailyAveragesKeepsRegionOrder(t *testing.T) {
	day := dates.New(2024, time.June, 1).Midnight()
	table := types.PriceTable{
		record(day, 1.0, types.RegionTrondheim),
		record(day, 2.0, types.RegionOslo),
		record(day.Add(time.Hour), 3.0, types.RegionTrondheim),
	}

	averages := DailyAverages(table)
	if len(averages) != 2 {
		t.Fatalf("expected two groups, got %d", len(averages))
	}
	if averages[0].Region != types.RegionTrondheim {
		t.Errorf("groups should keep first-appearance order, got %s first", averages[0].Region)
	}
	if averages[0].Price != 2.0 {
		t.Errorf("expected Trondheim average 2.0, got %v", averages[0].Price)
	}
}

func TestDailyAveragesEmptyTable(t *testing.T) {
	if averages := DailyAverages(nil); len(averages) != 0 {
		t.Errorf("expected no groups for an empty table, got %d", len(averages))
	}
}
