package types

// Region is a Norwegian grid pricing area code ("NO1".."NO5").
type Region string

const (
	RegionOslo         Region = "NO1"
	RegionKristiansand Region = "NO2"
	RegionTrondheim    Region = "NO3"
	RegionTromsoe      Region = "NO4"
	RegionBergen       Region = "NO5"
)

var regionNames = map[Region]string{
	RegionOslo:         "Oslo",
	RegionKristiansand: "Kristiansand",
	RegionTrondheim:    "Trondheim",
	RegionTromsoe:      "Tromsø",
	RegionBergen:       "Bergen",
}

var allRegions = []Region{
	RegionOslo,
	RegionKristiansand,
	RegionTrondheim,
	RegionTromsoe,
	RegionBergen,
}

// AllRegions returns every known region in stable order.
func AllRegions() []Region {
	regions := make([]Region, len(allRegions))
	copy(regions, allRegions)
	return regions
}

func (r Region) Valid() bool {
	_, ok := regionNames[r]
	return ok
}

// Name returns the human-readable city name for the region code.
func (r Region) Name() string {
	return regionNames[r]
}
