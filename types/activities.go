package types

// Activity is a fixed-power household activity whose running cost can
// be derived from the spot price.
type Activity struct {
	Name          string  `json:"name"`
	EnergyUsageKW float64 `json:"energy_usage_kw"`
}

var activities = []Activity{
	{Name: "shower", EnergyUsageKW: 30},
	{Name: "baking", EnergyUsageKW: 2.5},
	{Name: "heat", EnergyUsageKW: 1},
}

// AllActivities returns the activity catalog in stable order.
func AllActivities() []Activity {
	result := make([]Activity, len(activities))
	copy(result, activities)
	return result
}

func ActivityByName(name string) (Activity, bool) {
	for _, a := range activities {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}
