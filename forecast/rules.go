package forecast

import "fmt"

type Lever string

const (
	LeverParking Lever = "parking"
	LeverWeather Lever = "weather"
)

// Parking levels.
const (
	ParkingOpen   = "open"
	ParkingClosed = "closed"
	ParkingPaid   = "paid"
)

// Weather levels.
const (
	WeatherNormal      = "normal"
	WeatherRainyRush   = "rainy_morning_rush"
	WeatherCloudyWindy = "cloudy_windy"
)

// rainy_morning_rush only scales the morning rush, hours 7-9 inclusive.
const (
	rainyRushFirstHour = 7
	rainyRushLastHour  = 9
)

// ModeFactors holds one multiplier per traffic mode. 1.0 means no change.
type ModeFactors struct {
	Car        float64
	Bike       float64
	Pedestrian float64
	Heavy      float64
}

var identityFactors = ModeFactors{Car: 1.0, Bike: 1.0, Pedestrian: 1.0, Heavy: 1.0}

// ruleTable is the canonical set of per-mode adjustment factors for every
// (lever, level) pair. Never mutated at runtime.
var ruleTable = map[Lever]map[string]ModeFactors{
	LeverParking: {
		ParkingOpen:   {Car: 1.00, Bike: 1.00, Pedestrian: 1.00, Heavy: 1.00},
		ParkingClosed: {Car: 0.50, Bike: 1.20, Pedestrian: 1.20, Heavy: 1.00},
		ParkingPaid:   {Car: 0.75, Bike: 1.10, Pedestrian: 1.10, Heavy: 1.00},
	},
	LeverWeather: {
		WeatherNormal:      {Car: 1.00, Bike: 1.00, Pedestrian: 1.00, Heavy: 1.00},
		WeatherRainyRush:   {Car: 1.05, Bike: 0.80, Pedestrian: 0.90, Heavy: 1.00},
		WeatherCloudyWindy: {Car: 1.02, Bike: 0.90, Pedestrian: 0.95, Heavy: 1.00},
	},
}

// LookupFactors returns the adjustment factors for a (lever, level) pair.
func LookupFactors(lever Lever, level string) (ModeFactors, error) {
	levels, ok := ruleTable[lever]
	if !ok {
		return ModeFactors{}, fmt.Errorf("%w: unknown lever %q", ErrConfiguration, lever)
	}
	factors, ok := levels[level]
	if !ok {
		return ModeFactors{}, fmt.Errorf("%w: unknown level %q for lever %q", ErrConfiguration, level, lever)
	}
	return factors, nil
}

// weatherFactorsAt returns the weather factors effective for a given hour of
// day: rainy_morning_rush collapses to the identity outside its window.
func weatherFactorsAt(level string, factors ModeFactors, hourOfDay int) ModeFactors {
	if level == WeatherRainyRush && (hourOfDay < rainyRushFirstHour || hourOfDay > rainyRushLastHour) {
		return identityFactors
	}
	return factors
}
