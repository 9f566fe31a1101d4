package forecast

import (
	"fmt"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
)

// ScenarioConfig selects one level per policy lever plus the forecast horizon.
// Immutable once a forecast run starts.
type ScenarioConfig struct {
	ParkingLevel  string `json:"parking_level"`
	WeatherLevel  string `json:"weather_level"`
	VacationLevel string `json:"vacation_level"`
	HorizonWeeks  int    `json:"horizon_weeks"`
}

const (
	MinHorizonWeeks = 1
	MaxHorizonWeeks = 13
)

// Validate checks every lever level against the rule table (or, for the
// vacation lever, the known flag modes). It does not check the horizon; that
// belongs to the Orchestrator.
func (c ScenarioConfig) Validate() error {
	if _, err := LookupFactors(LeverParking, c.ParkingLevel); err != nil {
		return err
	}
	if _, err := LookupFactors(LeverWeather, c.WeatherLevel); err != nil {
		return err
	}
	switch c.VacationLevel {
	case VacationCalendar, VacationForced, VacationForcedOff:
		return nil
	default:
		return fmt.Errorf("%w: unknown level %q for lever vacation", ErrConfiguration, c.VacationLevel)
	}
}

// ApplyScenario multiplies each hour's mode counts by the parking and weather
// factors for the configured levels, then recomputes total_people from the
// adjusted modes. Multiplying per mode before summing is deliberate: scaling
// the pre-computed total would double-count interaction effects.
// Pure: the input series is not modified.
func ApplyScenario(series models.ForecastSeries, cfg ScenarioConfig) (models.ForecastSeries, error) {
	parking, err := LookupFactors(LeverParking, cfg.ParkingLevel)
	if err != nil {
		return nil, err
	}
	weather, err := LookupFactors(LeverWeather, cfg.WeatherLevel)
	if err != nil {
		return nil, err
	}

	out := make(models.ForecastSeries, len(series))
	for i, hour := range series {
		w := weatherFactorsAt(cfg.WeatherLevel, weather, hour.HourOfDay)

		hour.CarCount = clampCount(hour.CarCount * parking.Car * w.Car)
		hour.BikeCount = clampCount(hour.BikeCount * parking.Bike * w.Bike)
		hour.PedestrianCount = clampCount(hour.PedestrianCount * parking.Pedestrian * w.Pedestrian)
		hour.HeavyCount = clampCount(hour.HeavyCount * parking.Heavy * w.Heavy)
		hour.TotalPeople = hour.CarCount + hour.BikeCount + hour.PedestrianCount + hour.HeavyCount

		out[i] = hour
	}
	return out, nil
}

func clampCount(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
