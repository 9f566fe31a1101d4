package forecast

import (
	"fmt"
	"time"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
)

// RoadblockConfig describes a full street closure on one street, on one date,
// over the half-open hour window [StartHour, EndHour).
type RoadblockConfig struct {
	StreetID  string `json:"street_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

const dateLayout = "2006-01-02"

// roadblockFactors are the fixed reductions inside the window: cars -90%,
// heavy -80%, bikes -20%, pedestrians -10%.
var roadblockFactors = ModeFactors{Car: 0.10, Bike: 0.80, Pedestrian: 0.90, Heavy: 0.20}

func (c RoadblockConfig) Validate() error {
	if c.StartHour < 0 || c.StartHour > 23 || c.EndHour < 0 || c.EndHour > 23 {
		return fmt.Errorf("%w: roadblock hours must lie in [0,23], got [%d,%d)", ErrConfiguration, c.StartHour, c.EndHour)
	}
	if c.StartHour >= c.EndHour {
		return fmt.Errorf("%w: roadblock start_hour %d must be before end_hour %d", ErrConfiguration, c.StartHour, c.EndHour)
	}
	if _, err := time.Parse(dateLayout, c.Date); err != nil {
		return fmt.Errorf("%w: roadblock date %q is not YYYY-MM-DD", ErrConfiguration, c.Date)
	}
	return nil
}

// ApplyRoadblock applies the fixed reductions to every hour of the series that
// falls on the configured date inside the hour window; all other hours pass
// through unchanged. The series must already cover the date: a date with no
// matching hours is ErrDataUnavailable, never extrapolated.
func ApplyRoadblock(series models.ForecastSeries, cfg RoadblockConfig) (models.ForecastSeries, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := make(models.ForecastSeries, len(series))
	dayFound := false
	for i, hour := range series {
		if hour.TS.Format(dateLayout) == cfg.Date {
			dayFound = true
			if hour.HourOfDay >= cfg.StartHour && hour.HourOfDay < cfg.EndHour {
				hour.CarCount = clampCount(hour.CarCount * roadblockFactors.Car)
				hour.BikeCount = clampCount(hour.BikeCount * roadblockFactors.Bike)
				hour.PedestrianCount = clampCount(hour.PedestrianCount * roadblockFactors.Pedestrian)
				hour.HeavyCount = clampCount(hour.HeavyCount * roadblockFactors.Heavy)
				hour.TotalPeople = hour.CarCount + hour.BikeCount + hour.PedestrianCount + hour.HeavyCount
			}
		}
		out[i] = hour
	}

	if !dayFound {
		return nil, fmt.Errorf("%w: baseline series has no hours on %s", ErrDataUnavailable, cfg.Date)
	}
	return out, nil
}
