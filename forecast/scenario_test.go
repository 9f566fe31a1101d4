package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
)

func testHour(hourOfDay int, car, bike, ped, heavy float64) models.PredictedHour {
	ts := time.Date(2026, 9, 7, hourOfDay, 0, 0, 0, time.UTC)
	return models.PredictedHour{
		TS:              ts,
		StreetID:        "sintmartenslatemlaan",
		HourOfDay:       hourOfDay,
		DayOfWeek:       int(ts.Weekday()),
		CarCount:        car,
		BikeCount:       bike,
		PedestrianCount: ped,
		HeavyCount:      heavy,
		TotalPeople:     car + bike + ped + heavy,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestApplyScenarioIdentity(t *testing.T) {
	series := models.ForecastSeries{
		testHour(8, 100, 30, 20, 5),
		testHour(14, 80, 25, 15, 3),
	}
	cfg := ScenarioConfig{ParkingLevel: ParkingOpen, WeatherLevel: WeatherNormal, VacationLevel: VacationCalendar}

	out, err := ApplyScenario(series, cfg)
	if err != nil {
		t.Fatalf("ApplyScenario failed: %v", err)
	}
	for i := range series {
		if out[i] != series[i] {
			t.Errorf("hour %d changed under open/normal: got %+v, want %+v", i, out[i], series[i])
		}
	}
}

func TestApplyScenarioParkingClosed(t *testing.T) {
	series := models.ForecastSeries{testHour(14, 100, 30, 20, 5)}
	cfg := ScenarioConfig{ParkingLevel: ParkingClosed, WeatherLevel: WeatherNormal, VacationLevel: VacationCalendar}

	out, err := ApplyScenario(series, cfg)
	if err != nil {
		t.Fatalf("ApplyScenario failed: %v", err)
	}

	if !almostEqual(out[0].CarCount, 50) {
		t.Errorf("car = %v, want 50 (100 x 0.50)", out[0].CarCount)
	}
	if !almostEqual(out[0].BikeCount, 36) {
		t.Errorf("bike = %v, want 36 (30 x 1.20)", out[0].BikeCount)
	}
	if !almostEqual(out[0].PedestrianCount, 24) {
		t.Errorf("pedestrian = %v, want 24 (20 x 1.20)", out[0].PedestrianCount)
	}
	if !almostEqual(out[0].HeavyCount, 5) {
		t.Errorf("heavy = %v, want 5 (unchanged)", out[0].HeavyCount)
	}
}

func TestApplyScenarioRainyRushWindow(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		wantBike float64
	}{
		{"hour 7 inside window", 7, 24},
		{"hour 8 inside window", 8, 24},
		{"hour 9 inside window", 9, 24},
		{"hour 6 outside window", 6, 30},
		{"hour 10 outside window", 10, 30},
		{"hour 14 outside window", 14, 30},
	}
	cfg := ScenarioConfig{ParkingLevel: ParkingOpen, WeatherLevel: WeatherRainyRush, VacationLevel: VacationCalendar}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ApplyScenario(models.ForecastSeries{testHour(tt.hour, 100, 30, 20, 5)}, cfg)
			if err != nil {
				t.Fatalf("ApplyScenario failed: %v", err)
			}
			if !almostEqual(out[0].BikeCount, tt.wantBike) {
				t.Errorf("bike at hour %d = %v, want %v", tt.hour, out[0].BikeCount, tt.wantBike)
			}
		})
	}
}

// cloudy_windy is assumed to apply to all 24 hours; only rainy_morning_rush
// is windowed.
func TestApplyScenarioCloudyWindyAllHours(t *testing.T) {
	cfg := ScenarioConfig{ParkingLevel: ParkingOpen, WeatherLevel: WeatherCloudyWindy, VacationLevel: VacationCalendar}

	for _, hour := range []int{0, 8, 14, 23} {
		out, err := ApplyScenario(models.ForecastSeries{testHour(hour, 100, 30, 20, 5)}, cfg)
		if err != nil {
			t.Fatalf("ApplyScenario failed: %v", err)
		}
		if !almostEqual(out[0].CarCount, 102) {
			t.Errorf("car at hour %d = %v, want 102 (100 x 1.02)", hour, out[0].CarCount)
		}
		if !almostEqual(out[0].BikeCount, 27) {
			t.Errorf("bike at hour %d = %v, want 27 (30 x 0.90)", hour, out[0].BikeCount)
		}
	}
}

// Parking and weather multipliers must commute: the pass is a plain product
// per mode, never a sum-then-scale.
func TestApplyScenarioOrderIndependent(t *testing.T) {
	series := models.ForecastSeries{
		testHour(8, 100, 30, 20, 5),
		testHour(14, 80, 25, 15, 3),
	}

	for _, parking := range []string{ParkingOpen, ParkingClosed, ParkingPaid} {
		for _, weather := range []string{WeatherNormal, WeatherRainyRush, WeatherCloudyWindy} {
			parkingOnly := ScenarioConfig{ParkingLevel: parking, WeatherLevel: WeatherNormal, VacationLevel: VacationCalendar}
			weatherOnly := ScenarioConfig{ParkingLevel: ParkingOpen, WeatherLevel: weather, VacationLevel: VacationCalendar}

			pThenW, err := ApplyScenario(series, parkingOnly)
			if err != nil {
				t.Fatalf("parking pass failed: %v", err)
			}
			pThenW, err = ApplyScenario(pThenW, weatherOnly)
			if err != nil {
				t.Fatalf("weather pass failed: %v", err)
			}

			wThenP, err := ApplyScenario(series, weatherOnly)
			if err != nil {
				t.Fatalf("weather pass failed: %v", err)
			}
			wThenP, err = ApplyScenario(wThenP, parkingOnly)
			if err != nil {
				t.Fatalf("parking pass failed: %v", err)
			}

			combined, err := ApplyScenario(series, ScenarioConfig{ParkingLevel: parking, WeatherLevel: weather, VacationLevel: VacationCalendar})
			if err != nil {
				t.Fatalf("combined pass failed: %v", err)
			}

			for i := range series {
				if !almostEqual(pThenW[i].CarCount, wThenP[i].CarCount) ||
					!almostEqual(pThenW[i].BikeCount, wThenP[i].BikeCount) ||
					!almostEqual(pThenW[i].PedestrianCount, wThenP[i].PedestrianCount) ||
					!almostEqual(pThenW[i].HeavyCount, wThenP[i].HeavyCount) {
					t.Errorf("(%s,%s) hour %d: parking-then-weather != weather-then-parking", parking, weather, i)
				}
				if !almostEqual(pThenW[i].CarCount, combined[i].CarCount) {
					t.Errorf("(%s,%s) hour %d: sequential != combined car: %v vs %v",
						parking, weather, i, pThenW[i].CarCount, combined[i].CarCount)
				}
			}
		}
	}
}

func TestApplyScenarioTotalsInvariant(t *testing.T) {
	series := models.ForecastSeries{
		testHour(8, 100, 30, 20, 5),
		testHour(14, 80, 25, 15, 3),
		testHour(22, 12, 2, 1, 0),
	}

	for _, parking := range []string{ParkingOpen, ParkingClosed, ParkingPaid} {
		for _, weather := range []string{WeatherNormal, WeatherRainyRush, WeatherCloudyWindy} {
			out, err := ApplyScenario(series, ScenarioConfig{ParkingLevel: parking, WeatherLevel: weather, VacationLevel: VacationCalendar})
			if err != nil {
				t.Fatalf("ApplyScenario failed: %v", err)
			}
			for i, hour := range out {
				sum := hour.CarCount + hour.BikeCount + hour.PedestrianCount + hour.HeavyCount
				if !almostEqual(hour.TotalPeople, sum) {
					t.Errorf("(%s,%s) hour %d: total_people = %v, want mode sum %v", parking, weather, i, hour.TotalPeople, sum)
				}
				if hour.CarCount < 0 || hour.BikeCount < 0 || hour.PedestrianCount < 0 || hour.HeavyCount < 0 {
					t.Errorf("(%s,%s) hour %d: negative count in %+v", parking, weather, i, hour)
				}
			}
		}
	}
}

func TestApplyScenarioDoesNotMutateInput(t *testing.T) {
	series := models.ForecastSeries{testHour(8, 100, 30, 20, 5)}
	orig := series[0]

	_, err := ApplyScenario(series, ScenarioConfig{ParkingLevel: ParkingClosed, WeatherLevel: WeatherRainyRush, VacationLevel: VacationCalendar})
	if err != nil {
		t.Fatalf("ApplyScenario failed: %v", err)
	}
	if series[0] != orig {
		t.Errorf("input series mutated: %+v", series[0])
	}
}

func TestApplyScenarioUnknownLevels(t *testing.T) {
	series := models.ForecastSeries{testHour(8, 100, 30, 20, 5)}

	tests := []struct {
		name string
		cfg  ScenarioConfig
	}{
		{"unknown parking", ScenarioConfig{ParkingLevel: "free_for_all", WeatherLevel: WeatherNormal}},
		{"unknown weather", ScenarioConfig{ParkingLevel: ParkingOpen, WeatherLevel: "heatwave"}},
		{"empty parking", ScenarioConfig{ParkingLevel: "", WeatherLevel: WeatherNormal}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyScenario(series, tt.cfg)
			if !errorsIsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestScenarioConfigValidate(t *testing.T) {
	valid := ScenarioConfig{ParkingLevel: ParkingPaid, WeatherLevel: WeatherCloudyWindy, VacationLevel: VacationForced}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	badVacation := ScenarioConfig{ParkingLevel: ParkingOpen, WeatherLevel: WeatherNormal, VacationLevel: "maybe"}
	if err := badVacation.Validate(); !errorsIsConfiguration(err) {
		t.Errorf("expected configuration error for bad vacation level, got %v", err)
	}
}
