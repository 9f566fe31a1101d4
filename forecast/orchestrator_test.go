package forecast

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubWeather struct{}

func (stubWeather) NormalsAt(_ context.Context, _ time.Time) WeatherNormals {
	return WeatherNormals{TemperatureC: 10, PrecipitationMM: 0, CloudCoverPct: 50, WindSpeedKMH: 10}
}

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	o := NewOrchestrator(loadTestModel(t), NewBelgianCalendar(), stubWeather{})
	o.Now = func() time.Time {
		return time.Date(2025, 9, 30, 15, 30, 0, 0, time.UTC)
	}
	return o
}

func defaultScenario(weeks int) ScenarioConfig {
	return ScenarioConfig{
		ParkingLevel:  ParkingOpen,
		WeatherLevel:  WeatherNormal,
		VacationLevel: VacationCalendar,
		HorizonWeeks:  weeks,
	}
}

func TestForecastSeriesShape(t *testing.T) {
	o := newTestOrchestrator(t)

	baseline, scenario, err := o.Forecast(context.Background(), "teststraat", defaultScenario(2))
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	wantLen := 2 * 7 * 24
	if len(baseline) != wantLen || len(scenario) != wantLen {
		t.Fatalf("len(baseline)=%d len(scenario)=%d, want %d", len(baseline), len(scenario), wantLen)
	}

	wantStart := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	if !baseline[0].TS.Equal(wantStart) {
		t.Errorf("series starts at %v, want next midnight %v", baseline[0].TS, wantStart)
	}

	for i := 1; i < len(baseline); i++ {
		if got := baseline[i].TS.Sub(baseline[i-1].TS); got != time.Hour {
			t.Fatalf("gap of %v between hours %d and %d", got, i-1, i)
		}
	}

	for i, hour := range baseline {
		if !scenario[i].TS.Equal(hour.TS) {
			t.Fatalf("scenario timestamp %d diverges: %v vs %v", i, scenario[i].TS, hour.TS)
		}
		sum := hour.CarCount + hour.BikeCount + hour.PedestrianCount + hour.HeavyCount
		if !almostEqual(hour.TotalPeople, sum) {
			t.Errorf("hour %d: total_people = %v, want %v", i, hour.TotalPeople, sum)
		}
	}
}

func TestForecastBaselineEqualsScenarioUnderIdentity(t *testing.T) {
	o := newTestOrchestrator(t)

	baseline, scenario, err := o.Forecast(context.Background(), "teststraat", defaultScenario(1))
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	for i := range baseline {
		if baseline[i] != scenario[i] {
			t.Fatalf("hour %d differs under open/normal: %+v vs %+v", i, baseline[i], scenario[i])
		}
	}
}

func TestForecastHorizonBounds(t *testing.T) {
	o := newTestOrchestrator(t)

	for _, weeks := range []int{0, 14, -1} {
		if _, _, err := o.Forecast(context.Background(), "teststraat", defaultScenario(weeks)); !errorsIsConfiguration(err) {
			t.Errorf("horizon %d: expected configuration error, got %v", weeks, err)
		}
	}

	for _, weeks := range []int{1, 13} {
		if _, _, err := o.Forecast(context.Background(), "teststraat", defaultScenario(weeks)); err != nil {
			t.Errorf("horizon %d: unexpected error %v", weeks, err)
		}
	}
}

func TestForecastModelUnavailable(t *testing.T) {
	o := NewOrchestrator(nil, NewBelgianCalendar(), stubWeather{})

	_, _, err := o.Forecast(context.Background(), "teststraat", defaultScenario(1))
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("expected model unavailable error, got %v", err)
	}
}

// Baseline and scenario must share the same calendar assumption: forcing the
// vacation flag changes both series' inputs, not just the scenario's.
func TestForecastVacationFlagsShared(t *testing.T) {
	o := newTestOrchestrator(t)

	cfg := defaultScenario(1)
	cfg.VacationLevel = VacationForced
	cfg.ParkingLevel = ParkingClosed

	baseline, scenario, err := o.Forecast(context.Background(), "teststraat", cfg)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	for i := range baseline {
		if !baseline[i].IsSchoolVacation {
			t.Fatalf("baseline hour %d lost the forced vacation flag", i)
		}
		if !scenario[i].IsSchoolVacation {
			t.Fatalf("scenario hour %d lost the forced vacation flag", i)
		}
	}

	cfg.VacationLevel = VacationForcedOff
	baseline, _, err = o.Forecast(context.Background(), "teststraat", cfg)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	for i := range baseline {
		if baseline[i].IsSchoolVacation {
			t.Fatalf("baseline hour %d kept a vacation flag under force_no_vacation", i)
		}
	}
}

func TestForecastScenarioAppliesMultipliers(t *testing.T) {
	o := newTestOrchestrator(t)

	cfg := defaultScenario(1)
	cfg.ParkingLevel = ParkingClosed

	baseline, scenario, err := o.Forecast(context.Background(), "teststraat", cfg)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	for i := range baseline {
		if !almostEqual(scenario[i].CarCount, baseline[i].CarCount*0.50) {
			t.Fatalf("hour %d: scenario car %v != baseline car %v x 0.50", i, scenario[i].CarCount, baseline[i].CarCount)
		}
	}
}

func TestRoadblockSim(t *testing.T) {
	o := newTestOrchestrator(t)

	cfg := RoadblockConfig{StreetID: "teststraat", Date: "2025-10-03", StartHour: 8, EndHour: 12}
	normal, blocked, err := o.RoadblockSim(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RoadblockSim failed: %v", err)
	}

	if len(normal) != 24 || len(blocked) != 24 {
		t.Fatalf("len(normal)=%d len(blocked)=%d, want 24", len(normal), len(blocked))
	}

	for h := 0; h < 24; h++ {
		if h >= 8 && h < 12 {
			if !almostEqual(blocked[h].CarCount, normal[h].CarCount*0.10) {
				t.Errorf("hour %d: blocked car %v != normal car %v x 0.10", h, blocked[h].CarCount, normal[h].CarCount)
			}
		} else if blocked[h] != normal[h] {
			t.Errorf("hour %d outside window differs: %+v vs %+v", h, blocked[h], normal[h])
		}
	}
}

func TestRoadblockSimRejectsBadWindow(t *testing.T) {
	o := newTestOrchestrator(t)

	cfg := RoadblockConfig{StreetID: "teststraat", Date: "2025-10-03", StartHour: 10, EndHour: 5}
	if _, _, err := o.RoadblockSim(context.Background(), cfg); !errorsIsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestRoadblockSimDateOutsideCoverage(t *testing.T) {
	o := newTestOrchestrator(t)

	tests := []struct {
		name string
		date string
	}{
		{"past date", "2025-09-01"},
		{"today before first midnight", "2025-09-30"},
		{"beyond max horizon", "2026-02-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RoadblockConfig{StreetID: "teststraat", Date: tt.date, StartHour: 8, EndHour: 12}
			if _, _, err := o.RoadblockSim(context.Background(), cfg); !errors.Is(err, ErrDataUnavailable) {
				t.Errorf("expected data unavailable error, got %v", err)
			}
		})
	}
}
