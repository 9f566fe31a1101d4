package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
)

// WeatherSource supplies expected weather for a future hour, typically from
// climatology over stored observations.
type WeatherSource interface {
	NormalsAt(ctx context.Context, t time.Time) WeatherNormals
}

// WeatherNormals are the weather features fed to the model for one hour.
type WeatherNormals struct {
	TemperatureC    float64
	PrecipitationMM float64
	CloudCoverPct   float64
	WindSpeedKMH    float64
}

var (
	forecastsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kortrijk_api_forecasts_generated_total",
		Help: "Total number of forecast runs completed.",
	})
	forecastsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kortrijk_api_forecasts_failed_total",
		Help: "Total number of forecast runs rejected or failed.",
	})
	forecastDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kortrijk_api_forecast_duration_seconds",
		Help:    "Duration of a full forecast run.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
	})
)

// Orchestrator sequences a forecast run: resolve vacation flags, predict the
// baseline with the model, then run the multiplicative scenario pass. It is
// stateless between requests; the model handle is shared read-only.
type Orchestrator struct {
	model   *Model
	cal     *Calendar
	weather WeatherSource

	// Now is swappable in tests.
	Now func() time.Time
}

func NewOrchestrator(model *Model, cal *Calendar, weather WeatherSource) *Orchestrator {
	return &Orchestrator{model: model, cal: cal, weather: weather, Now: time.Now}
}

// ModelVersion reports the loaded model's version, or "" if none is loaded.
func (o *Orchestrator) ModelVersion() string {
	if o.model == nil {
		return ""
	}
	return o.model.Version
}

// Forecast produces the (baseline, scenario) comparison pair for one street.
// The baseline uses the open/normal identity multipliers but shares the
// scenario's resolved vacation flags: the pair differs only in the parking and
// weather levers. The series starts at the next midnight after Now and covers
// HorizonWeeks whole weeks, hourly, with no gaps.
func (o *Orchestrator) Forecast(ctx context.Context, streetID string, cfg ScenarioConfig) (models.ForecastSeries, models.ForecastSeries, error) {
	start := time.Now()
	defer func() {
		forecastDuration.Observe(time.Since(start).Seconds())
	}()

	if o.model == nil {
		forecastsFailed.Inc()
		return nil, nil, ErrModelUnavailable
	}
	if cfg.HorizonWeeks < MinHorizonWeeks || cfg.HorizonWeeks > MaxHorizonWeeks {
		forecastsFailed.Inc()
		return nil, nil, fmt.Errorf("%w: horizon_weeks %d outside [%d,%d]",
			ErrConfiguration, cfg.HorizonWeeks, MinHorizonWeeks, MaxHorizonWeeks)
	}
	if err := cfg.Validate(); err != nil {
		forecastsFailed.Inc()
		return nil, nil, err
	}

	begin := nextMidnight(o.Now().UTC())
	hours := cfg.HorizonWeeks * 7 * 24

	baseline := make(models.ForecastSeries, hours)
	for i := 0; i < hours; i++ {
		ts := begin.Add(time.Duration(i) * time.Hour)

		vacation, err := o.cal.ResolveVacationFlag(cfg.VacationLevel, ts)
		if err != nil {
			forecastsFailed.Inc()
			return nil, nil, err
		}

		normals := o.weather.NormalsAt(ctx, ts)
		dow := int(ts.Weekday())
		holiday := o.cal.IsHoliday(ts)

		counts, err := o.model.Predict(Features{
			StreetID:         streetID,
			HourOfDay:        ts.Hour(),
			DayOfWeek:        dow,
			IsWeekend:        dow == 0 || dow == 6,
			TemperatureC:     normals.TemperatureC,
			PrecipitationMM:  normals.PrecipitationMM,
			CloudCoverPct:    normals.CloudCoverPct,
			WindSpeedKMH:     normals.WindSpeedKMH,
			IsHoliday:        holiday,
			IsSchoolVacation: vacation,
		})
		if err != nil {
			forecastsFailed.Inc()
			return nil, nil, err
		}

		baseline[i] = models.PredictedHour{
			TS:               ts,
			StreetID:         streetID,
			HourOfDay:        ts.Hour(),
			DayOfWeek:        dow,
			IsWeekend:        dow == 0 || dow == 6,
			CarCount:         counts.Car,
			BikeCount:        counts.Bike,
			PedestrianCount:  counts.Pedestrian,
			HeavyCount:       counts.Heavy,
			TotalPeople:      counts.Car + counts.Bike + counts.Pedestrian + counts.Heavy,
			IsHoliday:        holiday,
			IsSchoolVacation: vacation,
		}
	}

	scenario, err := ApplyScenario(baseline, cfg)
	if err != nil {
		forecastsFailed.Inc()
		return nil, nil, err
	}

	forecastsGenerated.Inc()
	return baseline, scenario, nil
}

// RoadblockSim produces the (normal, roadblock) comparison pair for the 24
// hours of the configured date. The baseline comes from a calendar-neutral
// forecast that covers the date; dates in the past or beyond the maximum
// horizon have no baseline and are ErrDataUnavailable.
func (o *Orchestrator) RoadblockSim(ctx context.Context, cfg RoadblockConfig) (models.ForecastSeries, models.ForecastSeries, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	day, err := time.Parse(dateLayout, cfg.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: roadblock date %q is not YYYY-MM-DD", ErrConfiguration, cfg.Date)
	}

	begin := nextMidnight(o.Now().UTC())
	daysAhead := int(day.Sub(begin).Hours() / 24)
	if daysAhead < 0 || daysAhead >= MaxHorizonWeeks*7 {
		return nil, nil, fmt.Errorf("%w: no baseline coverage for %s", ErrDataUnavailable, cfg.Date)
	}

	weeks := daysAhead/7 + 1
	baseline, _, err := o.Forecast(ctx, cfg.StreetID, ScenarioConfig{
		ParkingLevel:  ParkingOpen,
		WeatherLevel:  WeatherNormal,
		VacationLevel: VacationCalendar,
		HorizonWeeks:  weeks,
	})
	if err != nil {
		return nil, nil, err
	}

	blocked, err := ApplyRoadblock(baseline, cfg)
	if err != nil {
		return nil, nil, err
	}

	return sliceDay(baseline, cfg.Date), sliceDay(blocked, cfg.Date), nil
}

func sliceDay(series models.ForecastSeries, date string) models.ForecastSeries {
	day := make(models.ForecastSeries, 0, 24)
	for _, hour := range series {
		if hour.TS.Format(dateLayout) == date {
			day = append(day, hour)
		}
	}
	return day
}

func nextMidnight(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.Add(24 * time.Hour)
}
