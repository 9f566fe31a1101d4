package services

import (
	"context"
	"log"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
	"gorm.io/gorm"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/forecast"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
)

// kortrijkDefaults stand in when no observations exist yet for a
// (month, hour) slot. Rough maritime-climate values.
var kortrijkDefaults = forecast.WeatherNormals{
	TemperatureC:    10.0,
	PrecipitationMM: 0.1,
	CloudCoverPct:   65.0,
	WindSpeedKMH:    14.0,
}

type normalsKey struct {
	Month time.Month
	Hour  int
}

// WeatherNormals serves per-(month, hour-of-day) climatology computed from
// stored observations. Refresh rebuilds the table; NormalsAt is a lookup.
type WeatherNormals struct {
	db *gorm.DB

	mu    sync.RWMutex
	table map[normalsKey]forecast.WeatherNormals
}

func NewWeatherNormals(db *gorm.DB) *WeatherNormals {
	return &WeatherNormals{
		db:    db,
		table: make(map[normalsKey]forecast.WeatherNormals),
	}
}

// Refresh recomputes the climatology table from all stored observations.
func (w *WeatherNormals) Refresh(ctx context.Context) error {
	var rows []models.HourlyObservation
	err := w.db.WithContext(ctx).
		Select("ts", "hour_of_day", "temperature_c", "precipitation_mm", "cloud_cover_pct", "wind_speed_kmh").
		Find(&rows).Error
	if err != nil {
		return err
	}

	type sample struct {
		temp, precip, cloud, wind []float64
	}
	samples := make(map[normalsKey]*sample)
	for _, r := range rows {
		k := normalsKey{Month: r.TS.Month(), Hour: r.HourOfDay}
		s, ok := samples[k]
		if !ok {
			s = &sample{}
			samples[k] = s
		}
		s.temp = append(s.temp, r.TemperatureC)
		s.precip = append(s.precip, r.PrecipitationMM)
		s.cloud = append(s.cloud, r.CloudCoverPct)
		s.wind = append(s.wind, r.WindSpeedKMH)
	}

	table := make(map[normalsKey]forecast.WeatherNormals, len(samples))
	for k, s := range samples {
		table[k] = forecast.WeatherNormals{
			TemperatureC:    stat.Mean(s.temp, nil),
			PrecipitationMM: stat.Mean(s.precip, nil),
			CloudCoverPct:   stat.Mean(s.cloud, nil),
			WindSpeedKMH:    stat.Mean(s.wind, nil),
		}
	}

	w.mu.Lock()
	w.table = table
	w.mu.Unlock()

	log.Printf("weather normals refreshed: %d (month,hour) slots from %d observations", len(table), len(rows))
	return nil
}

// NormalsAt returns the climatology for the hour's (month, hour-of-day) slot,
// falling back to fixed defaults when the slot has no history.
func (w *WeatherNormals) NormalsAt(_ context.Context, t time.Time) forecast.WeatherNormals {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if n, ok := w.table[normalsKey{Month: t.Month(), Hour: t.Hour()}]; ok {
		return n
	}
	return kortrijkDefaults
}
