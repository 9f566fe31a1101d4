package models

import "time"

// PredictedHour mirrors HourlyObservation for model output: the counts are
// predictions, not sensor readings.
type PredictedHour struct {
	TS               time.Time `json:"timestamp"`
	StreetID         string    `json:"street_id"`
	HourOfDay        int       `json:"hour_of_day"`
	DayOfWeek        int       `json:"day_of_week"`
	IsWeekend        bool      `json:"is_weekend"`
	CarCount         float64   `json:"car_count"`
	BikeCount        float64   `json:"bike_count"`
	PedestrianCount  float64   `json:"pedestrian_count"`
	HeavyCount       float64   `json:"heavy_count"`
	TotalPeople      float64   `json:"total_people"`
	IsHoliday        bool      `json:"is_holiday"`
	IsSchoolVacation bool      `json:"is_school_vacation"`
}

// ForecastSeries is a contiguous hourly sequence, non-decreasing by timestamp.
type ForecastSeries []PredictedHour
