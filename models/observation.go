package models

import "time"

// HourlyObservation is one hour of Telraam counts for a street, merged with
// Open-Meteo weather and the Belgian calendar flags.
type HourlyObservation struct {
	TS               time.Time `gorm:"column:ts;primaryKey" json:"timestamp"`
	StreetID         string    `gorm:"column:street_id;primaryKey" json:"street_id"`
	HourOfDay        int       `gorm:"column:hour_of_day" json:"hour_of_day"`
	DayOfWeek        int       `gorm:"column:day_of_week" json:"day_of_week"`
	IsWeekend        bool      `gorm:"column:is_weekend" json:"is_weekend"`
	CarCount         float64   `gorm:"column:car_count" json:"car_count"`
	BikeCount        float64   `gorm:"column:bike_count" json:"bike_count"`
	PedestrianCount  float64   `gorm:"column:pedestrian_count" json:"pedestrian_count"`
	HeavyCount       float64   `gorm:"column:heavy_count" json:"heavy_count"`
	TotalPeople      float64   `gorm:"column:total_people" json:"total_people"`
	TemperatureC     float64   `gorm:"column:temperature_c" json:"temperature_c"`
	PrecipitationMM  float64   `gorm:"column:precipitation_mm" json:"precipitation_mm"`
	CloudCoverPct    float64   `gorm:"column:cloud_cover_pct" json:"cloud_cover_pct"`
	WindSpeedKMH     float64   `gorm:"column:wind_speed_kmh" json:"wind_speed_kmh"`
	IsHoliday        bool      `gorm:"column:is_holiday" json:"is_holiday"`
	IsSchoolVacation bool      `gorm:"column:is_school_vacation" json:"is_school_vacation"`
}

func (HourlyObservation) TableName() string { return "traffic_hourly" }
