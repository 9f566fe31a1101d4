package models

import "time"

type Street struct {
	StreetID  string    `gorm:"column:street_id;primaryKey" json:"street_id"`
	Label     string    `gorm:"column:label" json:"label"`
	SegmentID string    `gorm:"column:segment_id" json:"segment_id"`
	Lat       *float64  `gorm:"column:lat" json:"lat"`
	Lng       *float64  `gorm:"column:lng" json:"lng"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Street) TableName() string { return "streets" }
