package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
)

// ObservationStore is the read/write boundary for hourly traffic records.
type ObservationStore struct {
	db *gorm.DB
}

func NewObservationStore(db *gorm.DB) *ObservationStore {
	return &ObservationStore{db: db}
}

// Range returns observations for one street between from and to (inclusive),
// ordered by timestamp ascending. An empty range is an empty slice, not an
// error.
func (s *ObservationStore) Range(ctx context.Context, streetID string, from, to time.Time) ([]models.HourlyObservation, error) {
	var rows []models.HourlyObservation
	err := s.db.WithContext(ctx).
		Where("street_id = ? AND ts >= ? AND ts <= ?", streetID, from, to).
		Order("ts ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query traffic_hourly: %w", err)
	}
	return rows, nil
}

// Upsert stores a batch of observations, replacing rows that share the same
// (ts, street_id) key. Returns the number of rows written.
func (s *ObservationStore) Upsert(ctx context.Context, obs []models.HourlyObservation) (int, error) {
	if len(obs) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ts"}, {Name: "street_id"}},
		UpdateAll: true,
	}).Create(&obs)
	if res.Error != nil {
		return 0, fmt.Errorf("upsert traffic_hourly: %w", res.Error)
	}
	return len(obs), nil
}
