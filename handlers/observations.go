package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/services"
)

type ObservationsHandler struct {
	db    *gorm.DB
	store *services.ObservationStore
	cache *services.CacheService
}

func NewObservationsHandler(db *gorm.DB, store *services.ObservationStore, cache *services.CacheService) *ObservationsHandler {
	return &ObservationsHandler{db: db, store: store, cache: cache}
}

// GetObservations lists hourly records, newest first, with cursor pagination.
func (h *ObservationsHandler) GetObservations(c *gin.Context) {
	p := ParsePagination(c)
	streetID := c.Query("street_id")

	beforeStr := ""
	if p.Before != nil {
		beforeStr = p.Before.Format(time.RFC3339Nano)
	}
	cacheKey := fmt.Sprintf("traffic:list:%s:%d:%s", streetID, p.Limit, beforeStr)

	var cached CursorResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	query := h.db.Model(&models.HourlyObservation{}).Order("ts DESC").Limit(p.Limit + 1)
	if p.Before != nil {
		query = query.Where("ts < ?", *p.Before)
	}
	if streetID != "" {
		query = query.Where("street_id = ?", streetID)
	}

	var rows []models.HourlyObservation
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].TS.Format(time.RFC3339Nano)
	}

	resp := CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore}
	go h.cache.Set(context.Background(), cacheKey, resp, 5*time.Second)

	c.JSON(http.StatusOK, resp)
}

type IngestRequest struct {
	Observations []models.HourlyObservation `json:"observations" binding:"required"`
}

// Ingest upserts a batch of hourly records and publishes each to the live
// channel. total_people is recomputed server-side so the count invariant
// holds regardless of what the client sent.
func (h *ObservationsHandler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Observations) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "observations must not be empty"})
		return
	}

	for i := range req.Observations {
		obs := &req.Observations[i]
		if obs.StreetID == "" || obs.TS.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "every observation needs street_id and timestamp"})
			return
		}
		if obs.CarCount < 0 || obs.BikeCount < 0 || obs.PedestrianCount < 0 || obs.HeavyCount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode counts must be non-negative"})
			return
		}
		obs.HourOfDay = obs.TS.Hour()
		obs.DayOfWeek = int(obs.TS.Weekday())
		obs.IsWeekend = obs.DayOfWeek == 0 || obs.DayOfWeek == 6
		obs.TotalPeople = obs.CarCount + obs.BikeCount + obs.PedestrianCount + obs.HeavyCount
	}

	stored, err := h.store.Upsert(c.Request.Context(), req.Observations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database write failed"})
		return
	}

	go func(obs []models.HourlyObservation) {
		ctx := context.Background()
		for _, o := range obs {
			if err := h.cache.Publish(ctx, services.LiveChannel, o); err != nil {
				return
			}
		}
	}(req.Observations)

	c.JSON(http.StatusCreated, gin.H{"stored": stored})
}
