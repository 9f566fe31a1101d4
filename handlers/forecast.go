package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/forecast"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/services"
)

const forecastCacheTTL = 5 * time.Minute

type ForecastHandler struct {
	orch  *forecast.Orchestrator
	cache *services.CacheService
}

func NewForecastHandler(orch *forecast.Orchestrator, cache *services.CacheService) *ForecastHandler {
	return &ForecastHandler{orch: orch, cache: cache}
}

type ForecastRequest struct {
	StreetID      string `json:"street_id" binding:"required"`
	ParkingLevel  string `json:"parking_level"`
	WeatherLevel  string `json:"weather_level"`
	VacationLevel string `json:"vacation_level"`
	HorizonWeeks  int    `json:"horizon_weeks" binding:"required"`
}

type ForecastResponse struct {
	RunID        string                  `json:"run_id"`
	ModelVersion string                  `json:"model_version"`
	StreetID     string                  `json:"street_id"`
	Config       forecast.ScenarioConfig `json:"config"`
	Baseline     models.ForecastSeries   `json:"baseline"`
	Scenario     models.ForecastSeries   `json:"scenario"`
}

// RunForecast produces the (baseline, scenario) pair for a street. Results
// are memoized in redis keyed by street, lever levels, horizon and model
// version, never by ambient session state.
func (h *ForecastHandler) RunForecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := forecast.ScenarioConfig{
		ParkingLevel:  defaultLevel(req.ParkingLevel, forecast.ParkingOpen),
		WeatherLevel:  defaultLevel(req.WeatherLevel, forecast.WeatherNormal),
		VacationLevel: defaultLevel(req.VacationLevel, forecast.VacationCalendar),
		HorizonWeeks:  req.HorizonWeeks,
	}

	cacheKey := fmt.Sprintf("forecast:%s:%s:%s:%s:%d:%s",
		req.StreetID, cfg.ParkingLevel, cfg.WeatherLevel, cfg.VacationLevel,
		cfg.HorizonWeeks, h.orch.ModelVersion())

	var cached ForecastResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.RunID != "" {
		c.JSON(http.StatusOK, cached)
		return
	}

	baseline, scenario, err := h.orch.Forecast(c.Request.Context(), req.StreetID, cfg)
	if err != nil {
		respondForecastError(c, err)
		return
	}

	resp := ForecastResponse{
		RunID:        uuid.NewString(),
		ModelVersion: h.orch.ModelVersion(),
		StreetID:     req.StreetID,
		Config:       cfg,
		Baseline:     baseline,
		Scenario:     scenario,
	}
	go h.cache.Set(context.Background(), cacheKey, resp, forecastCacheTTL)

	c.JSON(http.StatusOK, resp)
}

func defaultLevel(level, fallback string) string {
	if level == "" {
		return fallback
	}
	return level
}
