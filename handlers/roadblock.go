package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/forecast"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
)

type RoadblockHandler struct {
	orch *forecast.Orchestrator
}

func NewRoadblockHandler(orch *forecast.Orchestrator) *RoadblockHandler {
	return &RoadblockHandler{orch: orch}
}

type RoadblockRequest struct {
	StreetID  string `json:"street_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartHour *int   `json:"start_hour" binding:"required"`
	EndHour   *int   `json:"end_hour" binding:"required"`
}

type RoadblockResponse struct {
	StreetID  string                `json:"street_id"`
	Date      string                `json:"date"`
	StartHour int                   `json:"start_hour"`
	EndHour   int                   `json:"end_hour"`
	Normal    models.ForecastSeries `json:"normal"`
	Roadblock models.ForecastSeries `json:"roadblock"`
}

// Simulate compares one day of baseline traffic against the same day with
// the roadblock reductions applied inside the hour window.
func (h *RoadblockHandler) Simulate(c *gin.Context) {
	var req RoadblockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := forecast.RoadblockConfig{
		StreetID:  req.StreetID,
		Date:      req.Date,
		StartHour: *req.StartHour,
		EndHour:   *req.EndHour,
	}

	normal, blocked, err := h.orch.RoadblockSim(c.Request.Context(), cfg)
	if err != nil {
		respondForecastError(c, err)
		return
	}

	c.JSON(http.StatusOK, RoadblockResponse{
		StreetID:  cfg.StreetID,
		Date:      cfg.Date,
		StartHour: cfg.StartHour,
		EndHour:   cfg.EndHour,
		Normal:    normal,
		Roadblock: blocked,
	})
}
