package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/forecast"
)

// respondForecastError maps the forecast error taxonomy onto HTTP statuses.
// Errors are surfaced as-is; there is no fallback to a default scenario.
func respondForecastError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, forecast.ErrConfiguration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, forecast.ErrDataUnavailable):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, forecast.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "forecast failed"})
	}
}
