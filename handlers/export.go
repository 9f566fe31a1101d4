package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/services"
)

const exportDateLayout = "2006-01-02"

// csvColumns is the fixed export column order.
var csvColumns = []string{
	"timestamp", "street_id", "hour_of_day", "day_of_week", "is_weekend",
	"car_count", "bike_count", "pedestrian_count", "heavy_count", "total_people",
	"temperature_c", "precipitation_mm", "cloud_cover_pct", "wind_speed_kmh",
	"is_holiday", "is_school_vacation",
}

type ExportHandler struct {
	store *services.ObservationStore
}

func NewExportHandler(store *services.ObservationStore) *ExportHandler {
	return &ExportHandler{store: store}
}

// ExportCSV streams the filtered observations as a CSV attachment named
// traffic_data_{street}_{start}_{end}.csv.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	streetID := c.Query("street_id")
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if streetID == "" || fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "street_id, from and to are required"})
		return
	}

	from, err := time.Parse(exportDateLayout, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(exportDateLayout, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	// Range is inclusive of the last day's hours.
	rows, err := h.store.Range(c.Request.Context(), streetID, from, to.Add(24*time.Hour-time.Second))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	filename := fmt.Sprintf("traffic_data_%s_%s_%s.csv", streetID, fromStr, toStr)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(csvColumns); err != nil {
		return
	}
	for _, obs := range rows {
		if err := w.Write(csvRecord(obs)); err != nil {
			return
		}
	}
	w.Flush()
}

func csvRecord(o models.HourlyObservation) []string {
	return []string{
		o.TS.Format(time.RFC3339),
		o.StreetID,
		strconv.Itoa(o.HourOfDay),
		strconv.Itoa(o.DayOfWeek),
		strconv.FormatBool(o.IsWeekend),
		formatCount(o.CarCount),
		formatCount(o.BikeCount),
		formatCount(o.PedestrianCount),
		formatCount(o.HeavyCount),
		formatCount(o.TotalPeople),
		formatCount(o.TemperatureC),
		formatCount(o.PrecipitationMM),
		formatCount(o.CloudCoverPct),
		formatCount(o.WindSpeedKMH),
		strconv.FormatBool(o.IsHoliday),
		strconv.FormatBool(o.IsSchoolVacation),
	}
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
