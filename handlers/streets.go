package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/services"
)

type StreetsHandler struct {
	db    *gorm.DB
	cache *services.CacheService
}

func NewStreetsHandler(db *gorm.DB, cache *services.CacheService) *StreetsHandler {
	return &StreetsHandler{db: db, cache: cache}
}

func (h *StreetsHandler) GetStreets(c *gin.Context) {
	const cacheKey = "streets:all"

	var cached struct {
		Data []models.Street `json:"data"`
	}
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var streets []models.Street
	if err := h.db.Order("street_id").Find(&streets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	resp := gin.H{"data": streets}
	go h.cache.Set(context.Background(), cacheKey, resp, 60*time.Second)

	c.JSON(http.StatusOK, resp)
}
