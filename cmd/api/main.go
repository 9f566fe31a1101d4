package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/config"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/forecast"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/handlers"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/middleware"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/models"
	"github.com/Hadi212-sketch/Traffic-Analysis-Kortrijk/services"
)

var defaultStreets = []models.Street{
	{StreetID: "sintmartenslatemlaan", Label: "Sintmartenslatemlaan", SegmentID: "9000008372"},
	{StreetID: "graaf-karel-de-goedelaan", Label: "Graaf Karel De Goedelaan", SegmentID: "9000009940"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql db handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := db.AutoMigrate(&models.HourlyObservation{}, &models.Street{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	seedStreets(db)

	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, caching and live feed disabled: %v", err)
	}
	defer cache.Close()

	model, err := forecast.LoadModel(cfg.Model.WeightsPath)
	if err != nil {
		log.Printf("Model not loaded, forecasts will return 503: %v", err)
		model = nil
	} else {
		if model.Version == "" {
			model.Version = cfg.Model.Version
		}
		log.Printf("model loaded: version=%s streets=%d", model.Version, len(model.Streets))
	}

	store := services.NewObservationStore(db)
	weather := services.NewWeatherNormals(db)
	if err := weather.Refresh(context.Background()); err != nil {
		log.Printf("weather normals refresh failed: %v", err)
	}
	go refreshNormalsLoop(weather)

	orch := forecast.NewOrchestrator(model, forecast.NewBelgianCalendar(), weather)

	obsHandler := handlers.NewObservationsHandler(db, store, cache)
	streetsHandler := handlers.NewStreetsHandler(db, cache)
	forecastHandler := handlers.NewForecastHandler(orch, cache)
	roadblockHandler := handlers.NewRoadblockHandler(orch)
	exportHandler := handlers.NewExportHandler(store)

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "UP",
			"message": "Traffic Analysis Kortrijk API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/streets", streetsHandler.GetStreets)
		api.GET("/traffic", obsHandler.GetObservations)
		api.POST("/traffic", obsHandler.Ingest)
		api.GET("/traffic/export", exportHandler.ExportCSV)
		api.POST("/forecast", forecastHandler.RunForecast)
		api.POST("/roadblock", roadblockHandler.Simulate)
	}

	router.GET("/ws/live", handlers.LiveWebSocket(cache))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func seedStreets(db *gorm.DB) {
	for _, s := range defaultStreets {
		s.UpdatedAt = time.Now().UTC()
		if err := db.Where(models.Street{StreetID: s.StreetID}).FirstOrCreate(&s).Error; err != nil {
			log.Printf("street seed failed for %s: %v", s.StreetID, err)
		}
	}
}

func refreshNormalsLoop(weather *services.WeatherNormals) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := weather.Refresh(context.Background()); err != nil {
			log.Printf("weather normals refresh failed: %v", err)
		}
	}
}
