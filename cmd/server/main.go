package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"driveshare/internal/config"
	"driveshare/internal/handlers"
	"driveshare/internal/middleware"
	"driveshare/internal/models"
	"driveshare/internal/repositories/interfaces"
	"driveshare/internal/repositories/memory"
	"driveshare/internal/repositories/mongodb"
	"driveshare/internal/services"
	"driveshare/pkg/cache"
	"driveshare/pkg/database"
	"driveshare/pkg/geo"
	"driveshare/pkg/logger"
	"driveshare/pkg/pricing"
	"driveshare/pkg/risk"
	"driveshare/routes"
)

// seedMarketData loads illustrative market observations so demo mode prices
// against realistic conditions instead of empty data.
func seedMarketData(repo *memory.MarketDataRepository, log *logger.Logger) {
	stats := []*models.MarketStat{
		{City: "San Salvador", VehicleType: pricing.VehicleTypeSedan, AverageDailyRate: 52, DemandLevel: pricing.DemandLevelHigh, CompetitorCount: 18},
		{City: "San Salvador", VehicleType: pricing.VehicleTypeSUV, AverageDailyRate: 68, DemandLevel: pricing.DemandLevelHigh, CompetitorCount: 14},
		{City: "San Salvador", VehicleType: pricing.VehicleTypeCompact, AverageDailyRate: 38, DemandLevel: pricing.DemandLevelMedium, CompetitorCount: 22},
		{City: "Santa Ana", VehicleType: pricing.VehicleTypeSedan, AverageDailyRate: 44, DemandLevel: pricing.DemandLevelMedium, CompetitorCount: 7},
		{City: "San Miguel", VehicleType: pricing.VehicleTypeTruck, AverageDailyRate: 61, DemandLevel: pricing.DemandLevelLow, CompetitorCount: 4},
		{City: "La Libertad", VehicleType: pricing.VehicleTypeSUV, AverageDailyRate: 72, DemandLevel: pricing.DemandLevelHigh, CompetitorCount: 9},
	}

	ctx := context.Background()
	for _, stat := range stats {
		if err := repo.Upsert(ctx, stat); err != nil {
			log.WithError(err).Warn("Failed to seed market stat")
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: config.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	var (
		listingRepo interfaces.ListingRepository
		bookingRepo interfaces.BookingRepository
		userRepo    interfaces.UserRepository
		marketRepo  interfaces.MarketDataRepository
		mongoDB     *database.MongoDB
	)

	switch cfg.App.DataStore {
	case "mongodb":
		mongoDB, err = database.NewMongoDB(&database.DatabaseConfig{
			URI:            cfg.Database.URI,
			Database:       cfg.Database.Database,
			MaxPoolSize:    cfg.Database.MaxPoolSize,
			MinPoolSize:    cfg.Database.MinPoolSize,
			ConnectTimeout: cfg.Database.ConnectTimeout,
			SocketTimeout:  cfg.Database.SocketTimeout,
		})
		if err != nil {
			appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoDB.Close()

		indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := mongoDB.EnsureIndexes(indexCtx); err != nil {
			appLogger.WithError(err).Warn("Failed to ensure indexes")
		}
		cancel()

		listingRepo = mongodb.NewListingRepository(mongoDB.Database)
		bookingRepo = mongodb.NewBookingRepository(mongoDB.Database)
		userRepo = mongodb.NewUserRepository(mongoDB.Database)
		marketRepo = mongodb.NewMarketDataRepository(mongoDB.Database)
		appLogger.Info("Using MongoDB data store")
	default:
		listingRepo = memory.NewListingRepository()
		bookingRepo = memory.NewBookingRepository()
		userRepo = memory.NewUserRepository()
		memMarket := memory.NewMarketDataRepository()
		seedMarketData(memMarket, appLogger)
		marketRepo = memMarket
		appLogger.Info("Using in-memory data store")
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	var geocoder geo.Geocoder = geo.NoopGeocoder{}
	if cfg.Maps.Enabled && cfg.Maps.APIKey != "" {
		googleGeocoder, err := geo.NewGoogleGeocoder(cfg.Maps.APIKey)
		if err != nil {
			appLogger.WithError(err).Warn("Failed to initialize geocoder")
		} else {
			geocoder = googleGeocoder
		}
	}

	pricingEngine := pricing.NewEngine(cfg.Pricing.EngineConfig())
	riskScorer := risk.NewScorer(cfg.Risk.ScorerConfig())

	pricingService := services.NewPricingService(pricingEngine, listingRepo, userRepo, marketRepo, redisCache, cfg.Redis.SnapshotTTL, appLogger)
	bookingService := services.NewBookingService(bookingRepo, listingRepo, userRepo, riskScorer, appLogger)
	listingService := services.NewListingService(listingRepo, redisCache, geocoder, appLogger)

	pricingHandler := handlers.NewPricingHandler(pricingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	listingHandler := handlers.NewListingHandler(listingService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	v1 := router.Group("/api/v1")
	{
		routes.SetupPricingRoutes(v1, pricingHandler, cfg.Security.JWTSecret)
		routes.SetupBookingRoutes(v1, bookingHandler, cfg.Security.JWTSecret)
		routes.SetupListingRoutes(v1, listingHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting server on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}
