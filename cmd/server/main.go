package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ev-route-service/internal/adapters/cache"
	"ev-route-service/internal/adapters/directions"
	"ev-route-service/internal/adapters/elevation"
	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/adapters/weather"
	"ev-route-service/internal/api"
	"ev-route-service/internal/config"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/db"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Mapbox, elevation, weather) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logger := initLogger(cfg.Debug)
	defer logger.Sync()
	// obs.Time logs through the global logger.
	zap.ReplaceGlobals(logger)

	logger.Info("starting ev-route-service", zap.String("port", cfg.ServerPort))

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer database.Close()

	store := repositories.NewPostgresChargerStore(database)

	var elevCache ports.ElevationCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		elevCache = cache.NewRedisElevationCache(redis.NewClient(opts), logger)
		logger.Info("elevation cache: redis", zap.String("addr", opts.Addr))
	} else {
		elevCache = cache.NewMemoryElevationCache(cfg.ElevationCacheSize)
		logger.Info("elevation cache: in-memory", zap.Int("max_size", cfg.ElevationCacheSize))
	}

	directionsProvider, err := directions.NewMapboxDirectionsProvider(cfg.DirectionsToken, logger)
	if err != nil {
		logger.Fatal("DIRECTIONS_ACCESS_TOKEN is required", zap.Error(err))
	}

	elevationClient := elevation.NewClient(
		cfg.ElevationBaseURL,
		cfg.ElevationAPIKey,
		elevCache,
		cfg.ElevationCacheTTL,
		logger,
	)

	var weatherProvider ports.WeatherProvider
	if cfg.WeatherAPIKey != "" {
		weatherProvider = weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, logger)
	} else {
		logger.Warn("WEATHER_API_KEY not set, responses will omit weather")
	}

	locator := &services.ChargerLocator{
		Store:    store,
		MinLevel: domain.VerificationLevel(cfg.ChargerMinVerification),
		Logger:   logger,
	}

	routeService := &services.RouteService{
		Directions:  directionsProvider,
		Elevations:  elevationClient,
		Chargers:    locator,
		Weather:     weatherProvider,
		Logger:      logger,
		MaxDetourKm: cfg.MaxDetourKm,
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(logger, routeService, locator)

	// Write timeout is tuned for cold-cache route computation (several
	// provider round trips with backoff).
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func initLogger(debug bool) *zap.Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, _ := cfg.Build()
	return logger
}
