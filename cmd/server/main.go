package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plateful/pricing-service/config"
	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/handlers"
	"github.com/plateful/pricing-service/internal/middleware"
	"github.com/plateful/pricing-service/internal/optimizer"
	"github.com/plateful/pricing-service/internal/pricing"
	"github.com/plateful/pricing-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)
	log.Logger = *logger

	logger.Info().Msg("Starting pricing service")

	ctx := context.Background()

	telemetryCfg := telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	}
	telemetryCleanup, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry disabled")
		telemetryCleanup = func(context.Context) error { return nil }
	}

	if cfg.Catalog.ClientID == "" || cfg.Catalog.ClientSecret == "" {
		logger.Fatal().Msg("Catalog credentials not set")
	}

	catalogClient := catalog.NewClient(cfg.CatalogClientConfig())
	logger.Info().Str("base_url", cfg.Catalog.BaseURL).Msg("Catalog client configured")

	engine := pricing.NewEngine(catalogClient, &cfg.Pricing, pricing.NewMetricsRecorder())
	storeCatalog := optimizer.DefaultStoreCatalog()
	storeOptimizer := optimizer.New(storeCatalog, &cfg.Optimizer, optimizer.NewMetricsRecorder())

	handlers.Init(engine, storeOptimizer, storeCatalog, cfg.Catalog.DefaultLocationID)

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware(cfg.Server.InternalToken))
	internal.Use(middleware.ServiceRateLimitMiddleware(float64(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst))
	{
		internal.GET("/health", handlers.HealthCheck)
		internal.GET("/stores", handlers.ListStores)

		pricingGroup := internal.Group("/pricing")
		{
			pricingGroup.POST("/ingredients", handlers.PriceIngredients)
			pricingGroup.POST("/alternatives", handlers.GetAlternatives)
			pricingGroup.POST("/optimize-stores", handlers.OptimizeStores)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := telemetryCleanup(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "pricing-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
