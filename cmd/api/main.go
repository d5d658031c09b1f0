// @title Grocery Price Service API
// @version 1.0
// @description Aggregates supermarket prices per product, compares shopping baskets across chains and forecasts price trends.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"grocery-price-service/internal/application/services"
	"grocery-price-service/internal/domain/interfaces"
	"grocery-price-service/internal/infrastructure/config"
	"grocery-price-service/internal/infrastructure/logging"
	"grocery-price-service/internal/infrastructure/metrics"
	"grocery-price-service/internal/infrastructure/ratelimit"
	"grocery-price-service/internal/infrastructure/repositories/cache"
	"grocery-price-service/internal/infrastructure/repositories/history"
	"grocery-price-service/internal/infrastructure/scheduler"
	"grocery-price-service/internal/infrastructure/source"
	"grocery-price-service/internal/infrastructure/web/handlers"
	"grocery-price-service/internal/infrastructure/web/router"
	"grocery-price-service/internal/infrastructure/web/server"
)

const version = "1.0.0"

func main() {
	// .env es opcional; las variables del entorno tienen prioridad
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	environment := config.GetEnvironment()
	cfg, err := config.NewLoader().LoadForEnvironment(environment)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	loggerConfig := logging.NewConfig(logging.ServiceName, version, environment).
		WithLevel(logging.LogLevelFromString(cfg.Logging.Level)).
		WithFormat(logging.LogFormatFromString(cfg.Logging.Format))
	if cfg.Development.DebugMode {
		loggerConfig = logging.NewDevelopmentConfig(logging.ServiceName)
	}
	loggerConfig.WithOutput(logging.OutputFromString(cfg.Logging.Output))
	if err := logging.InitializeGlobalLoggers(loggerConfig); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRequestID(ctx, logging.GenerateShortRequestID())

	metrics.SetApplicationInfo(version, environment)

	logging.Info(ctx, "Starting grocery price service", logging.Fields{
		"environment":   environment,
		"cache_backend": cfg.Cache.Backend,
		"history":       cfg.History.Driver,
		"offline_mode":  cfg.Development.OfflineMode,
	})

	quoteCache, err := cache.NewFactory().CreateCache(ctx, cache.Config{
		Type:       cache.CacheType(cfg.Cache.Backend),
		DefaultTTL: cfg.Cache.TTL,
		RedisAddr:  cfg.Cache.Redis.Addr,
		RedisDB:    cfg.Cache.Redis.DB,
		Password:   cfg.Cache.Redis.Password,
		KeyPrefix:  cfg.Cache.KeyPrefix,
	})
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to create cache", err, nil)
		os.Exit(1)
	}

	// sin source el servicio responde sólo con estimaciones
	var priceSource interfaces.PriceSource
	if !cfg.Development.OfflineMode {
		client, err := source.NewClient(source.Config{
			BaseURL:           cfg.Source.BaseURL,
			SlugSuffix:        cfg.Source.SlugSuffix,
			Timeout:           cfg.Source.Timeout,
			UserAgent:         cfg.Source.UserAgent,
			RequestsPerSecond: cfg.Source.RequestsPerSecond,
			Burst:             cfg.Source.Burst,
			QuoteTTL:          cfg.Cache.TTL,
			MaxBodyBytes:      cfg.Source.MaxBodyBytes,
		}, quoteCache)
		if err != nil {
			logging.ErrorWithError(ctx, "Failed to create price source client", err, nil)
			os.Exit(1)
		}
		priceSource = client
	} else {
		logging.Warn(ctx, "Offline mode: every price will be an estimate", nil)
	}

	estimator := services.NewEstimator(services.WithJitter(cfg.Estimator.JitterMin, cfg.Estimator.JitterMax))
	priceService := services.NewPriceService(priceSource, estimator, quoteCache)
	basketService := services.NewBasketService(priceService, cfg.Basket.BatchSize, cfg.Basket.BatchDelay)
	alertService := services.NewAlertService(priceService)

	historyStore, err := history.New(ctx, history.Config{
		Driver: cfg.History.Driver,
		DSN:    cfg.History.DSN,
	})
	if err != nil {
		// sin histórico sólo se pierde /api/v1/trends y el snapshot
		logging.ErrorWithError(ctx, "Price history unavailable", err, logging.Fields{
			"driver": cfg.History.Driver,
		})
		historyStore = nil
	}
	trendService := services.NewTrendService(historyStore, cfg.History.DefaultDays)

	var snapshotJob *scheduler.SnapshotJob
	if cfg.Snapshot.Enabled && historyStore != nil {
		snapshotJob, err = scheduler.NewSnapshotJob(scheduler.Config{
			Spec:       cfg.Snapshot.Spec,
			Watchlist:  cfg.Snapshot.Watchlist,
			RunTimeout: cfg.Snapshot.RunTimeout,
		}, priceService, historyStore, alertService)
		if err != nil {
			logging.ErrorWithError(ctx, "Failed to create snapshot job", err, nil)
			os.Exit(1)
		}
		if err := snapshotJob.Start(); err != nil {
			logging.ErrorWithError(ctx, "Failed to start snapshot job", err, nil)
			os.Exit(1)
		}
	}

	rateLimiter := ratelimit.NewRateLimitMiddleware(cfg.RateLimit)
	rateLimiter.StartCleanup(ctx, time.Minute)

	httpHandler := router.New(router.Handlers{
		Health: handlers.NewHealthHandler(quoteCache, historyStore),
		Prices: handlers.NewPriceHandler(priceService),
		Basket: handlers.NewBasketHandler(basketService),
		Trends: handlers.NewTrendHandler(trendService),
		Alerts: handlers.NewAlertHandler(alertService),
		Stream: handlers.NewStreamHandler(priceService, handlers.DefaultStreamInterval),
	}, rateLimiter, cfg.Auth)

	srv := server.NewServer(httpHandler, cfg.Server)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logging.Info(context.Background(), "Shutdown signal received", nil)
	case err := <-serverErr:
		if err != nil {
			logging.ErrorWithError(ctx, "HTTP server failed", err, nil)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logging.ErrorWithError(shutdownCtx, "Server forced to shutdown", err, nil)
	}
	if snapshotJob != nil {
		if err := snapshotJob.Stop(shutdownCtx); err != nil {
			logging.WarnWithError(shutdownCtx, "Snapshot job did not stop in time", err, nil)
		}
	}
	if historyStore != nil {
		if err := historyStore.Close(); err != nil {
			logging.WarnWithError(shutdownCtx, "Failed to close price history", err, nil)
		}
	}

	logging.Info(shutdownCtx, "Server exited", nil)
}
