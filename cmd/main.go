package main

import (
	"billing/internal/api"
	"billing/internal/config"
	"billing/internal/ledger"
	"billing/internal/middleware"
	"billing/internal/roster"
	"billing/internal/service"
	"billing/pkg"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, _ := zap.NewProduction()
	if cfg.Environment == "development" {
		zapLogger, _ = zap.NewDevelopment()
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(zapLogger)
	logger := pkg.NewZapLogger(zapLogger)

	entries, err := roster.Load(cfg.Roster.Path)
	if err != nil {
		log.Fatalf("Failed to load user roster: %v", err)
	}

	registry, err := ledger.NewRegistry(entries)
	if err != nil {
		log.Fatalf("Failed to build user registry: %v", err)
	}
	coinLedger := ledger.NewLedger()

	billingService := service.NewBillingService(registry, coinLedger, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(zapLogger))
	e.Use(middleware.RateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))

	handlers := &api.Handlers{
		BillingService: billingService,
		Logger:         logger,
	}

	api.RegisterHandlers(e, handlers)

	port := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("Starting server",
		zap.String("port", cfg.Server.Port),
		zap.Int("users", registry.Count()))
	if err := e.Start(port); err != nil {
		logger.Error("Failed to run server", zap.Error(err))
	}
}
