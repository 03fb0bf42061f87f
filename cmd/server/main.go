package main // Entry point package

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/gate-pass-service/internal/config"
	"github.com/iliyamo/gate-pass-service/internal/database"
	"github.com/iliyamo/gate-pass-service/internal/handler"
	"github.com/iliyamo/gate-pass-service/internal/logger"
	"github.com/iliyamo/gate-pass-service/internal/middleware"
	"github.com/iliyamo/gate-pass-service/internal/queue"
	"github.com/iliyamo/gate-pass-service/internal/repository"
	"github.com/iliyamo/gate-pass-service/internal/router"
	"github.com/iliyamo/gate-pass-service/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real environment wins

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	accounts := repository.NewAccountRepo(db)
	vehicles := repository.NewVehicleRepo(db)

	// Seed the superadmin before serving a single request: login is
	// useless on first boot without it.
	if err := service.EnsureSuperAdmin(context.Background(), accounts, cfg); err != nil {
		log.Fatalf("bootstrap superadmin: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and search cache disabled")
	}

	if cfg.EventConsumer {
		go queue.StartPassEventConsumer()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	authH := handler.NewAuthHandler(cfg, accounts)
	vehicleH := handler.NewVehicleHandler(vehicles, queue.AMQP{})

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterVehicles(e, vehicleH, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Infof("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
