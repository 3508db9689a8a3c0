package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/forgebay/escrow/internal/pkg/config"
	"github.com/forgebay/escrow/internal/pkg/database"
	"github.com/forgebay/escrow/internal/pkg/health"
	"github.com/forgebay/escrow/internal/pkg/locker"
	"github.com/forgebay/escrow/internal/pkg/logger"
	"github.com/forgebay/escrow/internal/pkg/middleware"
	natspkg "github.com/forgebay/escrow/internal/pkg/nats"
	"github.com/forgebay/escrow/internal/pkg/server"
	"github.com/forgebay/escrow/internal/pkg/solana"
	"github.com/forgebay/escrow/services/escrow/gateway"
	"github.com/forgebay/escrow/services/escrow/handler"
	"github.com/forgebay/escrow/services/escrow/repository"
	"github.com/forgebay/escrow/services/escrow/usecase"
)

func main() {
	cfg := config.InitConfig(".env")

	zapLogger, err := logger.InitZapLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Close()

	postgres, err := database.NewPostgresClient(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgres.Close()

	redis, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redis.Close()

	natsClient, err := natspkg.NewClient(cfg.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	settlement, err := solana.NewClient(cfg.Solana, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize settlement client", logger.Err(err))
	}

	repo := repository.NewEscrowRepo(cfg, postgres.GetDB())
	notificationGW := gateway.NewNotificationGW(natsClient)
	jobLocker := locker.NewRedisLocker(redis)

	escrowUC := usecase.NewEscrowUC(cfg, repo, repo, settlement, notificationGW, jobLocker)
	escrowHandler := handler.NewEscrowHandler(cfg, escrowUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, cfg.App.Name)
	escrowHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, cfg.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server error", logger.Err(err))
	}
}
