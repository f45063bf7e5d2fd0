package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/redemption-service/internal/api/http"
	"github.com/spec-kit/redemption-service/internal/api/http/handlers"
	"github.com/spec-kit/redemption-service/internal/auth"
	"github.com/spec-kit/redemption-service/internal/cache"
	"github.com/spec-kit/redemption-service/internal/config"
	"github.com/spec-kit/redemption-service/internal/events"
	"github.com/spec-kit/redemption-service/internal/observability"
	"github.com/spec-kit/redemption-service/internal/persistence"
	"github.com/spec-kit/redemption-service/internal/repository"
	"github.com/spec-kit/redemption-service/internal/service"
	"github.com/spec-kit/redemption-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	pool := pg.PoolHandle()

	if cfg.Import.Enabled && pool != nil {
		importService := service.NewImportService(pool, dispatcher, logger)
		if _, err := importService.LoadCSV(ctx, cfg.Import.CSVPath); err != nil {
			logger.Fatal("failed to import staff mapping", zap.Error(err))
		}
	}

	directory := repository.NewStaffDirectory(pool)
	ledger := repository.NewRedemptionLedger(pool)
	teamRepo := repository.NewTeamRepository(pool)
	redemptionCache := cache.NewRedemptionCache(redis, logger)

	redemptionService := service.NewRedemptionService(service.RedemptionDependencies{
		Directory:  directory,
		Ledger:     ledger,
		Cache:      redemptionCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	staffService := service.NewStaffService(directory, teamRepo, logger)
	authService := service.NewAuthService(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Staff:          handlers.NewStaffHandler(staffService),
		Redemptions:    handlers.NewRedemptionHandler(redemptionService),
		Admin:          handlers.NewAdminHandler(authService, redemptionService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
