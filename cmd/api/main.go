package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/campus-community/internal/api/http"
	"github.com/spec-kit/campus-community/internal/api/http/handlers"
	"github.com/spec-kit/campus-community/internal/audit"
	"github.com/spec-kit/campus-community/internal/auth"
	"github.com/spec-kit/campus-community/internal/config"
	"github.com/spec-kit/campus-community/internal/events"
	"github.com/spec-kit/campus-community/internal/mail"
	"github.com/spec-kit/campus-community/internal/observability"
	"github.com/spec-kit/campus-community/internal/persistence"
	"github.com/spec-kit/campus-community/internal/repository"
	"github.com/spec-kit/campus-community/internal/service"
	"github.com/spec-kit/campus-community/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	listingRepo := repository.NewListingRepository(pool)
	interestRepo := repository.NewInterestRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	lostFoundRepo := repository.NewLostFoundRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	mailer := mail.NewMailer(cfg.Mail, logger)

	notificationService := service.NewNotificationService(notificationRepo, userRepo, redis.ClientHandle(), logger)
	authService := service.NewAuthService(*cfg, userRepo, dispatcher, logger)
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:      userRepo,
		ListingRepo:   listingRepo,
		InterestRepo:  interestRepo,
		LostFoundRepo: lostFoundRepo,
		Dispatcher:    dispatcher,
	}, logger)
	marketplaceService := service.NewMarketplaceService(service.MarketplaceDependencies{
		ListingRepo:  listingRepo,
		InterestRepo: interestRepo,
		UserRepo:     userRepo,
		Dispatcher:   dispatcher,
	}, logger)
	lostFoundService := service.NewLostFoundService(lostFoundRepo, userRepo, dispatcher, logger)
	auditService := service.NewAuditService(auditRepo)

	worker.StartNotificationWorker(dispatcher, notificationService, mailer, logger)

	if err := authService.EnsureSuperadmin(ctx, cfg.Superadmin); err != nil {
		logger.Fatal("failed to ensure superadmin account", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	auditMiddleware := audit.NewMiddleware(auditRepo, metrics, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:            handlers.NewAuthHandler(authService),
		Admin:           handlers.NewAdminHandler(adminService),
		Marketplace:     handlers.NewMarketplaceHandler(marketplaceService),
		LostFound:       handlers.NewLostFoundHandler(lostFoundService),
		Notifications:   handlers.NewNotificationsHandler(notificationService),
		Audit:           handlers.NewAuditHandler(auditService),
		AuthMiddleware:  authMiddleware,
		AuditMiddleware: auditMiddleware,
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
