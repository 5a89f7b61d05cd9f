package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/listing-admin/internal/api/http"
	"github.com/spec-kit/listing-admin/internal/api/http/handlers"
	"github.com/spec-kit/listing-admin/internal/auth"
	"github.com/spec-kit/listing-admin/internal/cache"
	"github.com/spec-kit/listing-admin/internal/config"
	"github.com/spec-kit/listing-admin/internal/events"
	"github.com/spec-kit/listing-admin/internal/notification"
	"github.com/spec-kit/listing-admin/internal/observability"
	"github.com/spec-kit/listing-admin/internal/persistence"
	"github.com/spec-kit/listing-admin/internal/repository"
	"github.com/spec-kit/listing-admin/internal/service"
	"github.com/spec-kit/listing-admin/internal/worker"
	"github.com/spec-kit/listing-admin/migrations"
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
		if err := persistence.RunMigrations(ctx, pg.Pool, migrations.FS, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pg.Pool)
	staffRepo := repository.NewStaffRepository(pg.Pool)
	activityRepo := repository.NewActivityRepository(pg.Pool)
	dashboardRepo := repository.NewDashboardRepository(pg.Pool)

	dispatcher := events.NewInMemoryDispatcher(logger)

	memQueue := notification.NewMemoryQueue(cfg.Notification.QueueSize)
	queue, err := notification.SelectQueue(ctx, cfg.Notification.QueueDriver, rdb.Client, memQueue)
	if err != nil {
		logger.Warn("redis queue unavailable; using the in-memory queue", zap.Error(err))
	}

	deliverer := notification.NewDeliverer(notification.NewSMTPMailer(cfg.SMTP), notification.Branding{
		AppName:  cfg.App.Name,
		LoginURL: notification.LoginURL(cfg.App.PublicURL),
		LogoURL:  cfg.App.LogoURL,
		Year:     time.Now().Year(),
	})
	if !cfg.SMTP.Configured() {
		logger.Warn("smtp credentials missing; welcome emails will fail to send")
	}
	mailWorker := worker.NewNotificationWorker(queue, deliverer, logger, cfg.Notification.Workers, cfg.Notification.SendTimeout())
	mailWorker.Start(ctx)

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  userRepo,
		StaffRepo: staffRepo,
		Hasher:    hasher,
		Tokens:    tokens,
		Logger:    logger,
	})
	userService := service.NewUserService(*cfg, service.UserDependencies{
		UserRepo:   userRepo,
		Hasher:     hasher,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	staffService := service.NewStaffService(*cfg, service.StaffDependencies{
		StaffRepo:  staffRepo,
		UserRepo:   userRepo,
		Hasher:     hasher,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		DashboardRepo: dashboardRepo,
		ActivityRepo:  activityRepo,
		Cache:         cache.NewStatsCache(rdb.Client, cfg.Dashboard.StatsCacheTTL()),
		Logger:        logger,
	})
	notificationService := service.NewNotificationService(dispatcher, queue, deliverer, logger)

	notificationService.RegisterHandlers()
	service.NewActivityRecorder(activityRepo, logger).RegisterHandlers(dispatcher)
	dashboardService.RegisterHandlers(dispatcher)

	if _, err := staffService.EnsureBootstrapAdmin(ctx, cfg.Bootstrap); err != nil {
		logger.Fatal("failed to seed bootstrap admin", zap.Error(err))
	}
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("AUTH_JWT_SECRET not set; using the development default")
	}
	if !cfg.Auth.ProtectAdminRoutes {
		logger.Warn("admin routes are not protected by authentication")
	}

	production := cfg.App.IsProduction()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, production),
	})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:     logger,
		Metrics:    metrics,
		Timeout:    cfg.App.RequestTimeout(),
		CORSOrigin: cfg.App.CORSOrigin,
		Production: production,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rdb, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Staff:          handlers.NewStaffHandler(staffService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Email:          handlers.NewEmailHandler(notificationService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		ProtectAdmin:   cfg.Auth.ProtectAdminRoutes,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	memQueue.Close()
	mailWorker.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
