package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/facility-complaints/internal/api/http"
	"github.com/spec-kit/facility-complaints/internal/api/http/handlers"
	"github.com/spec-kit/facility-complaints/internal/auth"
	"github.com/spec-kit/facility-complaints/internal/config"
	"github.com/spec-kit/facility-complaints/internal/events"
	"github.com/spec-kit/facility-complaints/internal/observability"
	"github.com/spec-kit/facility-complaints/internal/persistence"
	"github.com/spec-kit/facility-complaints/internal/repository"
	"github.com/spec-kit/facility-complaints/internal/service"
	"github.com/spec-kit/facility-complaints/internal/worker"
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

	var repos repository.Repositories
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(pg.Pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		repos = repository.NewPostgresRepositories(pg.Pool)
	} else {
		repos = repository.NewMemoryStore().Repositories()
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	var publisher *events.RedisPublisher
	if redis.Enabled() {
		publisher = events.NewRedisPublisher(redis.Client, cfg.Notification.RedisChannel)
	}
	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, publisher, metrics, logger)
	notifier := worker.StartNotificationWorker(dispatcher, notifications, logger)

	authService := service.NewAuthService(cfg.Auth, repos.Users, logger)
	if cfg.Auth.BootstrapUsername != "" && cfg.Auth.BootstrapPassword != "" {
		if _, err := authService.EnsureUser(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword, true); err != nil {
			logger.Fatal("failed to bootstrap staff user", zap.Error(err))
		}
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.Users)

	roomService := service.NewRoomService(repos.Rooms, logger)
	departmentService := service.NewDepartmentService(repos.Departments)
	categoryService := service.NewIssueCategoryService(repos.IssueCategories)
	complaintService := service.NewComplaintService(repos.Complaints, notifier, logger)
	reportService := service.NewReportService(repos.Complaints, cfg.Report.Location())

	paginator := handlers.NewPaginator(cfg.Pagination)
	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout(), httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:            handlers.NewAuthHandler(authService),
		Rooms:           handlers.NewRoomsHandler(roomService, paginator),
		Departments:     handlers.NewDepartmentsHandler(departmentService, paginator),
		IssueCategories: handlers.NewIssueCategoriesHandler(categoryService, paginator),
		Complaints:      handlers.NewComplaintsHandler(complaintService, paginator, time.Now),
		Reports:         handlers.NewReportHandler(reportService, complaintService, paginator),
		TAT:             handlers.NewTATHandler(reportService, paginator, logger, time.Now),
		AuthMiddleware:  authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("report_timezone", cfg.Report.TimeZone))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := notifier.Stop(shutdownCtx); err != nil {
		logger.Warn("notification worker shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
