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

	httptransport "github.com/spec-kit/bizops-service/internal/api/http"
	"github.com/spec-kit/bizops-service/internal/api/http/handlers"
	"github.com/spec-kit/bizops-service/internal/auth"
	"github.com/spec-kit/bizops-service/internal/config"
	"github.com/spec-kit/bizops-service/internal/events"
	"github.com/spec-kit/bizops-service/internal/mailer"
	"github.com/spec-kit/bizops-service/internal/observability"
	"github.com/spec-kit/bizops-service/internal/persistence"
	"github.com/spec-kit/bizops-service/internal/repository"
	"github.com/spec-kit/bizops-service/internal/service"
	"github.com/spec-kit/bizops-service/internal/worker"
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

	if cfg.Auth.UsesDefaultJWTSecret() {
		logger.Warn("AUTH_JWT_SECRET is not set; using the built-in development secret. DO NOT run production like this.")
	}

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
	workerRepo := repository.NewWorkerRepository(pool)
	resetRepo := repository.NewResetTokenRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	var mail mailer.Mailer
	if cfg.Mail.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.Mail)
	} else {
		logger.Warn("MAIL_SMTP_HOST not set; reset emails will be logged, not delivered")
		mail = mailer.NewLogMailer(logger)
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		WorkerRepo: workerRepo,
		ResetRepo:  resetRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	workerService := service.NewWorkerService(*cfg, workerRepo, dispatcher)
	customerService := service.NewCustomerService(customerRepo)
	transactionService := service.NewTransactionService(transactionRepo, customerRepo, dispatcher)
	shiftService := service.NewShiftService(shiftRepo, workerRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, mail, logger, cfg.Mail)

	worker.StartNotificationWorker(notificationService)
	worker.StartResetTokenSweeper(ctx, resetRepo, logger, time.Hour)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Workers:        handlers.NewWorkersHandler(workerService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Transactions:   handlers.NewTransactionsHandler(transactionService),
		Shifts:         handlers.NewShiftsHandler(shiftService),
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
