package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"pastebridge/internal/adapters/ai"
	"pastebridge/internal/adapters/billing"
	"pastebridge/internal/adapters/cache"
	httpServer "pastebridge/internal/adapters/http"
	"pastebridge/internal/adapters/http/handlers"
	"pastebridge/internal/adapters/http/views"
	pgrepo "pastebridge/internal/adapters/postgres"
	"pastebridge/internal/adapters/push"
	"pastebridge/internal/adapters/services"
	"pastebridge/internal/adapters/webhooks"
	"pastebridge/internal/app"
	"pastebridge/internal/config"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/db/postgres"
	"pastebridge/pkg/logger"
	"pastebridge/pkg/shutdown"
)

// Environment variable names read before the configuration is loaded.
const (
	EnvLoggerMode  = "PASTEBRIDGE_LOGGER_MODE"
	EnvLoggerLevel = "PASTEBRIDGE_LOGGER_LEVEL"
)

// Error messages.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrRunMigrations        = "failed to run database migrations"
	ErrConnectPostgres      = "failed to connect to PostgreSQL"
	ErrConnectRedis         = "failed to connect to Redis"
	ErrInitViews            = "failed to initialize HTML templates"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Errors from Sync that are safe to ignore on standard streams.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Service log messages.
const (
	LogServiceStarted      = "pastebridge service started"
	LogServiceShutdownDone = "pastebridge service shutdown complete"
	LogApplyingMigrations  = "applying database migrations"
	LogInitStorage         = "initializing storage"
	LogInitCache           = "initializing rate limit store"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStartingCleaner     = "starting expired notepad cleaner"
	LogStoppingHTTP        = "stopping HTTP server"
	LogStoppingCleaner     = "stopping expired notepad cleaner"
	LogClosingPostgres     = "closing PostgreSQL pool"
	LogClosingRedis        = "closing Redis connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level))

		log.Info(ctx, LogApplyingMigrations)
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
			log.Error(ctx, ErrRunMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitStorage)
		database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectPostgres, zap.Error(err))
			exitCode = 1
			return
		}

		notepadRepo := pgrepo.NewNotepadRepository(database.Pool())
		userRepo := pgrepo.NewUserRepository(database.Pool())
		webhookRepo := pgrepo.NewWebhookRepository(database.Pool())
		feedbackRepo := pgrepo.NewFeedbackRepository(database.Pool())
		paymentRepo := pgrepo.NewPaymentRepository(database.Pool())
		resetRepo := pgrepo.NewResetTokenRepository(database.Pool())
		analyticsRepo := pgrepo.NewAnalyticsRepository(database.Pool())

		// The rate limiter falls back to an in-process store when Redis
		// is disabled; a single instance works fine without it.
		log.Info(ctx, LogInitCache)
		var windows svc.WindowStore
		var redisClose func() error
		if cfg.Redis.Enabled {
			redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrConnectRedis, zap.Error(err))
				exitCode = 1
				return
			}
			windows = cache.NewRedisWindowStore(redisClient)
			redisClose = func() error { return cache.CloseRedisClient(redisClient) }
		} else {
			windows = cache.NewMemoryWindowStore()
		}

		log.Info(ctx, LogInitServices)
		tokenSvc := services.NewJWT(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL())
		passwordSvc := services.NewBcrypt(cfg.JWT.BCryptCost)
		summarizer := ai.NewChatSummarizer(&cfg.Integrations.AI)
		pushSender := push.NewExpoSender(&cfg.Integrations.Push)
		checkout := billing.NewStripeProvider(&cfg.Integrations.Stripe)
		dispatcher := webhooks.NewHTTPDispatcher(&cfg.Integrations.Webhooks)

		notepadUC := app.NewNotepadUseCase(notepadRepo, userRepo, webhookRepo, summarizer, pushSender, dispatcher, &cfg.Tiers)
		authUC := app.NewAuthUseCase(userRepo, notepadRepo, webhookRepo, resetRepo, passwordSvc, tokenSvc, &cfg.Tiers, cfg.JWT.GetResetTokenTTL())
		feedbackUC := app.NewFeedbackUseCase(feedbackRepo, summarizer)
		subscriptionUC := app.NewSubscriptionUseCase(paymentRepo, userRepo, notepadRepo, checkout)
		adminUC := app.NewAdminUseCase(analyticsRepo)
		cleaner := app.NewCleaner(notepadRepo, &cfg.Cleanup, &cfg.Tiers)

		renderer, err := views.NewRenderer()
		if err != nil {
			log.Error(ctx, ErrInitViews, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, httpServer.RouterDeps{
			Log:           log,
			RateLimit:     cfg.RateLimit,
			Windows:       windows,
			Tokens:        tokenSvc,
			Notepads:      handlers.NewNotepadHandler(notepadUC),
			Auth:          handlers.NewAuthHandler(authUC),
			Feedback:      handlers.NewFeedbackHandler(feedbackUC),
			Subscriptions: handlers.NewSubscriptionHandler(subscriptionUC),
			Admin:         handlers.NewAdminHandler(adminUC, cleaner),
			Views:         handlers.NewViewHandler(renderer, notepadUC),
		})

		log.Info(ctx, LogStartingCleaner)
		cleanerCtx, stopCleaner := context.WithCancel(logger.NewContext(context.Background(), log))
		go cleaner.Run(cleanerCtx)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Stop the HTTP server.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Stop the background cleaner.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingCleaner)
				stopCleaner()
				return nil
			},
			// Close the Redis connection, when one was opened.
			func(ctx context.Context) error {
				if redisClose == nil {
					return nil
				}
				log.Info(ctx, LogClosingRedis)
				return redisClose()
			},
			// Close the PostgreSQL pool.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingPostgres)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
