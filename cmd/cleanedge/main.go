package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/cleanedge/cleanedge/internal/app"
	"github.com/cleanedge/cleanedge/internal/customers"
	"github.com/cleanedge/cleanedge/internal/mailer"
	"github.com/cleanedge/cleanedge/internal/marketing"
	"github.com/cleanedge/cleanedge/internal/observability"
	"github.com/cleanedge/cleanedge/internal/platform/cache"
	"github.com/cleanedge/cleanedge/internal/platform/db"
	"github.com/cleanedge/cleanedge/internal/quotes"
	"github.com/cleanedge/cleanedge/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	// Redis backs the marketing queue only; the quote pipeline must
	// keep serving when it is down.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	transport := mailer.NewSMTPTransport(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Secure:   cfg.SMTPSecure,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
	signer := mailer.NewUnsubscribeSigner(cfg.UnsubscribeSecret)
	dispatcher := mailer.NewDispatcher(logger, transport, signer, metrics, mailer.DispatcherConfig{
		From:          cfg.SMTPFrom,
		TemplateDir:   cfg.EmailTemplateDir,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	emailHandler := mailer.NewHandler(logger, dispatcher, signer)

	customerRepo := customers.NewRepository(dbpool)
	customerService := customers.NewService(customerRepo)
	customerHandler := customers.NewHandler(logger, customerService)

	quoteService := quotes.NewService(customerRepo, dispatcher, logger, quotes.ServiceConfig{
		ContactAddress: cfg.EmailContactAddress,
		PublicBaseURL:  cfg.PublicBaseURL,
	})
	quoteHandler := quotes.NewHandler(logger, quoteService, metrics)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	marketingHandler := marketing.NewHandler(logger, customerService, jobsClient)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		QuoteHandler:     quoteHandler,
		CustomerHandler:  customerHandler,
		EmailHandler:     emailHandler,
		MarketingHandler: marketingHandler,
		JobHandler:       jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
