package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"

	"github.com/civicgift/donate-backend/internal/adapters/blobstore"
	"github.com/civicgift/donate-backend/internal/adapters/directory"
	"github.com/civicgift/donate-backend/internal/adapters/notifier"
	"github.com/civicgift/donate-backend/internal/adapters/processor"
	"github.com/civicgift/donate-backend/internal/core/services"
	"github.com/civicgift/donate-backend/internal/platform/config"
	"github.com/civicgift/donate-backend/internal/repositories/database/pgsql"
	"github.com/civicgift/donate-backend/pkg/database"
)

// The reconciler runs the batch sweep on a schedule. It shares the service
// wiring with the API server but exposes no HTTP surface.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() { _ = asynqClient.Close() }()

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewServiceContainer(cfg, repos, services.ExternalClients{
		Processor: processor.NewClient(cfg),
		Notifier:  notifier.NewClient(cfg),
		Blobstore: blobstore.NewClient(cfg),
		Directory: directory.NewClient(cfg),
		Queue:     asynqClient,
	})

	c := cron.New()
	_, err = c.AddFunc(cfg.ReconcileCronSpec, func() {
		runLogger := logger.With(slog.Time("scheduled_at", time.Now().UTC()))
		runLogger.Info("Reconciliation sweep starting")

		summary, err := container.Reconcile.Run(context.Background(), time.Now().UTC())
		if err != nil {
			runLogger.Error("Reconciliation sweep failed", slog.String("error", err.Error()))
			return
		}
		runLogger.Info("Reconciliation sweep finished",
			slog.Int("sales_examined", summary.SalesExamined),
			slog.Int("transactions_written", summary.TransactionsWritten),
			slog.Int("gifts_created", summary.GiftsCreated),
			slog.Int("disputes_examined", summary.DisputesExamined),
			slog.Int("priority_sales", summary.PrioritySales),
			slog.Int("priority_disputes", summary.PriorityDisputes))
	})
	if err != nil {
		logger.Error("Invalid reconcile cron spec", slog.String("spec", cfg.ReconcileCronSpec), slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Reconciler starting", slog.String("cron_spec", cfg.ReconcileCronSpec))
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Reconciler shutting down")
	<-c.Stop().Done()
}
