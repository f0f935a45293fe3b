package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/civicgift/donate-backend/internal/adapters/blobstore"
	"github.com/civicgift/donate-backend/internal/adapters/directory"
	"github.com/civicgift/donate-backend/internal/adapters/notifier"
	"github.com/civicgift/donate-backend/internal/adapters/processor"
	"github.com/civicgift/donate-backend/internal/core/services"
	"github.com/civicgift/donate-backend/internal/platform/config"
	"github.com/civicgift/donate-backend/internal/repositories/database/pgsql"
	"github.com/civicgift/donate-backend/pkg/database"
)

// The caging worker consumes donor matching tasks queued after each
// donation commits: it resolves queued donors against the user directory
// or cages them for manual review.
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

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Concurrency: 10,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(services.TaskDonorMatch, func(ctx context.Context, t *asynq.Task) error {
		var p services.DonorMatchPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("failed to unmarshal donor match payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := container.Donor.MatchQueuedDonor(ctx, p.QueuedDonorID); err != nil {
			logger.Error("Donor matching failed",
				slog.Int64("queued_donor_id", p.QueuedDonorID),
				slog.String("error", err.Error()))
			return err
		}
		return nil
	})

	logger.Info("Caging worker starting", slog.String("redis_addr", cfg.RedisAddr))
	if err := srv.Run(mux); err != nil {
		logger.Error("Caging worker failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
