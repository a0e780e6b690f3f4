package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/influencer-portal/backend/internal/config"
	"github.com/influencer-portal/backend/internal/db"
	"github.com/influencer-portal/backend/internal/repositories"
	"go.uber.org/zap"
)

// AuditPruner is the part of the audit repo the worker needs.
type AuditPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	auditRepo := repositories.NewAuditRepo(pool)

	log.Info("worker started",
		zap.Duration("audit_retention", cfg.AuditRetention),
		zap.Duration("interval", cfg.AuditPruneInterval),
	)

	// Run jobs on tickers
	pruneTicker := time.NewTicker(cfg.AuditPruneInterval)
	defer pruneTicker.Stop()

	runAuditPrune(ctx, auditRepo, cfg.AuditRetention, time.Now(), log)
	for {
		select {
		case now := <-pruneTicker.C:
			runAuditPrune(ctx, auditRepo, cfg.AuditRetention, now, log)
		case <-ctx.Done():
			log.Info("shutting down worker")
			return
		}
	}
}

func runAuditPrune(ctx context.Context, repo AuditPruner, retention time.Duration, now time.Time, log *zap.Logger) {
	if retention <= 0 {
		return
	}
	cutoff := now.Add(-retention)
	n, err := repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error("failed to prune audit log", zap.Time("cutoff", cutoff), zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("pruned audit log", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	}
}
