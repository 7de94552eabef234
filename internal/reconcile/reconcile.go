package reconcile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kudiwallet/kudiwallet/internal/config"
	"github.com/kudiwallet/kudiwallet/internal/domain"
)

// Settler is the settlement engine's idempotent settle-by-reference
// path; re-settling an already-settled deposit is a no-op.
type Settler interface {
	ReconcileDeposit(ctx context.Context, reference string) error
}

type TransactionRepo interface {
	FindPendingDeposits(ctx context.Context, limit uint32) ([]domain.Transaction, error)
}

var processingRefs sync.Map

// Service is a safety net for lost webhooks: it periodically verifies
// stale pending deposits against the gateway and settles them through
// the engine's idempotent path.
type Service struct {
	transactionRepo TransactionRepo
	settler         Settler
	limit           uint32
	workerPool      WorkerPoolI
	updateInterval  time.Duration
	gracePeriod     time.Duration
}

func New(cfg *config.Config, transactionRepo TransactionRepo, settler Settler) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		settler:         settler,
		limit:           1000,
		workerPool:      NewWorkerPool(10),
		updateInterval:  cfg.ReconcileInterval,
		gracePeriod:     cfg.ReconcileInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconciliation service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciliation")
			return
		case <-ticker.C:
			s.processDeposits(ctx)
		}
	}
}

func (s *Service) processDeposits(ctx context.Context) {
	deposits, err := s.transactionRepo.FindPendingDeposits(ctx, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch pending deposits", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, deposit := range deposits {
		deposit := deposit

		// A deposit inside the grace period is likely still waiting for
		// its webhook; don't race it.
		if time.Since(deposit.CreatedAt) < s.gracePeriod {
			continue
		}
		if _, loaded := processingRefs.LoadOrStore(deposit.Reference, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingRefs.Delete(deposit.Reference)
				return s.settler.ReconcileDeposit(ctx, deposit.Reference)
			})
			if err != nil {
				processingRefs.Delete(deposit.Reference)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling deposits", zap.Error(err))
	}
}
