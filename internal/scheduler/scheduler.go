package scheduler

import (
	"context"
	"time"

	"sitter-booking/internal/dto/response"

	"go.uber.org/zap"
)

type sweeper interface {
	Sweep(ctx context.Context, maxAge time.Duration) ([]*response.DiscrepancyReport, error)
}

// Scheduler runs the reconciliation sweep on a fixed interval until its
// context is cancelled.
type Scheduler struct {
	reconcile sweeper
	interval  time.Duration
	maxAge    time.Duration
	log       *zap.Logger
}

func New(reconcile sweeper, interval, maxAge time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		reconcile: reconcile,
		interval:  interval,
		maxAge:    maxAge,
		log:       log.With(zap.String("component", "scheduler")),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Reconciliation scheduler started",
		zap.Duration("interval", s.interval),
		zap.Duration("max_age", s.maxAge),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Reconciliation scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	reports, err := s.reconcile.Sweep(ctx, s.maxAge)
	if err != nil {
		s.log.Error("Reconciliation sweep failed", zap.Error(err))
		return
	}

	for _, report := range reports {
		s.log.Warn("Discrepancy detected",
			zap.String("pending_payment_id", report.PendingPaymentID),
			zap.String("gateway_intent_id", report.GatewayIntentID),
			zap.Int64("amount_cents", report.AmountCents),
			zap.String("classification", string(report.Classification)),
		)
	}
}
