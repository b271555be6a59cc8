package usecase

import (
	"context"
	"fmt"
	"time"

	"sitter-booking/internal/data/entity"
	"sitter-booking/internal/data/repository"
	"sitter-booking/internal/dto/response"
	"sitter-booking/internal/gateway"
	"sitter-booking/pkg/utils"

	"go.uber.org/zap"
)

// ReconcileService is the backstop for the window where a charge succeeded
// but the booking write never happened: crash after confirmation, network
// drop before commit. It cross-checks stale pending payments against the
// gateway instead of guessing.
type ReconcileService interface {
	Sweep(ctx context.Context, maxAge time.Duration) ([]*response.DiscrepancyReport, error)
}

type reconcileService struct {
	repo           *repository.Repository
	gateway        gateway.Gateway
	createdTimeout time.Duration
	log            *zap.Logger
}

func NewReconcileService(repo *repository.Repository, gw gateway.Gateway, config *utils.Config, log *zap.Logger) ReconcileService {
	return &reconcileService{
		repo:           repo,
		gateway:        gw,
		createdTimeout: config.Sweep.CreatedTimeout,
		log:            log.With(zap.String("service", "reconcile")),
	}
}

func (s *reconcileService) Sweep(ctx context.Context, maxAge time.Duration) ([]*response.DiscrepancyReport, error) {
	// Expire created payments nobody ever confirmed. Routine, not a
	// discrepancy.
	expired, err := s.repo.PendingPayment.FindStaleByStatus(ctx, entity.PendingPaymentStatusCreated, s.createdTimeout)
	if err != nil {
		return nil, fmt.Errorf("find expired created payments: %w", err)
	}
	for _, pending := range expired {
		if err := s.repo.PendingPayment.MarkAbandoned(ctx, pending.ID); err != nil {
			s.log.Warn("Failed to abandon expired pending payment",
				zap.Error(err),
				zap.String("pending_payment_id", pending.ID.String()),
			)
			continue
		}
		s.log.Info("Pending payment abandoned after timeout",
			zap.String("pending_payment_id", pending.ID.String()),
			zap.String("gateway_intent_id", pending.GatewayIntentID),
		)
	}

	// Authorized payments past the deadline are the real failure surface:
	// a verified charge with no booking behind it.
	stale, err := s.repo.PendingPayment.FindStaleByStatus(ctx, entity.PendingPaymentStatusAuthorized, maxAge)
	if err != nil {
		return nil, fmt.Errorf("find stale authorized payments: %w", err)
	}

	var reports []*response.DiscrepancyReport
	for _, pending := range stale {
		intent, err := s.gateway.RetrieveIntent(ctx, pending.GatewayIntentID)
		if err != nil {
			// Leave it for the next sweep rather than misclassifying
			s.log.Warn("Gateway check failed during sweep",
				zap.Error(err),
				zap.String("gateway_intent_id", pending.GatewayIntentID),
			)
			continue
		}

		report := &response.DiscrepancyReport{
			PendingPaymentID: pending.ID.String(),
			GatewayIntentID:  pending.GatewayIntentID,
			AmountCents:      pending.AmountCents,
			Currency:         pending.Currency,
			AgeSeconds:       int64(time.Since(pending.UpdatedAt).Seconds()),
		}

		if intent.Status == gateway.StatusSucceeded {
			// Money collected, no booking recorded. Needs a commit retry
			// or a refund; never resolved silently.
			report.Classification = response.DiscrepancyChargeSucceededBookingMissing
			s.log.Error("Charge succeeded but booking missing",
				zap.String("pending_payment_id", pending.ID.String()),
				zap.String("gateway_intent_id", pending.GatewayIntentID),
				zap.Int64("amount_cents", pending.AmountCents),
			)
		} else {
			report.Classification = response.DiscrepancyChargeNeverSucceeded
			if err := s.repo.PendingPayment.MarkAbandoned(ctx, pending.ID); err != nil {
				s.log.Warn("Failed to abandon unconfirmed payment",
					zap.Error(err),
					zap.String("pending_payment_id", pending.ID.String()),
				)
			}
		}

		reports = append(reports, report)
	}

	if len(reports) > 0 {
		s.log.Info("Reconciliation sweep finished",
			zap.Int("expired_created", len(expired)),
			zap.Int("discrepancies", len(reports)),
		)
	}

	return reports, nil
}
