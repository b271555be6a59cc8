package usecase

import (
	"sitter-booking/internal/data/repository"
	"sitter-booking/internal/gateway"
	"sitter-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Pricing   PricingService
	Payment   PaymentService
	Booking   BookingService
	Reconcile ReconcileService
	Session   SessionService
}

func NewService(repo *repository.Repository, gw gateway.Gateway, config *utils.Config, log *zap.Logger) *Service {
	pricing := NewPricingService(repo, config, log)

	return &Service{
		Pricing:   pricing,
		Payment:   NewPaymentService(repo, pricing, gw, config, log),
		Booking:   NewBookingService(repo, gw, config, log),
		Reconcile: NewReconcileService(repo, gw, config, log),
		Session:   NewSessionService(repo, log),
	}
}
