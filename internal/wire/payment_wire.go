package wire

import (
	"sitter-booking/internal/adaptor"
	"sitter-booking/internal/data/repository"
	"sitter-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/payment-intents - Create or reuse a payment intent for a booking request
		r.Post("/api/payment-intents", paymentHandler.CreateIntent)
	})

	// ==================== PUBLIC ROUTES ====================
	// POST /api/gateway/webhook - Gateway event notifications (gateway-originated, not a session)
	r.Post("/api/gateway/webhook", paymentHandler.Webhook)
}
