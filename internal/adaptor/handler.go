package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"sitter-booking/internal/usecase"
	"sitter-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Payment *PaymentHandler
	Booking *BookingHandler
	Sitter  *SitterHandler
	Session *SessionHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Payment: NewPaymentHandler(service.Payment, service.Booking, config.Gateway.WebhookSecret, log),
		Booking: NewBookingHandler(service.Booking, service.Reconcile, log),
		Sitter:  NewSitterHandler(service.Pricing, log),
		Session: NewSessionHandler(service.Session, log),
	}
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		log.Warn(operation+" failed - invalid request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrPaymentNotVerified):
		log.Warn(operation+" failed - payment not verified", zap.Error(err))
		utils.ResponsePaymentRequired(w, err.Error())

	case errors.Is(err, usecase.ErrAmountMismatch):
		log.Error(operation+" failed - amount mismatch", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrUnknownIntent):
		log.Warn(operation+" failed - unknown intent", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrGatewayUnavailable):
		log.Error(operation+" failed - gateway unavailable", zap.Error(err))
		utils.ResponseInternalError(w, "Payment gateway unavailable, retry later")

	case strings.Contains(err.Error(), "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
