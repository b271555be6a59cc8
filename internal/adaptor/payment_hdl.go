package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"sitter-booking/internal/dto/request"
	"sitter-booking/internal/usecase"
	"sitter-booking/pkg/utils"

	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments      usecase.PaymentService
	bookings      usecase.BookingService
	webhookSecret string
	log           *zap.Logger
}

func NewPaymentHandler(payments usecase.PaymentService, bookings usecase.BookingService, webhookSecret string, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments:      payments,
		bookings:      bookings,
		webhookSecret: webhookSecret,
		log:           log.With(zap.String("handler", "payment")),
	}
}

// CreateIntent handles POST /api/payment-intents (protected)
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	clientID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	intent, err := h.payments.CreateIntent(r.Context(), clientID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create payment intent")
		return
	}

	utils.ResponseCreated(w, "success", intent)
}

// Webhook handles POST /api/gateway/webhook (public, gateway-originated).
// The event signature is checked against the endpoint secret, and the
// payload is still not trusted beyond the intent id: the commit path
// independently re-verifies the charge with the gateway before writing
// anything.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event body", nil)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.log.Warn("Webhook signature verification failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid event signature", nil)
		return
	}

	var object struct {
		ID string `json:"id"`
	}
	if event.Data != nil {
		if err := json.Unmarshal(event.Data.Raw, &object); err != nil {
			utils.ResponseBadRequest(w, "Invalid event body", nil)
			return
		}
	}

	if event.Type != "payment_intent.succeeded" || object.ID == "" {
		// Not ours; acknowledge so the gateway stops retrying
		utils.ResponseSuccess(w, "ignored", nil)
		return
	}

	intentID := object.ID

	// The charge id is taken from the gateway during verification, so an
	// empty claim forces the verify step to resolve it.
	booking, err := h.bookings.Commit(r.Context(), intentID, "")
	if err != nil {
		// The commit path rejects anything the gateway does not confirm.
		// Acknowledge to stop retries except on our own failures.
		h.log.Warn("Webhook commit not applied",
			zap.Error(err),
			zap.String("gateway_intent_id", intentID),
		)
		utils.ResponseSuccess(w, "not applied", nil)
		return
	}

	h.log.Info("Webhook commit applied",
		zap.String("gateway_intent_id", intentID),
		zap.String("booking_id", booking.ID),
	)

	utils.ResponseSuccess(w, "success", nil)
}
