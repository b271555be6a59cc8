package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"sitter-booking/internal/dto/request"
	"sitter-booking/internal/usecase"
	"sitter-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service   usecase.BookingService
	reconcile usecase.ReconcileService
	log       *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, reconcile usecase.ReconcileService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:   service,
		reconcile: reconcile,
		log:       log.With(zap.String("handler", "booking")),
	}
}

// Commit handles POST /api/bookings (protected)
func (h *BookingHandler) Commit(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CommitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Commit(r.Context(), req.GatewayIntentID, req.GatewayPaymentID)
	if err != nil {
		respondServiceError(w, h.log, err, "commit booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	clientID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetUserBookings(r.Context(), clientID.String(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ==================== ADMIN METHODS ====================

// GetBookingByID handles GET /api/admin/bookings/{id} (admin only)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		respondServiceError(w, h.log, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles PUT /api/admin/bookings/{id}/cancel (admin only)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.CancelBooking(r.Context(), bookingID); err != nil {
		respondServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// RunSweep handles POST /api/admin/reconciliation/sweep (admin only).
// On-demand version of the scheduled sweep; maxAge in seconds via query.
func (h *BookingHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	maxAgeSeconds := utils.ParseInt(r.URL.Query().Get("max_age_seconds"), 900)

	reports, err := h.reconcile.Sweep(r.Context(), time.Duration(maxAgeSeconds)*time.Second)
	if err != nil {
		respondServiceError(w, h.log, err, "run reconciliation sweep")
		return
	}

	utils.ResponseSuccess(w, "success", reports)
}
