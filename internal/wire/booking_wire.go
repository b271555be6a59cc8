package wire

import (
	"sitter-booking/internal/adaptor"
	"sitter-booking/internal/data/repository"
	"sitter-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - Commit a paid booking
		r.Post("/api/bookings", bookingHandler.Commit)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/bookings/{id} - View any booking details (admin)
		r.Get("/api/admin/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/admin/bookings/{id}/cancel - Cancel any booking (admin)
		r.Put("/api/admin/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// POST /api/admin/reconciliation/sweep - Run the sweep on demand (admin)
		r.Post("/api/admin/reconciliation/sweep", bookingHandler.RunSweep)
	})
}
