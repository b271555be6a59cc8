package wire

import (
	"sitter-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSitter(r chi.Router, sitterHandler *adaptor.SitterHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/sitters?city= - Search active sitters by city (public)
	r.Get("/api/sitters", sitterHandler.SearchSitters)

	// GET /api/sitters/{id}/services - List services offered by a sitter (public)
	r.Get("/api/sitters/{id}/services", sitterHandler.GetSitterServices)

	// GET /api/addons - List bookable add-ons and prices (public)
	r.Get("/api/addons", sitterHandler.GetAddOns)
}
