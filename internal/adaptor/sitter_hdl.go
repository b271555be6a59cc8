package adaptor

import (
	"net/http"

	"sitter-booking/internal/dto/request"
	"sitter-booking/internal/usecase"
	"sitter-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SitterHandler struct {
	pricing usecase.PricingService
	log     *zap.Logger
}

func NewSitterHandler(pricing usecase.PricingService, log *zap.Logger) *SitterHandler {
	return &SitterHandler{
		pricing: pricing,
		log:     log.With(zap.String("handler", "sitter")),
	}
}

// SearchSitters handles GET /api/sitters?city= (public)
func (h *SitterHandler) SearchSitters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	sitters, err := h.pricing.SearchSitters(r.Context(), query.Get("city"), req)
	if err != nil {
		respondServiceError(w, h.log, err, "search sitters")
		return
	}

	utils.ResponseSuccess(w, "success", sitters)
}

// GetAddOns handles GET /api/addons (public)
func (h *SitterHandler) GetAddOns(w http.ResponseWriter, r *http.Request) {
	addOns, err := h.pricing.GetAddOns(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "get addons")
		return
	}

	utils.ResponseSuccess(w, "success", addOns)
}

// GetSitterServices handles GET /api/sitters/{id}/services (public)
func (h *SitterHandler) GetSitterServices(w http.ResponseWriter, r *http.Request) {
	sitterID := chi.URLParam(r, "id")
	if sitterID == "" {
		utils.ResponseBadRequest(w, "Sitter ID is required", nil)
		return
	}

	services, err := h.pricing.GetSitterServices(r.Context(), sitterID)
	if err != nil {
		respondServiceError(w, h.log, err, "get sitter services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}
