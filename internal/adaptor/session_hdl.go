package adaptor

import (
	"net/http"
	"strings"

	"sitter-booking/internal/usecase"
	"sitter-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "session")),
	}
}

// Logout handles POST /api/logout (protected). Revokes the bearer token
// the request authenticated with.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	token := bearerToken(r)
	if err := h.service.Logout(r.Context(), token); err != nil {
		respondServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// RevokeUserSessions handles POST /api/admin/users/{id}/sessions/revoke (admin)
func (h *SessionHandler) RevokeUserSessions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.service.RevokeUserSessions(r.Context(), userID); err != nil {
		respondServiceError(w, h.log, err, "revoke user sessions")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// bearerToken pulls the token out of the Authorization header; the auth
// middleware already rejected malformed headers by the time this runs.
func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
