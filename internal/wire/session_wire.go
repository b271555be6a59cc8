package wire

import (
	"sitter-booking/internal/adaptor"
	"sitter-booking/internal/data/repository"
	"sitter-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/logout - Revoke the session behind the bearer token
		r.Post("/api/logout", sessionHandler.Logout)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/users/{id}/sessions/revoke - Kick a user out everywhere (admin)
		r.Post("/api/admin/users/{id}/sessions/revoke", sessionHandler.RevokeUserSessions)
	})
}
