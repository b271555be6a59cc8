// internal/wire/wire.go
package wire

import (
	"net/http"

	"sitter-booking/internal/adaptor"
	"sitter-booking/internal/data/repository"
	"sitter-booking/internal/gateway"
	"sitter-booking/internal/usecase"
	"sitter-booking/pkg/middleware"
	"sitter-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and the router
func Wiring(repo *repository.Repository, gw gateway.Gateway, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, gw, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireSitter(r, handler.Sitter)
	wirePayment(r, handler.Payment, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireSession(r, handler.Session, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
