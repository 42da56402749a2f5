package wire

import (
	"net/http"

	"loyalty-program/internal/adaptor"
	"loyalty-program/internal/data/repository"
	"loyalty-program/internal/identity"
	"loyalty-program/internal/notification"
	"loyalty-program/internal/usecase"
	"loyalty-program/pkg/middleware"
	"loyalty-program/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	mail notification.Sender,
	sms notification.SMSSender,
	fb identity.Provider,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, mail, sms, fb, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAccount(r, handler.Account, repo, logger)
	wireAuth(r, handler.Auth, repo, logger)
	wireReferral(r, handler.Referral, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
