package wire

import (
	"loyalty-program/internal/adaptor"
	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"
	"loyalty-program/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccount(
	r chi.Router,
	accountHandler *adaptor.AccountHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/customers", accountHandler.Register)
	r.Post("/api/customers/activate", accountHandler.Activate)
	r.Post("/api/customers/resend-verification", accountHandler.ResendVerification)

	// Protected routes
	auth := middleware.AuthToken(repo.AccessToken, log)
	read := middleware.Scope(entity.ScopePersonalRead, log)
	write := middleware.Scope(entity.ScopePersonalWrite, log)

	r.Route("/api/customers/me", func(r chi.Router) {
		r.Use(auth)

		r.With(read).Get("/", accountHandler.GetProfile)
		r.With(write).Put("/", accountHandler.UpdatePersonalData)
		r.With(write).Post("/email", accountHandler.ChangeEmail)
		r.With(write).Put("/address", accountHandler.UpdateAddress)
		r.With(write).Put("/keytag-delivery", accountHandler.SetKeytagDelivery)
		r.With(write).Post("/subscriptions/{merchantID}", accountHandler.Subscribe)
		r.With(write).Delete("/subscriptions/{merchantID}", accountHandler.Unsubscribe)
	})

	r.With(auth).Post("/api/customers/activate-by-code", accountHandler.ActivateByCode)
	r.With(auth).Get("/api/customers/verify-token", accountHandler.VerifyToken)

	// Back-office routes
	admin := middleware.Admin(log)
	r.With(auth, admin).Get("/api/customers", accountHandler.List)
	r.With(auth, admin).Delete("/api/customers", accountHandler.Delete)
}
