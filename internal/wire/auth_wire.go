package wire

import (
	"loyalty-program/internal/adaptor"
	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"
	"loyalty-program/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/auth/authorize", authHandler.Authorize)
	r.Post("/api/auth/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/auth/facebook/signup", authHandler.FacebookSignup)
	r.Post("/api/auth/facebook/signin", authHandler.FacebookSignin)
	r.Post("/api/auth/rewards-app-sms", authHandler.SendRewardsAppSMS)

	// Protected routes
	auth := middleware.AuthToken(repo.AccessToken, log)
	write := middleware.Scope(entity.ScopePersonalWrite, log)

	r.With(auth, write).Post("/api/auth/change-password", authHandler.ChangePassword)
}
