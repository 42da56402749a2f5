package wire

import (
	"loyalty-program/internal/adaptor"
	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"
	"loyalty-program/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReferral(
	r chi.Router,
	referralHandler *adaptor.ReferralHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.AuthToken(repo.AccessToken, log)
	write := middleware.Scope(entity.ScopePersonalWrite, log)

	r.With(auth, write).Post("/api/referrals", referralHandler.Create)
	r.With(auth, write).Post("/api/promos/scan", referralHandler.UseScannedPromoCode)
}
