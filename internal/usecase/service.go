package usecase

import (
	"loyalty-program/internal/data/repository"
	"loyalty-program/internal/identity"
	"loyalty-program/internal/notification"
	"loyalty-program/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles the use cases exposed to the HTTP layer.
type Service struct {
	Account  AccountService
	Auth     AuthService
	Referral ReferralService
}

func NewService(repo *repository.Repository, config *utils.Config, mail notification.Sender, sms notification.SMSSender, fb identity.Provider, log *zap.Logger) *Service {
	return &Service{
		Account:  NewAccountService(repo, config, mail, log),
		Auth:     NewAuthService(repo, config, mail, sms, fb, log),
		Referral: NewReferralService(repo, config, mail, log),
	}
}
