package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"
	"loyalty-program/internal/dto/request"
	"loyalty-program/internal/dto/response"
	"loyalty-program/internal/identity"
	"loyalty-program/internal/notification"
	"loyalty-program/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Authorize(ctx context.Context, req *request.AuthorizeRequest) (*response.TokenResponse, error)
	ChangePassword(ctx context.Context, customerID uuid.UUID, req *request.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) (string, error)
	FacebookSignup(ctx context.Context, req *request.FacebookRequest) (*response.ActivationResponse, error)
	FacebookSignin(ctx context.Context, req *request.FacebookRequest) (*response.TokenResponse, error)
	SendRewardsAppSMS(ctx context.Context, req *request.RewardsAppSMSRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	notifier
	sms notification.SMSSender
	fb  identity.Provider
	log *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, mail notification.Sender, sms notification.SMSSender, fb identity.Provider, log *zap.Logger) AuthService {
	log = log.With(zap.String("service", "auth"))
	return &authService{
		repo:     repo,
		config:   config,
		notifier: notifier{mail: mail, config: config, log: log},
		sms:      sms,
		fb:       fb,
		log:      log,
	}
}

func (s *authService) Authorize(ctx context.Context, req *request.AuthorizeRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	customer, err := s.repo.Customer.FindByEmailAndStatus(ctx, req.Login, entity.CustomerStatusConfirmed)
	if err != nil {
		s.log.Error("Failed to look up customer", zap.Error(err), zap.String("login", req.Login))
		return nil, fmt.Errorf("look up customer: %w", err)
	}
	if customer == nil || customer.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, *customer.PasswordHash) {
		s.log.Warn("Authorization rejected", zap.String("login", req.Login))
		return nil, ErrInvalidCredentials
	}

	token, err := newAccessToken(ctx, s.repo.AccessToken, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	s.log.Info("Customer authorized", zap.String("customer_id", customer.ID.String()))
	return &response.TokenResponse{Token: token.AuthToken.String()}, nil
}

func (s *authService) ChangePassword(ctx context.Context, customerID uuid.UUID, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(errs)
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: customer", ErrNotFound)
	}

	if customer.PasswordHash == nil || !utils.CheckPasswordHash(req.PasswordOld, *customer.PasswordHash) {
		return ErrIncorrectPassword
	}

	hashed, err := utils.HashPassword(req.PasswordNew)
	if err != nil {
		return fmt.Errorf("process password: %w", err)
	}

	if err := s.repo.Customer.UpdatePassword(ctx, customerID, hashed); err != nil {
		s.log.Error("Failed to change password",
			zap.Error(err),
			zap.String("customer_id", customerID.String()))
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info("Password changed", zap.String("customer_id", customerID.String()))
	return nil
}

// ForgotPassword issues a fresh password. The notification must be
// delivered before the stored hash is replaced, so a failed send never
// locks the customer out of their current password. Returns the email
// the password was sent to.
func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) (string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return "", newValidationError(errs)
	}

	customer, err := s.repo.Customer.FindByEmail(ctx, req.Identifier)
	if err != nil {
		return "", err
	}
	if customer == nil {
		customer, err = s.repo.Customer.FindByKeytag(ctx, req.Identifier)
		if err != nil {
			return "", err
		}
	}
	if customer == nil {
		return "", fmt.Errorf("%w: customer", ErrNotFound)
	}

	if customer.Status != entity.CustomerStatusConfirmed {
		return "", fmt.Errorf("%w: account is not verified yet", ErrInvalidOperation)
	}

	password := utils.GeneratePassword()
	if err := s.sendNewPassword(ctx, customer, password); err != nil {
		return "", err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("process password: %w", err)
	}

	if err := s.repo.Customer.UpdatePassword(ctx, customer.ID, hashed); err != nil {
		s.log.Error("Failed to store new password",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()))
		return "", fmt.Errorf("store new password: %w", err)
	}

	s.log.Info("Password reset", zap.String("customer_id", customer.ID.String()))
	return customer.Email, nil
}

// FacebookSignup creates a confirmed account from a Facebook profile.
// Social accounts skip email verification; the keytag is attached
// immediately.
func (s *authService) FacebookSignup(ctx context.Context, req *request.FacebookRequest) (*response.ActivationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	profile, err := s.fb.FetchProfile(ctx, req.AccessToken)
	if err != nil {
		s.log.Error("Failed to fetch Facebook profile", zap.Error(err))
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if profile == nil {
		return nil, ErrInvalidAccessToken
	}
	if profile.Email == "" {
		return nil, newValidationError(map[string]string{"email": "Facebook profile has no email"})
	}

	existing, err := s.repo.Customer.FindByFacebookIDAndStatus(ctx, profile.ID, entity.CustomerStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	byEmail, err := s.repo.Customer.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	if byEmail != nil {
		return nil, newValidationError(map[string]string{"email": "already registered"})
	}

	if err := checkProgramReady(ctx, s.repo); err != nil {
		return nil, err
	}

	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Firstname:  profile.Firstname,
		Lastname:   profile.Lastname,
		Email:      profile.Email,
		FacebookID: &profile.ID,
		Status:     entity.CustomerStatusConfirmed,
	}
	keytag := &entity.Keytag{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		CustomerID: customer.ID,
		KeytagUPCA: utils.GenerateKeytagUPCA(),
		Status:     entity.KeytagStatusActive,
	}

	err = s.repo.Transact(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Customer.Create(ctx, customer); err != nil {
			return err
		}
		return txRepo.Keytag.Create(ctx, keytag)
	})
	if err != nil {
		s.log.Error("Failed to create Facebook customer", zap.Error(err), zap.String("email", profile.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := newAccessToken(ctx, s.repo.AccessToken, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	if err := s.sendRegistration(ctx, customer); err != nil {
		return nil, err
	}
	if err := s.notifyAdmins(ctx, s.repo, customer, keytag); err != nil {
		return nil, err
	}

	s.log.Info("Facebook customer registered",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email))

	return &response.ActivationResponse{
		CustomerID: customer.ID.String(),
		Keytag:     keytag.KeytagUPCA,
		Token:      token.AuthToken.String(),
	}, nil
}

func (s *authService) FacebookSignin(ctx context.Context, req *request.FacebookRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	profile, err := s.fb.FetchProfile(ctx, req.AccessToken)
	if err != nil {
		s.log.Error("Failed to fetch Facebook profile", zap.Error(err))
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if profile == nil {
		return nil, ErrInvalidAccessToken
	}

	customer, err := s.repo.Customer.FindByFacebookIDAndStatus(ctx, profile.ID, entity.CustomerStatusConfirmed)
	if err != nil {
		return nil, err
	}

	if customer == nil {
		if profile.Email != "" {
			byEmail, err := s.repo.Customer.FindByEmailAndStatus(ctx, profile.Email, entity.CustomerStatusConfirmed)
			if err != nil {
				return nil, err
			}
			if byEmail != nil {
				return nil, ErrAccountExistsUnlinked
			}
		}
		return nil, ErrAccountNotFound
	}

	token, err := newAccessToken(ctx, s.repo.AccessToken, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	s.log.Info("Facebook customer authorized", zap.String("customer_id", customer.ID.String()))
	return &response.TokenResponse{Token: token.AuthToken.String()}, nil
}

// SendRewardsAppSMS texts the mobile app download link to a phone
// number. The message body lives in a template file with a
// {download_url} placeholder.
func (s *authService) SendRewardsAppSMS(ctx context.Context, req *request.RewardsAppSMSRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(errs)
	}

	raw, err := os.ReadFile(filepath.Join(s.config.Mail.TemplateDir, "sms", "getrewardsapp.txt"))
	if err != nil {
		s.log.Error("Failed to read SMS template", zap.Error(err))
		return fmt.Errorf("read sms template: %w", err)
	}

	body := strings.ReplaceAll(strings.TrimSpace(string(raw)), "{download_url}", s.config.Twilio.DownloadURL)
	if err := s.sms.SendSMS(ctx, req.Phone, body); err != nil {
		s.log.Error("Failed to send SMS", zap.Error(err), zap.String("phone", req.Phone))
		return err
	}

	s.log.Info("Rewards app SMS sent", zap.String("phone", req.Phone))
	return nil
}
