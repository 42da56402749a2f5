package usecase

import (
	"context"
	"fmt"
	"time"

	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"
	"loyalty-program/internal/dto/request"
	"loyalty-program/internal/dto/response"
	"loyalty-program/internal/notification"
	"loyalty-program/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.TokenResponse, error)
	Activate(ctx context.Context, req *request.ActivateRequest) (*response.ActivationResponse, error)
	ActivateByCode(ctx context.Context, customerID uuid.UUID, req *request.ActivateByCodeRequest) (*response.ActivationResponse, error)
	ResendVerificationToken(ctx context.Context, email string) error
	ChangeEmail(ctx context.Context, customerID uuid.UUID, req *request.ChangeEmailRequest) error
	GetProfile(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error)
	UpdatePersonalData(ctx context.Context, customerID uuid.UUID, req *request.UpdatePersonalDataRequest) error
	UpdateAddress(ctx context.Context, customerID uuid.UUID, req *request.UpdateAddressRequest) error
	SetKeytagDelivery(ctx context.Context, customerID uuid.UUID, req *request.KeytagDeliveryRequest) error
	Subscribe(ctx context.Context, customerID uuid.UUID, merchantID string) error
	Unsubscribe(ctx context.Context, customerID uuid.UUID, merchantID string) error
	Delete(ctx context.Context, email string) error
	ListCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
}

type accountService struct {
	repo   *repository.Repository
	config *utils.Config
	notifier
	log *zap.Logger
}

func NewAccountService(repo *repository.Repository, config *utils.Config, mail notification.Sender, log *zap.Logger) AccountService {
	log = log.With(zap.String("service", "account"))
	return &accountService{
		repo:     repo,
		config:   config,
		notifier: notifier{mail: mail, config: config, log: log},
		log:      log,
	}
}

// checkProgramReady guards registration: the program needs an active
// transaction rate and a titled association before accounts may exist.
func checkProgramReady(ctx context.Context, repo *repository.Repository) error {
	setting, err := repo.Settings.FindActiveByName(ctx, entity.PropTransactionRate)
	if err != nil {
		return err
	}
	if setting == nil || setting.Value <= 0 {
		return fmt.Errorf("%w: association transaction rate must be set", ErrConfigurationNotReady)
	}

	org, err := repo.Organization.FindAssociation(ctx)
	if err != nil {
		return err
	}
	if org == nil || org.Title == "" {
		return fmt.Errorf("%w: association reward store settings must be set", ErrConfigurationNotReady)
	}

	return nil
}

func (s *accountService) Register(ctx context.Context, req *request.RegisterRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	if err := checkProgramReady(ctx, s.repo); err != nil {
		return nil, err
	}

	existing, err := s.repo.Customer.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, newValidationError(map[string]string{"email": "already registered"})
	}

	var passwordHash *string
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("process password: %w", err)
		}
		passwordHash = &hashed
	}

	now := time.Now()
	verificationToken := utils.GenerateVerificationToken()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Firstname:         req.Firstname,
		Lastname:          req.Lastname,
		Email:             req.Email,
		PasswordHash:      passwordHash,
		Phone:             req.Phone,
		VerificationToken: &verificationToken,
		Status:            entity.CustomerStatusInactive,
	}

	// Customer and address persist as one unit.
	err = s.repo.Transact(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Customer.Create(ctx, customer); err != nil {
			return err
		}
		if req.Address != nil {
			return txRepo.Address.Create(ctx, newAddress(customer.ID, req.Address, now))
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to create customer", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := newAccessToken(ctx, s.repo.AccessToken, customer.ID)
	if err != nil {
		s.log.Error("Failed to issue access token", zap.Error(err), zap.String("customer_id", customer.ID.String()))
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	if err := s.sendVerification(ctx, customer, customer.Email); err != nil {
		return nil, err
	}

	s.log.Info("Customer registered",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email))

	return &response.TokenResponse{Token: token.AuthToken.String()}, nil
}

func newAddress(customerID uuid.UUID, params *request.AddressParams, now time.Time) *entity.Address {
	return &entity.Address{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID: customerID,
		Street:     params.Street,
		Street2:    params.Street2,
		City:       params.City,
		State:      params.State,
		Zip:        params.Zip,
		Status:     entity.AddressStatusActive,
	}
}

func (s *accountService) Activate(ctx context.Context, req *request.ActivateRequest) (*response.ActivationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	customer, err := s.repo.Customer.FindByVerificationToken(ctx, req.VerificationToken)
	if err != nil {
		s.log.Error("Failed to look up verification token", zap.Error(err))
		return nil, fmt.Errorf("look up verification token: %w", err)
	}
	if customer == nil {
		return nil, ErrInvalidToken
	}

	// Email change on an already confirmed account: promote the
	// pending address and issue a fresh token, no registration mail.
	if customer.PendingEmail != nil && customer.Status == entity.CustomerStatusConfirmed {
		if err := s.promotePendingEmail(ctx, customer); err != nil {
			return nil, err
		}

		token, err := newAccessToken(ctx, s.repo.AccessToken, customer.ID)
		if err != nil {
			return nil, fmt.Errorf("issue access token: %w", err)
		}

		keytag, err := s.repo.Keytag.FindByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}

		resp := &response.ActivationResponse{
			CustomerID: customer.ID.String(),
			Token:      token.AuthToken.String(),
		}
		if keytag != nil {
			resp.Keytag = keytag.KeytagUPCA
		}
		return resp, nil
	}

	resp, err := s.activate(ctx, customer)
	if err != nil {
		return nil, err
	}

	token, err := newAccessToken(ctx, s.repo.AccessToken, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	resp.Token = token.AuthToken.String()

	return resp, nil
}

func (s *accountService) ActivateByCode(ctx context.Context, customerID uuid.UUID, req *request.ActivateByCodeRequest) (*response.ActivationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}

	// Only the leading 5 characters of the stored token are matched.
	if customer.VerificationToken == nil || confirmationCode(*customer.VerificationToken) != req.ConfirmationCode {
		return nil, ErrInvalidCode
	}

	if customer.PendingEmail != nil && customer.Status == entity.CustomerStatusConfirmed {
		if err := s.promotePendingEmail(ctx, customer); err != nil {
			return nil, err
		}

		keytag, err := s.repo.Keytag.FindByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}

		resp := &response.ActivationResponse{CustomerID: customer.ID.String()}
		if keytag != nil {
			resp.Keytag = keytag.KeytagUPCA
		}
		return resp, nil
	}

	return s.activate(ctx, customer)
}

// promotePendingEmail moves pending_email to email and consumes the
// verification token.
func (s *accountService) promotePendingEmail(ctx context.Context, customer *entity.Customer) error {
	customer.Email = *customer.PendingEmail
	customer.PendingEmail = nil
	customer.VerificationToken = nil
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		s.log.Error("Failed to promote pending email",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()))
		return fmt.Errorf("promote pending email: %w", err)
	}

	s.log.Info("Pending email promoted",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email))
	return nil
}

// activate performs first-time activation: confirmed status, keytag
// attached, account password set, token consumed. All writes commit as
// one unit, then the registration notifications go out.
func (s *accountService) activate(ctx context.Context, customer *entity.Customer) (*response.ActivationResponse, error) {
	if customer.Status != entity.CustomerStatusInactive {
		return nil, ErrActivationFailed
	}

	var generatedPassword string
	if customer.PasswordHash == nil {
		generatedPassword = utils.GeneratePassword()
		hashed, err := utils.HashPassword(generatedPassword)
		if err != nil {
			return nil, fmt.Errorf("process password: %w", err)
		}
		customer.PasswordHash = &hashed
	}

	if customer.PendingEmail != nil {
		customer.Email = *customer.PendingEmail
		customer.PendingEmail = nil
	}
	customer.Status = entity.CustomerStatusConfirmed
	customer.VerificationToken = nil
	customer.UpdatedAt = time.Now()

	keytag := &entity.Keytag{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CustomerID: customer.ID,
		KeytagUPCA: utils.GenerateKeytagUPCA(),
		Status:     entity.KeytagStatusActive,
	}

	err := s.repo.Transact(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Customer.Update(ctx, customer); err != nil {
			return err
		}
		return txRepo.Keytag.Create(ctx, keytag)
	})
	if err != nil {
		s.log.Error("Failed to activate customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()))
		return nil, fmt.Errorf("%w: %v", ErrActivationFailed, err)
	}

	if err := s.sendRegistration(ctx, customer); err != nil {
		return nil, err
	}
	if err := s.notifyAdmins(ctx, s.repo, customer, keytag); err != nil {
		return nil, err
	}

	s.log.Info("Customer activated",
		zap.String("customer_id", customer.ID.String()),
		zap.String("keytag", keytag.KeytagUPCA))

	return &response.ActivationResponse{
		CustomerID: customer.ID.String(),
		Keytag:     keytag.KeytagUPCA,
		Password:   generatedPassword,
	}, nil
}

func (s *accountService) ResendVerificationToken(ctx context.Context, email string) error {
	customer, err := s.repo.Customer.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: customer", ErrNotFound)
	}

	if customer.Status != entity.CustomerStatusInactive {
		return fmt.Errorf("%w: only available for non-verified customers, use forgot password instead", ErrInvalidOperation)
	}

	return s.sendVerification(ctx, customer, customer.Email)
}

func (s *accountService) ChangeEmail(ctx context.Context, customerID uuid.UUID, req *request.ChangeEmailRequest) error {
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

	verificationToken := utils.GenerateVerificationToken()
	customer.PendingEmail = &req.Email
	customer.VerificationToken = &verificationToken
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		s.log.Error("Failed to request email change",
			zap.Error(err),
			zap.String("customer_id", customerID.String()))
		return fmt.Errorf("request email change: %w", err)
	}

	return s.sendChangeEmail(ctx, customer)
}

func (s *accountService) GetProfile(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error) {
	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer", ErrNotFound)
	}

	keytag, err := s.repo.Keytag.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	address, err := s.repo.Address.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return response.CustomerToResponse(customer, keytag, address), nil
}

func (s *accountService) UpdatePersonalData(ctx context.Context, customerID uuid.UUID, req *request.UpdatePersonalDataRequest) error {
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

	if req.Firstname != nil {
		customer.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		customer.Lastname = *req.Lastname
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		s.log.Error("Failed to update personal data",
			zap.Error(err),
			zap.String("customer_id", customerID.String()))
		return fmt.Errorf("update personal data: %w", err)
	}

	return nil
}

// UpdateAddress replaces the customer's address atomically. A missing
// or malformed address payload is normalized to empty rather than
// rejected.
func (s *accountService) UpdateAddress(ctx context.Context, customerID uuid.UUID, req *request.UpdateAddressRequest) error {
	if req.Address != nil {
		if errs := utils.ValidateStruct(req.Address); len(errs) > 0 {
			return newValidationError(errs)
		}
	}

	err := s.repo.Transact(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Address.DeleteByCustomer(ctx, customerID); err != nil {
			return err
		}
		if req.Address != nil {
			return txRepo.Address.Create(ctx, newAddress(customerID, req.Address, time.Now()))
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to update address",
			zap.Error(err),
			zap.String("customer_id", customerID.String()))
		return fmt.Errorf("update address: %w", err)
	}

	return nil
}

func (s *accountService) SetKeytagDelivery(ctx context.Context, customerID uuid.UUID, req *request.KeytagDeliveryRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(errs)
	}

	keytag, err := s.repo.Keytag.FindByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if keytag == nil {
		return fmt.Errorf("%w: keytag", ErrNotFound)
	}

	return s.repo.Keytag.UpdateDelivery(ctx, customerID, entity.KeytagDeliveryType(req.DeliveryType), req.Address)
}

func (s *accountService) Subscribe(ctx context.Context, customerID uuid.UUID, merchantID string) error {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return newValidationError(map[string]string{"merchant_id": "Must be a valid UUID"})
	}

	subscription, err := s.repo.Subscription.Find(ctx, customerID, merchantUUID)
	if err != nil {
		return err
	}

	if subscription != nil {
		return s.repo.Subscription.UpdateStatus(ctx, subscription.ID, entity.SubscriptionStatusActive)
	}

	return s.repo.Subscription.Create(ctx, &entity.Subscription{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CustomerID: customerID,
		MerchantID: merchantUUID,
		Status:     entity.SubscriptionStatusActive,
	})
}

func (s *accountService) Unsubscribe(ctx context.Context, customerID uuid.UUID, merchantID string) error {
	merchantUUID, err := uuid.Parse(merchantID)
	if err != nil {
		return newValidationError(map[string]string{"merchant_id": "Must be a valid UUID"})
	}

	subscription, err := s.repo.Subscription.Find(ctx, customerID, merchantUUID)
	if err != nil {
		return err
	}
	if subscription == nil {
		return fmt.Errorf("%w: subscription", ErrNotFound)
	}

	return s.repo.Subscription.UpdateStatus(ctx, subscription.ID, entity.SubscriptionStatusInactive)
}

// Delete soft-deletes an account. The email is rewritten to a unique
// synthetic address so the original one can register again.
func (s *accountService) Delete(ctx context.Context, email string) error {
	customer, err := s.repo.Customer.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: customer", ErrNotFound)
	}

	customer.Email = fmt.Sprintf("deleted%d@%s", time.Now().Unix(), s.config.App.DeletedDomain)
	customer.Status = entity.CustomerStatusDeleted
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		s.log.Error("Failed to delete customer", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("delete customer: %w", err)
	}

	s.log.Info("Customer deleted",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", email))
	return nil
}

func (s *accountService) ListCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	customers, err := s.repo.Customer.FindAll(ctx, req.PerPage, utils.CalculateOffset(req.Page, req.PerPage))
	if err != nil {
		s.log.Error("Failed to list customers", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("list customers: %w", err)
	}

	total, err := s.repo.Customer.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	items := make([]response.CustomerResponse, len(customers))
	for i, customer := range customers {
		items[i] = *response.CustomerToResponse(customer, nil, nil)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
