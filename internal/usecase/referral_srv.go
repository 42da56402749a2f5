package usecase

import (
	"context"
	"fmt"
	"strings"
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

type ReferralService interface {
	CreateReferral(ctx context.Context, customerID uuid.UUID, req *request.CreateReferralRequest) (*response.ReferralResponse, error)
	UseScannedPromoCode(ctx context.Context, customerID uuid.UUID, req *request.ScannedPromoRequest) (*response.PromoPointsResponse, error)
}

type referralService struct {
	repo *repository.Repository
	notifier
	log *zap.Logger
}

func NewReferralService(repo *repository.Repository, config *utils.Config, mail notification.Sender, log *zap.Logger) ReferralService {
	log = log.With(zap.String("service", "referral"))
	return &referralService{
		repo:     repo,
		notifier: notifier{mail: mail, config: config, log: log},
		log:      log,
	}
}

func (s *referralService) CreateReferral(ctx context.Context, customerID uuid.UUID, req *request.CreateReferralRequest) (*response.ReferralResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}
	actionID, err := uuid.Parse(req.ActionID)
	if err != nil {
		return nil, newValidationError(map[string]string{"action_id": "Must be a valid UUID"})
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer", ErrNotFound)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.EqualFold(email, customer.Email) {
		return nil, ErrSelfReferral
	}

	action, err := s.repo.Action.FindByID(ctx, actionID)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, fmt.Errorf("%w: promotion", ErrNotFound)
	}

	existing, err := s.repo.Referral.FindPending(ctx, actionID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReferral
	}

	now := time.Now()
	referral := &entity.Referral{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID: customerID,
		Email:      email,
		ActionID:   actionID,
		Status:     entity.ReferralStatusPending,
	}

	if err := s.repo.Referral.Create(ctx, referral); err != nil {
		s.log.Error("Failed to create referral",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("email", email))
		return nil, fmt.Errorf("create referral: %w", err)
	}

	merchant, err := s.repo.Organization.FindByID(ctx, action.OrganizationID)
	if err != nil {
		return nil, err
	}

	invitee, err := s.repo.Customer.FindByEmailAndStatus(ctx, email, entity.CustomerStatusConfirmed)
	if err != nil {
		return nil, err
	}

	if err := s.sendReferralInvite(ctx, customer, referral, action, merchant, invitee); err != nil {
		return nil, err
	}

	s.log.Info("Referral created",
		zap.String("referral_id", referral.ID.String()),
		zap.String("action_id", actionID.String()),
		zap.String("email", email))

	return &response.ReferralResponse{
		ID:       referral.ID.String(),
		Email:    referral.Email,
		ActionID: referral.ActionID.String(),
		Status:   string(referral.Status),
	}, nil
}

// UseScannedPromoCode redeems a scannable promotion barcode for the
// customer, then settles any pending referral that targeted this
// customer's email.
func (s *referralService) UseScannedPromoCode(ctx context.Context, customerID uuid.UUID, req *request.ScannedPromoRequest) (*response.PromoPointsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	promo, err := s.repo.Action.FindActiveByQrcode(ctx, req.Barcode)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, fmt.Errorf("%w: promotion", ErrNotFound)
	}
	if !promo.IsScannable {
		return nil, fmt.Errorf("%w: promotion is not scannable", ErrNotAllowed)
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer", ErrNotFound)
	}

	if err := s.recordTransaction(ctx, s.repo, customerID, promo, promo.Points); err != nil {
		s.log.Error("Failed to record promo transaction",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("action_id", promo.ID.String()))
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	if err := s.settleReferral(ctx, customer, promo); err != nil {
		return nil, err
	}

	s.log.Info("Promo code redeemed",
		zap.String("customer_id", customerID.String()),
		zap.String("action_id", promo.ID.String()),
		zap.Int("points", promo.Points))

	return &response.PromoPointsResponse{Points: promo.Points}, nil
}

// recordTransaction appends an approved behavioral ledger entry. The
// merchant fee derives from the liability rate setting; a missing
// setting yields a zero fee.
func (s *referralService) recordTransaction(ctx context.Context, repo *repository.Repository, customerID uuid.UUID, action *entity.Action, points int) error {
	rate, err := repo.Settings.ValueOf(ctx, entity.PropMerchantLiabilityRate)
	if err != nil {
		return err
	}

	now := time.Now()
	return repo.Transaction.Create(ctx, &entity.Transaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Type:         entity.TranTypeBehavioral,
		CustomerID:   customerID,
		MerchantID:   action.OrganizationID,
		ActionID:     action.ID,
		TranDatetime: now,
		Points:       points,
		Fee:          float64(points) * rate,
		FeeStatus:    entity.FeeStatusUnpaid,
		PointsStatus: entity.TranStatusApproved,
		Status:       entity.TranStatusApproved,
	})
}

// settleReferral credits the referrer when a pending referral matches
// the redeeming customer's email. The reward comes from the promo's
// referral override, falling back to the organization's base behavioral
// action. No reward source means the referral simply stays pending.
// The credit and the pending -> deleted flip commit as one unit, so a
// concurrent redemption cannot credit the referrer twice.
func (s *referralService) settleReferral(ctx context.Context, customer *entity.Customer, promo *entity.Action) error {
	referral, err := s.repo.Referral.FindPending(ctx, promo.ID, customer.Email)
	if err != nil {
		return err
	}
	if referral == nil {
		return nil
	}

	rewardAction := promo
	points := 0

	override, err := s.repo.ActionReferral.FindActiveByAction(ctx, promo.ID)
	if err != nil {
		return err
	}
	if override != nil {
		points = override.Points
	} else {
		base, err := s.repo.Action.FindBaseBehavioral(ctx, promo.OrganizationID)
		if err != nil {
			return err
		}
		if base == nil {
			s.log.Warn("No referral reward configured",
				zap.String("action_id", promo.ID.String()),
				zap.String("organization_id", promo.OrganizationID.String()))
			return nil
		}
		rewardAction = base
		points = base.Points
	}

	err = s.repo.Transact(ctx, func(txRepo *repository.Repository) error {
		if err := s.recordTransaction(ctx, txRepo, referral.CustomerID, rewardAction, points); err != nil {
			return err
		}
		return txRepo.Referral.MarkDeleted(ctx, referral.ID)
	})
	if err != nil {
		s.log.Error("Failed to settle referral",
			zap.Error(err),
			zap.String("referral_id", referral.ID.String()))
		return fmt.Errorf("settle referral: %w", err)
	}

	referrer, err := s.repo.Customer.FindByID(ctx, referral.CustomerID)
	if err != nil {
		return err
	}
	if referrer == nil {
		return nil
	}

	if err := s.sendReferralPoints(ctx, points, referrer, customer.Email); err != nil {
		return err
	}

	s.log.Info("Referral settled",
		zap.String("referral_id", referral.ID.String()),
		zap.String("referrer_id", referral.CustomerID.String()),
		zap.Int("points", points))
	return nil
}
