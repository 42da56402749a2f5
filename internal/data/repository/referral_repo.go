package repository

import (
	"context"
	"fmt"

	"loyalty-program/internal/data/entity"
	"loyalty-program/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReferralRepository interface {
	Create(ctx context.Context, referral *entity.Referral) error
	FindPending(ctx context.Context, actionID uuid.UUID, email string) (*entity.Referral, error)
	MarkDeleted(ctx context.Context, id uuid.UUID) error
}

type referralRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReferralRepository(db database.Querier, log *zap.Logger) ReferralRepository {
	return &referralRepository{
		db:  db,
		log: log.With(zap.String("repository", "referral")),
	}
}

func (r *referralRepository) Create(ctx context.Context, referral *entity.Referral) error {
	query := `
		INSERT INTO referrals (id, customer_id, email, action_id, status,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		referral.ID,
		referral.CustomerID,
		referral.Email,
		referral.ActionID,
		referral.Status,
		referral.CreatedAt,
		referral.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create referral",
			zap.Error(err),
			zap.String("action_id", referral.ActionID.String()),
			zap.String("email", referral.Email),
		)
		return fmt.Errorf("create referral for %s: %w", referral.Email, err)
	}

	return nil
}

func (r *referralRepository) FindPending(ctx context.Context, actionID uuid.UUID, email string) (*entity.Referral, error) {
	query := `
		SELECT id, customer_id, email, action_id, status,
		       created_at, updated_at, deleted_at
		FROM referrals
		WHERE action_id = $1 AND email = $2 AND status = 'pending'
	`

	var referral entity.Referral
	err := r.db.QueryRow(ctx, query, actionID, email).Scan(
		&referral.ID,
		&referral.CustomerID,
		&referral.Email,
		&referral.ActionID,
		&referral.Status,
		&referral.CreatedAt,
		&referral.UpdatedAt,
		&referral.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending referral",
			zap.Error(err),
			zap.String("action_id", actionID.String()),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find pending referral for action %s email %s: %w", actionID.String(), email, err)
	}

	return &referral, nil
}

// MarkDeleted flips a referral pending -> deleted. The status guard
// makes concurrent redemption of the same referral fail instead of
// crediting twice.
func (r *referralRepository) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE referrals
		SET status = 'deleted', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark referral deleted",
			zap.Error(err),
			zap.String("referral_id", id.String()),
		)
		return fmt.Errorf("mark referral %s deleted: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("referral %s not pending", id.String())
	}

	return nil
}
