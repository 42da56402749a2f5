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

type ActionReferralRepository interface {
	FindActiveByAction(ctx context.Context, actionID uuid.UUID) (*entity.ActionReferral, error)
}

type actionReferralRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewActionReferralRepository(db database.Querier, log *zap.Logger) ActionReferralRepository {
	return &actionReferralRepository{
		db:  db,
		log: log.With(zap.String("repository", "action_referral")),
	}
}

func (r *actionReferralRepository) FindActiveByAction(ctx context.Context, actionID uuid.UUID) (*entity.ActionReferral, error) {
	query := `
		SELECT id, action_id, organization_id, points, status, created_at
		FROM action_referrals
		WHERE action_id = $1 AND status = 'active'
	`

	var ar entity.ActionReferral
	err := r.db.QueryRow(ctx, query, actionID).Scan(
		&ar.ID,
		&ar.ActionID,
		&ar.OrganizationID,
		&ar.Points,
		&ar.Status,
		&ar.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find action referral",
			zap.Error(err),
			zap.String("action_id", actionID.String()),
		)
		return nil, fmt.Errorf("find action referral for action %s: %w", actionID.String(), err)
	}

	return &ar, nil
}
