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

type ActionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Action, error)
	FindActiveByQrcode(ctx context.Context, qrcode string) (*entity.Action, error)
	FindBaseBehavioral(ctx context.Context, organizationID uuid.UUID) (*entity.Action, error)
}

type actionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewActionRepository(db database.Querier, log *zap.Logger) ActionRepository {
	return &actionRepository{
		db:  db,
		log: log.With(zap.String("repository", "action")),
	}
}

const actionColumns = `id, organization_id, action_type_id, title, brief_description, qrcode,
	       is_scannable, is_base, date_from, date_to, points, coeff_modifier,
	       status, created_at, updated_at, deleted_at`

func scanAction(row pgx.Row) (*entity.Action, error) {
	var action entity.Action
	err := row.Scan(
		&action.ID,
		&action.OrganizationID,
		&action.ActionTypeID,
		&action.Title,
		&action.BriefDescription,
		&action.Qrcode,
		&action.IsScannable,
		&action.IsBase,
		&action.DateFrom,
		&action.DateTo,
		&action.Points,
		&action.CoeffModifier,
		&action.Status,
		&action.CreatedAt,
		&action.UpdatedAt,
		&action.DeletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &action, nil
}

func (r *actionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Action, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM actions
		WHERE id = $1 AND deleted_at IS NULL
	`

	action, err := scanAction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find action by ID",
			zap.Error(err),
			zap.String("action_id", id.String()),
		)
		return nil, fmt.Errorf("find action by ID %s: %w", id.String(), err)
	}

	return action, nil
}

func (r *actionRepository) FindActiveByQrcode(ctx context.Context, qrcode string) (*entity.Action, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM actions
		WHERE qrcode = $1 AND status = 'active' AND deleted_at IS NULL
	`

	action, err := scanAction(r.db.QueryRow(ctx, query, qrcode))
	if err != nil {
		r.log.Error("Failed to find action by qrcode",
			zap.Error(err),
			zap.String("qrcode", qrcode),
		)
		return nil, fmt.Errorf("find action by qrcode %s: %w", qrcode, err)
	}

	return action, nil
}

// FindBaseBehavioral resolves the organization's base behavioral-reward
// action, the fallback used to credit referrers.
func (r *actionRepository) FindBaseBehavioral(ctx context.Context, organizationID uuid.UUID) (*entity.Action, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM actions
		WHERE action_type_id = $1
		  AND is_base = true
		  AND status = 'active'
		  AND organization_id = $2
		  AND deleted_at IS NULL
	`

	action, err := scanAction(r.db.QueryRow(ctx, query, entity.ActionTypeBehavioral, organizationID))
	if err != nil {
		r.log.Error("Failed to find base behavioral action",
			zap.Error(err),
			zap.String("organization_id", organizationID.String()),
		)
		return nil, fmt.Errorf("find base behavioral action for organization %s: %w", organizationID.String(), err)
	}

	return action, nil
}
