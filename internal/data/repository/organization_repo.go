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

type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	FindAssociation(ctx context.Context) (*entity.Organization, error)
}

type organizationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOrganizationRepository(db database.Querier, log *zap.Logger) OrganizationRepository {
	return &organizationRepository{
		db:  db,
		log: log.With(zap.String("repository", "organization")),
	}
}

func scanOrganization(row pgx.Row) (*entity.Organization, error) {
	var org entity.Organization
	err := row.Scan(
		&org.ID,
		&org.Title,
		&org.IsAssociation,
		&org.Status,
		&org.CreatedAt,
		&org.UpdatedAt,
		&org.DeletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	query := `
		SELECT id, title, is_association, status, created_at, updated_at, deleted_at
		FROM organizations
		WHERE id = $1 AND deleted_at IS NULL
	`

	org, err := scanOrganization(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find organization by ID",
			zap.Error(err),
			zap.String("organization_id", id.String()),
		)
		return nil, fmt.Errorf("find organization by ID %s: %w", id.String(), err)
	}

	return org, nil
}

// FindAssociation returns the organization running the program.
func (r *organizationRepository) FindAssociation(ctx context.Context) (*entity.Organization, error) {
	query := `
		SELECT id, title, is_association, status, created_at, updated_at, deleted_at
		FROM organizations
		WHERE is_association = true AND deleted_at IS NULL
		LIMIT 1
	`

	org, err := scanOrganization(r.db.QueryRow(ctx, query))
	if err != nil {
		r.log.Error("Failed to find association organization", zap.Error(err))
		return nil, fmt.Errorf("find association organization: %w", err)
	}

	return org, nil
}
