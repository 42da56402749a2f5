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

type KeytagRepository interface {
	Create(ctx context.Context, keytag *entity.Keytag) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Keytag, error)
	UpdateDelivery(ctx context.Context, customerID uuid.UUID, deliveryType entity.KeytagDeliveryType, address *string) error
}

type keytagRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewKeytagRepository(db database.Querier, log *zap.Logger) KeytagRepository {
	return &keytagRepository{
		db:  db,
		log: log.With(zap.String("repository", "keytag")),
	}
}

func (r *keytagRepository) Create(ctx context.Context, keytag *entity.Keytag) error {
	query := `
		INSERT INTO keytags (id, customer_id, keytag_upca, status, delivery_type,
		                     delivery_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		keytag.ID,
		keytag.CustomerID,
		keytag.KeytagUPCA,
		keytag.Status,
		keytag.DeliveryType,
		keytag.DeliveryAddress,
		keytag.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create keytag",
			zap.Error(err),
			zap.String("customer_id", keytag.CustomerID.String()),
		)
		return fmt.Errorf("create keytag for customer %s: %w", keytag.CustomerID.String(), err)
	}

	return nil
}

func (r *keytagRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Keytag, error) {
	query := `
		SELECT id, customer_id, keytag_upca, status, delivery_type,
		       delivery_address, created_at
		FROM keytags
		WHERE customer_id = $1
	`

	var keytag entity.Keytag
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&keytag.ID,
		&keytag.CustomerID,
		&keytag.KeytagUPCA,
		&keytag.Status,
		&keytag.DeliveryType,
		&keytag.DeliveryAddress,
		&keytag.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find keytag by customer",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find keytag for customer %s: %w", customerID.String(), err)
	}

	return &keytag, nil
}

func (r *keytagRepository) UpdateDelivery(ctx context.Context, customerID uuid.UUID, deliveryType entity.KeytagDeliveryType, address *string) error {
	query := `
		UPDATE keytags
		SET delivery_type = $2, delivery_address = $3
		WHERE customer_id = $1
	`

	result, err := r.db.Exec(ctx, query, customerID, deliveryType, address)
	if err != nil {
		r.log.Error("Failed to update keytag delivery",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return fmt.Errorf("update keytag delivery for customer %s: %w", customerID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("keytag for customer %s not found", customerID.String())
	}

	return nil
}
