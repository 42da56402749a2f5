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

type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Address, error)
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error
}

type addressRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAddressRepository(db database.Querier, log *zap.Logger) AddressRepository {
	return &addressRepository{
		db:  db,
		log: log.With(zap.String("repository", "address")),
	}
}

func (r *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	query := `
		INSERT INTO addresses (id, customer_id, street, street2, city, state, zip,
		                       status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		address.ID,
		address.CustomerID,
		address.Street,
		address.Street2,
		address.City,
		address.State,
		address.Zip,
		address.Status,
		address.CreatedAt,
		address.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create address",
			zap.Error(err),
			zap.String("customer_id", address.CustomerID.String()),
		)
		return fmt.Errorf("create address for customer %s: %w", address.CustomerID.String(), err)
	}

	return nil
}

func (r *addressRepository) FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Address, error) {
	query := `
		SELECT id, customer_id, street, street2, city, state, zip,
		       status, created_at, updated_at, deleted_at
		FROM addresses
		WHERE customer_id = $1 AND status = 'active' AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	var address entity.Address
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&address.ID,
		&address.CustomerID,
		&address.Street,
		&address.Street2,
		&address.City,
		&address.State,
		&address.Zip,
		&address.Status,
		&address.CreatedAt,
		&address.UpdatedAt,
		&address.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find address by customer",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find address for customer %s: %w", customerID.String(), err)
	}

	return &address, nil
}

// DeleteByCustomer retires every active address of the customer. Used
// together with Create inside the address-replace transaction.
func (r *addressRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	query := `
		UPDATE addresses
		SET status = 'deleted', updated_at = NOW()
		WHERE customer_id = $1 AND status = 'active'
	`

	_, err := r.db.Exec(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to delete customer addresses",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return fmt.Errorf("delete addresses for customer %s: %w", customerID.String(), err)
	}

	return nil
}
