package repository

import (
	"context"
	"fmt"

	"loyalty-program/internal/data/entity"
	"loyalty-program/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}

type transactionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTransactionRepository(db database.Querier, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

// Create appends a ledger entry. Transactions are never updated after
// creation except for their status fields.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, customer_id, merchant_id, action_id,
		                          trandatetime, points, fee, fee_status,
		                          points_status, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		transaction.ID,
		transaction.Type,
		transaction.CustomerID,
		transaction.MerchantID,
		transaction.ActionID,
		transaction.TranDatetime,
		transaction.Points,
		transaction.Fee,
		transaction.FeeStatus,
		transaction.PointsStatus,
		transaction.Status,
		transaction.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create transaction",
			zap.Error(err),
			zap.String("customer_id", transaction.CustomerID.String()),
			zap.String("type", string(transaction.Type)),
		)
		return fmt.Errorf("create %s transaction for customer %s: %w",
			transaction.Type, transaction.CustomerID.String(), err)
	}

	return nil
}

func (r *transactionRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE customer_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, customerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count transactions",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count transactions for customer %s: %w", customerID.String(), err)
	}

	return count, nil
}
