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

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	Find(ctx context.Context, customerID, merchantID uuid.UUID) (*entity.Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) error
}

type subscriptionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSubscriptionRepository(db database.Querier, log *zap.Logger) SubscriptionRepository {
	return &subscriptionRepository{
		db:  db,
		log: log.With(zap.String("repository", "subscription")),
	}
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, customer_id, merchant_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		subscription.ID,
		subscription.CustomerID,
		subscription.MerchantID,
		subscription.Status,
		subscription.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create subscription",
			zap.Error(err),
			zap.String("customer_id", subscription.CustomerID.String()),
			zap.String("merchant_id", subscription.MerchantID.String()),
		)
		return fmt.Errorf("create subscription: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) Find(ctx context.Context, customerID, merchantID uuid.UUID) (*entity.Subscription, error) {
	query := `
		SELECT id, customer_id, merchant_id, status, created_at
		FROM subscriptions
		WHERE customer_id = $1 AND merchant_id = $2
	`

	var subscription entity.Subscription
	err := r.db.QueryRow(ctx, query, customerID, merchantID).Scan(
		&subscription.ID,
		&subscription.CustomerID,
		&subscription.MerchantID,
		&subscription.Status,
		&subscription.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subscription",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("merchant_id", merchantID.String()),
		)
		return nil, fmt.Errorf("find subscription: %w", err)
	}

	return &subscription, nil
}

func (r *subscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) error {
	query := `
		UPDATE subscriptions
		SET status = $2
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update subscription status",
			zap.Error(err),
			zap.String("subscription_id", id.String()),
		)
		return fmt.Errorf("update subscription %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s not found", id.String())
	}

	return nil
}
