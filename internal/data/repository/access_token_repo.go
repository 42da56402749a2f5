package repository

import (
	"context"
	"fmt"

	"loyalty-program/internal/data/entity"
	"loyalty-program/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AccessTokenRepository interface {
	Create(ctx context.Context, token *entity.AccessToken) error
	FindByToken(ctx context.Context, authToken string) (*entity.AccessToken, error)
}

type accessTokenRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAccessTokenRepository(db database.Querier, log *zap.Logger) AccessTokenRepository {
	return &accessTokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "access_token")),
	}
}

func (r *accessTokenRepository) Create(ctx context.Context, token *entity.AccessToken) error {
	query := `
		INSERT INTO access_tokens (id, customer_id, auth_token, scopes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.CustomerID,
		token.AuthToken,
		token.Scopes,
		token.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create access token",
			zap.Error(err),
			zap.String("customer_id", token.CustomerID.String()),
		)
		return fmt.Errorf("create access token for customer %s: %w", token.CustomerID.String(), err)
	}

	return nil
}

func (r *accessTokenRepository) FindByToken(ctx context.Context, authToken string) (*entity.AccessToken, error) {
	query := `
		SELECT id, customer_id, auth_token, scopes, created_at
		FROM access_tokens
		WHERE auth_token = $1
	`

	var token entity.AccessToken
	err := r.db.QueryRow(ctx, query, authToken).Scan(
		&token.ID,
		&token.CustomerID,
		&token.AuthToken,
		&token.Scopes,
		&token.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find access token", zap.Error(err))
		return nil, fmt.Errorf("find access token: %w", err)
	}

	return &token, nil
}
