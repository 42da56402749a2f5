package usecase

import (
	"context"
	"time"

	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"

	"github.com/google/uuid"
)

// newAccessToken issues a fresh full-access token for the customer.
// Previous tokens stay valid; there is no expiry, only renewal on
// login.
func newAccessToken(ctx context.Context, tokens repository.AccessTokenRepository, customerID uuid.UUID) (*entity.AccessToken, error) {
	token := &entity.AccessToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CustomerID: customerID,
		AuthToken:  uuid.New(),
		Scopes:     []string{entity.ScopePersonalRead, entity.ScopePersonalWrite},
	}

	if err := tokens.Create(ctx, token); err != nil {
		return nil, err
	}

	return token, nil
}
