package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	CustomerIDKey contextKey = "customer_id"
	ScopesKey     contextKey = "scopes"
	TokenKey      contextKey = "token"
)

func GetCustomerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	idVal := ctx.Value(CustomerIDKey)
	if idVal == nil {
		return uuid.Nil, false
	}

	idStr, ok := idVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	customerID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}

	return customerID, true
}

func GetScopesFromContext(ctx context.Context) ([]string, bool) {
	scopesVal := ctx.Value(ScopesKey)
	if scopesVal == nil {
		return nil, false
	}

	scopes, ok := scopesVal.([]string)
	return scopes, ok
}

func SetCustomerContext(ctx context.Context, customerID uuid.UUID, scopes []string) context.Context {
	ctx = context.WithValue(ctx, CustomerIDKey, customerID.String())
	ctx = context.WithValue(ctx, ScopesKey, scopes)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
