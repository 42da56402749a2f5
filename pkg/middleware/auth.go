package middleware

import (
	"net/http"
	"slices"
	"strings"

	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"
	"loyalty-program/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthToken validates the Bearer access token and puts the customer id
// and the token's scopes on the request context.
func AuthToken(tokenRepo repository.AccessTokenRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}
			rawToken := parts[1]

			if _, err := uuid.Parse(rawToken); err != nil {
				utils.ResponseUnauthorized(w, "Invalid access token")
				return
			}

			token, err := tokenRepo.FindByToken(r.Context(), rawToken)
			if err != nil {
				logger.Error("Failed to validate access token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if token == nil {
				logger.Warn("Unknown access token", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid access token")
				return
			}

			ctx := utils.SetCustomerContext(r.Context(), token.CustomerID, token.Scopes)
			ctx = utils.SetTokenContext(ctx, rawToken)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Scope rejects requests whose token does not carry the required scope.
// Runs after AuthToken.
func Scope(required string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scopes, ok := utils.GetScopesFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !slices.Contains(scopes, required) {
				logger.Warn("Insufficient scope",
					zap.String("required", required),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Insufficient scope")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin gates back-office operations behind the admin scope.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return Scope(entity.ScopeAdmin, logger)
}
