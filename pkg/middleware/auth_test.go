package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"loyalty-program/internal/data/entity"
	"loyalty-program/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockTokenRepo struct {
	findByTokenFn func(ctx context.Context, authToken string) (*entity.AccessToken, error)
}

func (m *mockTokenRepo) Create(ctx context.Context, token *entity.AccessToken) error {
	return nil
}

func (m *mockTokenRepo) FindByToken(ctx context.Context, authToken string) (*entity.AccessToken, error) {
	if m.findByTokenFn != nil {
		return m.findByTokenFn(ctx, authToken)
	}
	return nil, nil
}

func TestAuthToken(t *testing.T) {
	customerID := uuid.New()
	validToken := uuid.New().String()

	repo := &mockTokenRepo{
		findByTokenFn: func(ctx context.Context, authToken string) (*entity.AccessToken, error) {
			if authToken == validToken {
				return &entity.AccessToken{
					CustomerID: customerID,
					Scopes:     []string{entity.ScopePersonalRead},
				}, nil
			}
			return nil, nil
		},
	}

	var gotCustomer uuid.UUID
	var gotScopes []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCustomer, _ = utils.GetCustomerIDFromContext(r.Context())
		gotScopes, _ = utils.GetScopesFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthToken(repo, zap.NewNop())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "non uuid token", header: "Bearer not-a-uuid", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer " + uuid.New().String(), wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + validToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/customers/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, r)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK {
				if gotCustomer != customerID {
					t.Error("customer id not propagated to the request context")
				}
				if len(gotScopes) != 1 || gotScopes[0] != entity.ScopePersonalRead {
					t.Errorf("scopes not propagated, got %v", gotScopes)
				}
			}
		})
	}
}

func TestScope(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Scope(entity.ScopePersonalWrite, zap.NewNop())(next)

	t.Run("missing scope", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/api/customers/me", nil)
		ctx := utils.SetCustomerContext(r.Context(), uuid.New(), []string{entity.ScopePersonalRead})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, r.WithContext(ctx))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("no auth context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/customers/me", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("scope granted", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/api/customers/me", nil)
		ctx := utils.SetCustomerContext(r.Context(), uuid.New(), []string{entity.ScopePersonalRead, entity.ScopePersonalWrite})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, r.WithContext(ctx))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Admin(zap.NewNop())(next)

	r := httptest.NewRequest(http.MethodDelete, "/api/customers", nil)
	ctx := utils.SetCustomerContext(r.Context(), uuid.New(), []string{entity.ScopePersonalRead, entity.ScopePersonalWrite})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r.WithContext(ctx))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer tokens must not pass the admin gate, got %d", rec.Code)
	}

	r = httptest.NewRequest(http.MethodDelete, "/api/customers", nil)
	ctx = utils.SetCustomerContext(r.Context(), uuid.New(), []string{entity.ScopeAdmin})
	rec = httptest.NewRecorder()

	handler.ServeHTTP(rec, r.WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin scope must pass, got %d", rec.Code)
	}
}
