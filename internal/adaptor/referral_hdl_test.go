package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/dto/request"
	"loyalty-program/internal/dto/response"
	"loyalty-program/internal/usecase"
	"loyalty-program/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockReferralService struct {
	createReferralFn      func(ctx context.Context, customerID uuid.UUID, req *request.CreateReferralRequest) (*response.ReferralResponse, error)
	useScannedPromoCodeFn func(ctx context.Context, customerID uuid.UUID, req *request.ScannedPromoRequest) (*response.PromoPointsResponse, error)
}

func (m *mockReferralService) CreateReferral(ctx context.Context, customerID uuid.UUID, req *request.CreateReferralRequest) (*response.ReferralResponse, error) {
	return m.createReferralFn(ctx, customerID, req)
}

func (m *mockReferralService) UseScannedPromoCode(ctx context.Context, customerID uuid.UUID, req *request.ScannedPromoRequest) (*response.PromoPointsResponse, error) {
	return m.useScannedPromoCodeFn(ctx, customerID, req)
}

func authedRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := utils.SetCustomerContext(r.Context(), uuid.New(), []string{entity.ScopePersonalRead, entity.ScopePersonalWrite})
	return r.WithContext(ctx)
}

func TestUseScannedPromoCodeHandler(t *testing.T) {
	tests := []struct {
		name       string
		request    *http.Request
		serviceErr error
		wantStatus int
	}{
		{
			name:       "success",
			request:    authedRequest(http.MethodPost, "/api/promos/scan", `{"barcode":"PROMO-123"}`),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing auth context",
			request:    httptest.NewRequest(http.MethodPost, "/api/promos/scan", strings.NewReader(`{"barcode":"PROMO-123"}`)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed body",
			request:    authedRequest(http.MethodPost, "/api/promos/scan", `{"barcode":`),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown promotion",
			request:    authedRequest(http.MethodPost, "/api/promos/scan", `{"barcode":"NOPE"}`),
			serviceErr: usecase.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "not scannable",
			request:    authedRequest(http.MethodPost, "/api/promos/scan", `{"barcode":"PROMO-123"}`),
			serviceErr: usecase.ErrNotAllowed,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockReferralService{
				useScannedPromoCodeFn: func(ctx context.Context, customerID uuid.UUID, req *request.ScannedPromoRequest) (*response.PromoPointsResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &response.PromoPointsResponse{Points: 100}, nil
				},
			}
			handler := NewReferralHandler(service, zap.NewNop())

			rec := httptest.NewRecorder()
			handler.UseScannedPromoCode(rec, tt.request)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var body utils.Response
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if !body.Status {
					t.Error("expected a success envelope")
				}
			}
		})
	}
}

func TestCreateReferralHandler_ValidationError(t *testing.T) {
	service := &mockReferralService{
		createReferralFn: func(ctx context.Context, customerID uuid.UUID, req *request.CreateReferralRequest) (*response.ReferralResponse, error) {
			return nil, &usecase.ValidationError{Fields: map[string]string{"email": "Invalid email format"}}
		},
	}
	handler := NewReferralHandler(service, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Create(rec, authedRequest(http.MethodPost, "/api/referrals", `{"email":"nope","action_id":"x"}`))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var body utils.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Status {
		t.Error("expected a failure envelope")
	}
}

func TestCreateReferralHandler_SelfReferral(t *testing.T) {
	service := &mockReferralService{
		createReferralFn: func(ctx context.Context, customerID uuid.UUID, req *request.CreateReferralRequest) (*response.ReferralResponse, error) {
			return nil, usecase.ErrSelfReferral
		},
	}
	handler := NewReferralHandler(service, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Create(rec, authedRequest(http.MethodPost, "/api/referrals", `{"email":"me@example.com","action_id":"x"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
