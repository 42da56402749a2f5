package adaptor

import (
	"errors"
	"net/http"

	"loyalty-program/internal/notification"
	"loyalty-program/internal/usecase"
	"loyalty-program/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Account  *AccountHandler
	Auth     *AuthHandler
	Referral *ReferralHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Account:  NewAccountHandler(service.Account, log),
		Auth:     NewAuthHandler(service.Auth, log),
		Referral: NewReferralHandler(service.Referral, log),
	}
}

// handleServiceError maps use case errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError
	var deliveryErr *notification.DeliveryError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Any("errors", validationErr.Fields))
		utils.ResponseUnprocessable(w, "Validation failed", validationErr.Fields)

	case errors.As(err, &deliveryErr):
		log.Error(operation+" delivery failed", zap.Error(err), zap.String("provider", deliveryErr.Provider))
		utils.ResponseBadGateway(w, "Notification delivery failed")

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrIncorrectPassword):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, usecase.ErrAccountNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotAllowed):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrInvalidCode),
		errors.Is(err, usecase.ErrActivationFailed),
		errors.Is(err, usecase.ErrInvalidOperation),
		errors.Is(err, usecase.ErrConfigurationNotReady),
		errors.Is(err, usecase.ErrInvalidAccessToken),
		errors.Is(err, usecase.ErrAccountExists),
		errors.Is(err, usecase.ErrAccountExistsUnlinked),
		errors.Is(err, usecase.ErrSelfReferral),
		errors.Is(err, usecase.ErrDuplicateReferral):
		log.Warn(operation+" failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// customerID pulls the authenticated customer from the request context.
// The auth middleware populates it; absence means a wiring mistake, but
// the client still gets a clean 401.
func customerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := utils.GetCustomerIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}
