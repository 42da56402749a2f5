package adaptor

import (
	"encoding/json"
	"net/http"

	"loyalty-program/internal/dto/request"
	"loyalty-program/internal/usecase"
	"loyalty-program/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// Authorize handles POST /api/auth/authorize
func (h *AuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	var req request.AuthorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Authorize(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "authorize")
		return
	}

	utils.ResponseSuccess(w, "Authorization successful", response)
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ChangePassword(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed", nil)
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	email, err := h.service.ForgotPassword(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, "A new password has been sent", map[string]string{"email": email})
}

// FacebookSignup handles POST /api/auth/facebook/signup
func (h *AuthHandler) FacebookSignup(w http.ResponseWriter, r *http.Request) {
	var req request.FacebookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.FacebookSignup(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "facebook signup")
		return
	}

	utils.ResponseCreated(w, "Registration successful", response)
}

// FacebookSignin handles POST /api/auth/facebook/signin
func (h *AuthHandler) FacebookSignin(w http.ResponseWriter, r *http.Request) {
	var req request.FacebookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.FacebookSignin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "facebook signin")
		return
	}

	utils.ResponseSuccess(w, "Authorization successful", response)
}

// SendRewardsAppSMS handles POST /api/auth/rewards-app-sms
func (h *AuthHandler) SendRewardsAppSMS(w http.ResponseWriter, r *http.Request) {
	var req request.RewardsAppSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SendRewardsAppSMS(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "send rewards app SMS")
		return
	}

	utils.ResponseSuccess(w, "SMS sent", nil)
}
