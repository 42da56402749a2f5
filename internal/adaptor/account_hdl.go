package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"loyalty-program/internal/dto/request"
	"loyalty-program/internal/usecase"
	"loyalty-program/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AccountHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewAccountHandler(service usecase.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log,
	}
}

// Register handles POST /api/customers
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful. Check your email to activate the account.", response)
}

// Activate handles POST /api/customers/activate
func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req request.ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Activate(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "activate")
		return
	}

	utils.ResponseSuccess(w, "Account activated", response)
}

// ActivateByCode handles POST /api/customers/activate-by-code
func (h *AccountHandler) ActivateByCode(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req request.ActivateByCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.ActivateByCode(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "activate by code")
		return
	}

	utils.ResponseSuccess(w, "Account activated", response)
}

// ResendVerification handles POST /api/customers/resend-verification
func (h *AccountHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req request.ResendVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ResendVerificationToken(r.Context(), req.Email); err != nil {
		handleServiceError(w, h.log, err, "resend verification")
		return
	}

	utils.ResponseSuccess(w, "Verification email sent", nil)
}

// ChangeEmail handles POST /api/customers/me/email
func (h *AccountHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req request.ChangeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ChangeEmail(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "change email")
		return
	}

	utils.ResponseSuccess(w, "Verification email sent to the new address", nil)
}

// GetProfile handles GET /api/customers/me
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	response, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", response)
}

// UpdatePersonalData handles PUT /api/customers/me
func (h *AccountHandler) UpdatePersonalData(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req request.UpdatePersonalDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdatePersonalData(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "update personal data")
		return
	}

	utils.ResponseSuccess(w, "Personal data updated", nil)
}

// UpdateAddress handles PUT /api/customers/me/address
func (h *AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req request.UpdateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateAddress(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "update address")
		return
	}

	utils.ResponseSuccess(w, "Address updated", nil)
}

// SetKeytagDelivery handles PUT /api/customers/me/keytag-delivery
func (h *AccountHandler) SetKeytagDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req request.KeytagDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetKeytagDelivery(r.Context(), id, &req); err != nil {
		handleServiceError(w, h.log, err, "set keytag delivery")
		return
	}

	utils.ResponseSuccess(w, "Keytag delivery updated", nil)
}

// Subscribe handles POST /api/customers/me/subscriptions/{merchantID}
func (h *AccountHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Subscribe(r.Context(), id, chi.URLParam(r, "merchantID")); err != nil {
		handleServiceError(w, h.log, err, "subscribe")
		return
	}

	utils.ResponseSuccess(w, "Subscribed", nil)
}

// Unsubscribe handles DELETE /api/customers/me/subscriptions/{merchantID}
func (h *AccountHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(r.Context(), id, chi.URLParam(r, "merchantID")); err != nil {
		handleServiceError(w, h.log, err, "unsubscribe")
		return
	}

	utils.ResponseSuccess(w, "Unsubscribed", nil)
}

// VerifyToken handles GET /api/customers/verify-token. Reaching it
// through the auth middleware proves the token; the body echoes the
// customer it belongs to.
func (h *AccountHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	utils.ResponseSuccess(w, "Token is valid", map[string]string{"customer_id": id.String()})
}

// Delete handles DELETE /api/customers (admin only)
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req request.DeleteCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.Delete(r.Context(), req.Email); err != nil {
		handleServiceError(w, h.log, err, "delete customer")
		return
	}

	utils.ResponseSuccess(w, "Customer deleted", nil)
}

// List handles GET /api/customers (admin only)
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	response, err := h.service.ListCustomers(r.Context(), &request.PaginatedRequest{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "list customers")
		return
	}

	utils.ResponseSuccess(w, "Customers retrieved", response)
}
