package adaptor

import (
	"encoding/json"
	"net/http"

	"loyalty-program/internal/dto/request"
	"loyalty-program/internal/usecase"
	"loyalty-program/pkg/utils"

	"go.uber.org/zap"
)

type ReferralHandler struct {
	service usecase.ReferralService
	log     *zap.Logger
}

func NewReferralHandler(service usecase.ReferralService, log *zap.Logger) *ReferralHandler {
	return &ReferralHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/referrals
func (h *ReferralHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req request.CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.CreateReferral(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create referral")
		return
	}

	utils.ResponseCreated(w, "Referral created", response)
}

// UseScannedPromoCode handles POST /api/promos/scan
func (h *ReferralHandler) UseScannedPromoCode(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var req request.ScannedPromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UseScannedPromoCode(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "redeem promo code")
		return
	}

	utils.ResponseSuccess(w, "Promo code redeemed", response)
}
