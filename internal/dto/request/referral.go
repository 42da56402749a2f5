package request

type CreateReferralRequest struct {
	Email    string `json:"email" validate:"required,email"`
	ActionID string `json:"action_id" validate:"required,uuid4"`
}

type ScannedPromoRequest struct {
	Barcode string `json:"barcode" validate:"required"`
}
