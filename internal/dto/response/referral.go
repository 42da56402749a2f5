package response

type PromoPointsResponse struct {
	Points int `json:"points"`
}

type ReferralResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	ActionID string `json:"action_id"`
	Status   string `json:"status"`
}
