package request

type AddressParams struct {
	Street  string  `json:"street" validate:"required,max=100"`
	Street2 *string `json:"street2,omitempty" validate:"omitempty,max=100"`
	City    string  `json:"city" validate:"required,max=60"`
	State   string  `json:"state" validate:"required,max=30"`
	Zip     string  `json:"zip" validate:"required,min=4,max=10"`
}

type RegisterRequest struct {
	Firstname string         `json:"firstname" validate:"required,max=60"`
	Lastname  string         `json:"lastname" validate:"required,max=60"`
	Email     string         `json:"email" validate:"required,email"`
	Password  *string        `json:"password,omitempty" validate:"omitempty,min=6"`
	Phone     *string        `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Address   *AddressParams `json:"address,omitempty"`
}

type ActivateRequest struct {
	VerificationToken string `json:"verification_token" validate:"required"`
}

type ActivateByCodeRequest struct {
	ConfirmationCode string `json:"confirmation_code" validate:"required,len=5"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdatePersonalDataRequest struct {
	Firstname *string `json:"firstname,omitempty" validate:"omitempty,max=60"`
	Lastname  *string `json:"lastname,omitempty" validate:"omitempty,max=60"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

type UpdateAddressRequest struct {
	Address *AddressParams `json:"address"`
}

type KeytagDeliveryRequest struct {
	DeliveryType string  `json:"delivery_type" validate:"required,oneof=pickup mail"`
	Address      *string `json:"address,omitempty"`
}

type SubscriptionRequest struct {
	MerchantID string `json:"merchant_id" validate:"required,uuid4"`
}

type DeleteCustomerRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}
