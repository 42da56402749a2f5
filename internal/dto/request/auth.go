package request

type AuthorizeRequest struct {
	Login    string `json:"login" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ChangePasswordRequest struct {
	PasswordOld string `json:"password_old" validate:"required"`
	PasswordNew string `json:"password_new" validate:"required,min=6"`
}

// Identifier is either an email address or a keytag UPC-A number.
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type FacebookRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

type RewardsAppSMSRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=15"`
}
