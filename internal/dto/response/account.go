package response

import (
	"time"

	"loyalty-program/internal/data/entity"
)

type TokenResponse struct {
	Token string `json:"token"`
}

// ActivationResponse is returned on first-time activation. Password is
// present only when the account password was generated during the
// activation.
type ActivationResponse struct {
	CustomerID string `json:"id"`
	Keytag     string `json:"keytag"`
	Token      string `json:"token,omitempty"`
	Password   string `json:"password,omitempty"`
}

type AddressResponse struct {
	Street  string  `json:"street"`
	Street2 *string `json:"street2,omitempty"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Zip     string  `json:"zip"`
}

type CustomerResponse struct {
	ID           string                `json:"id"`
	Firstname    string                `json:"firstname"`
	Lastname     string                `json:"lastname"`
	Email        string                `json:"email"`
	PendingEmail *string               `json:"pending_email,omitempty"`
	Phone        *string               `json:"phone,omitempty"`
	Status       entity.CustomerStatus `json:"status"`
	Keytag       *string               `json:"keytag,omitempty"`
	Address      *AddressResponse      `json:"address,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

func CustomerToResponse(customer *entity.Customer, keytag *entity.Keytag, address *entity.Address) *CustomerResponse {
	resp := &CustomerResponse{
		ID:           customer.ID.String(),
		Firstname:    customer.Firstname,
		Lastname:     customer.Lastname,
		Email:        customer.Email,
		PendingEmail: customer.PendingEmail,
		Phone:        customer.Phone,
		Status:       customer.Status,
		CreatedAt:    customer.CreatedAt,
	}

	if keytag != nil {
		resp.Keytag = &keytag.KeytagUPCA
	}

	if address != nil {
		resp.Address = &AddressResponse{
			Street:  address.Street,
			Street2: address.Street2,
			City:    address.City,
			State:   address.State,
			Zip:     address.Zip,
		}
	}

	return resp
}
