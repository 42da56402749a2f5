package entity

import (
	"github.com/google/uuid"
)

// Access token scopes. A fresh full-access token is issued on every
// successful authorization; tokens carry no expiry (renewal on login).
const (
	ScopePersonalRead  = "customer.personal:read"
	ScopePersonalWrite = "customer.personal:write"
	ScopeAdmin         = "admin"
)

type AccessToken struct {
	BaseSimple
	CustomerID uuid.UUID `db:"customer_id"`
	AuthToken  uuid.UUID `db:"auth_token"`
	Scopes     []string  `db:"scopes"`
}
