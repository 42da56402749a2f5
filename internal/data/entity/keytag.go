package entity

import (
	"github.com/google/uuid"
)

type KeytagStatus string

const (
	KeytagStatusActive   KeytagStatus = "active"
	KeytagStatusInactive KeytagStatus = "inactive"
)

type KeytagDeliveryType string

const (
	KeytagDeliveryPickup KeytagDeliveryType = "pickup"
	KeytagDeliveryMail   KeytagDeliveryType = "mail"
)

// Keytag is the physical UPC-A loyalty card identifier, bound 1:1 to a
// confirmed customer.
type Keytag struct {
	BaseSimple
	CustomerID      uuid.UUID           `db:"customer_id"`
	KeytagUPCA      string              `db:"keytag_upca"`
	Status          KeytagStatus        `db:"status"`
	DeliveryType    *KeytagDeliveryType `db:"delivery_type"`
	DeliveryAddress *string             `db:"delivery_address"`
}
