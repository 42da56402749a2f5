package entity

import (
	"github.com/google/uuid"
)

type AddressStatus string

const (
	AddressStatusActive  AddressStatus = "active"
	AddressStatusDeleted AddressStatus = "deleted"
)

type Address struct {
	Base
	CustomerID uuid.UUID     `db:"customer_id"`
	Street     string        `db:"street"`
	Street2    *string       `db:"street2"`
	City       string        `db:"city"`
	State      string        `db:"state"`
	Zip        string        `db:"zip"`
	Status     AddressStatus `db:"status"`
}
