package entity

import (
	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
)

// Subscription is a customer's opt-in to a merchant's promotions.
type Subscription struct {
	BaseSimple
	CustomerID uuid.UUID          `db:"customer_id"`
	MerchantID uuid.UUID          `db:"merchant_id"`
	Status     SubscriptionStatus `db:"status"`
}
