package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TranTypeBehavioral TransactionType = "behavioral"
	TranTypePurchase   TransactionType = "purchase"
)

type TransactionStatus string

const (
	TranStatusApproved TransactionStatus = "approved"
	TranStatusPending  TransactionStatus = "pending"
	TranStatusDeclined TransactionStatus = "declined"
)

type FeeStatus string

const (
	FeeStatusUnpaid FeeStatus = "unpaid"
	FeeStatusPaid   FeeStatus = "paid"
)

// Transaction is an append-only points ledger entry. Fee is always
// derived (points x merchant liability rate), never supplied.
type Transaction struct {
	BaseSimple
	Type         TransactionType   `db:"type"`
	CustomerID   uuid.UUID         `db:"customer_id"`
	MerchantID   uuid.UUID         `db:"merchant_id"`
	ActionID     uuid.UUID         `db:"action_id"`
	TranDatetime time.Time         `db:"trandatetime"`
	Points       int               `db:"points"`
	Fee          float64           `db:"fee"`
	FeeStatus    FeeStatus         `db:"fee_status"`
	PointsStatus TransactionStatus `db:"points_status"`
	Status       TransactionStatus `db:"status"`
}
