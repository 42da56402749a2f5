package entity

import (
	"github.com/google/uuid"
)

type ReferralStatus string

const (
	ReferralStatusPending ReferralStatus = "pending"
	ReferralStatusDeleted ReferralStatus = "deleted"
)

// Referral links an inviting customer, an invitee email and a target
// promotion. At most one live referral exists per (action, email) pair;
// it flips pending -> deleted exactly once, when the reward transaction
// is recorded.
type Referral struct {
	Base
	CustomerID uuid.UUID      `db:"customer_id"`
	Email      string         `db:"email"`
	ActionID   uuid.UUID      `db:"action_id"`
	Status     ReferralStatus `db:"status"`
}
