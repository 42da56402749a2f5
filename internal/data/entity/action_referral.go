package entity

import (
	"github.com/google/uuid"
)

// ActionReferral overrides the referral reward for a specific promo.
// When absent, the base behavioral action of the promo's organization
// is used instead.
type ActionReferral struct {
	BaseSimple
	ActionID       uuid.UUID    `db:"action_id"`
	OrganizationID uuid.UUID    `db:"organization_id"`
	Points         int          `db:"points"`
	Status         ActionStatus `db:"status"`
}
