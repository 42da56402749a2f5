package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActionStatus string

const (
	ActionStatusActive   ActionStatus = "active"
	ActionStatusInactive ActionStatus = "inactive"
)

// ActionTypeBehavioral is the base behavioral-reward action type used
// to credit a referrer once their invitee redeems.
const ActionTypeBehavioral = 13

// Action is a merchant-defined promotion or reward.
type Action struct {
	Base
	OrganizationID   uuid.UUID    `db:"organization_id"`
	ActionTypeID     int          `db:"action_type_id"`
	Title            string       `db:"title"`
	BriefDescription string       `db:"brief_description"`
	Qrcode           *string      `db:"qrcode"`
	IsScannable      bool         `db:"is_scannable"`
	IsBase           bool         `db:"is_base"`
	DateFrom         time.Time    `db:"date_from"`
	DateTo           time.Time    `db:"date_to"`
	Points           int          `db:"points"`
	CoeffModifier    *float64     `db:"coeff_modifier"`
	Status           ActionStatus `db:"status"`
}
