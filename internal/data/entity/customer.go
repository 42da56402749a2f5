package entity

type CustomerStatus string

const (
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusConfirmed CustomerStatus = "confirmed"
	CustomerStatusDeleted   CustomerStatus = "deleted"
)

// Customer lifecycle: created inactive on signup, confirmed on
// verification, deleted is a soft-delete with the email rewritten to
// keep the uniqueness constraint clear.
type Customer struct {
	Base
	Firstname         string         `db:"firstname"`
	Lastname          string         `db:"lastname"`
	Email             string         `db:"email"`
	PendingEmail      *string        `db:"pending_email"`
	PasswordHash      *string        `db:"password"`
	Phone             *string        `db:"phone"`
	FacebookID        *string        `db:"facebook_id"`
	VerificationToken *string        `db:"verification_token"`
	Status            CustomerStatus `db:"status"`
}

func (c *Customer) FullName() string {
	return c.Firstname + " " + c.Lastname
}
