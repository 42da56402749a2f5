package entity

type OrganizationStatus string

const (
	OrganizationStatusActive   OrganizationStatus = "active"
	OrganizationStatusInactive OrganizationStatus = "inactive"
)

// Organization is a participating merchant. The association is the
// single organization running the loyalty program itself.
type Organization struct {
	Base
	Title         string             `db:"title"`
	IsAssociation bool               `db:"is_association"`
	Status        OrganizationStatus `db:"status"`
}
