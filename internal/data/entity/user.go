package entity

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// UserGroupAdmin is the administrator group notified on new accounts.
const UserGroupAdmin = 3

// User is a back-office account (association/merchant staff), distinct
// from Customer.
type User struct {
	Base
	Email       string     `db:"email"`
	Firstname   string     `db:"firstname"`
	Lastname    string     `db:"lastname"`
	UserGroupID int        `db:"user_group_id"`
	Status      UserStatus `db:"status"`
}

func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}
