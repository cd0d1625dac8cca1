// Package account defines staff accounts. Counselor-role accounts are the
// fan-out targets for high-risk alerts.
package account

// Role is an account role.
type Role string

// Account roles.
const (
	RoleAdmin     Role = "admin"
	RoleCounselor Role = "counselor"
)

// Account is a staff account (immutable value object).
type Account struct {
	id        string
	email     string
	role      Role
	createdAt int64 // unix millis
}

// New creates an Account.
func New(id, email string, role Role, nowMillis int64) Account {
	return Account{id: id, email: email, role: role, createdAt: nowMillis}
}

// Reconstruct rebuilds an Account from storage.
func Reconstruct(id, email string, role Role, createdAt int64) Account {
	return Account{id: id, email: email, role: role, createdAt: createdAt}
}

// ID returns the account identifier.
func (a Account) ID() string { return a.id }

// Email returns the contact address.
func (a Account) Email() string { return a.email }

// AccountRole returns the role.
func (a Account) AccountRole() Role { return a.role }

// CreatedAt returns the unix-millis creation timestamp.
func (a Account) CreatedAt() int64 { return a.createdAt }
