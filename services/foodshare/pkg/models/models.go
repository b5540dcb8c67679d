package models

// Role is the account type chosen at signup.
type Role string

const (
	RoleDonor   Role = "donor"
	RoleUser    Role = "user"
	RoleCharity Role = "charity"
)

// Valid reports whether r is a known account type.
func (r Role) Valid() bool {
	return r == RoleDonor || r == RoleUser || r == RoleCharity
}

// IsDonor reports whether r posts listings rather than claiming them.
func (r Role) IsDonor() bool {
	return r == RoleDonor
}

// Label returns the human-readable name used in forms and badges.
func (r Role) Label() string {
	switch r {
	case RoleDonor:
		return "Food Donor"
	case RoleUser:
		return "Individual User"
	case RoleCharity:
		return "Charity Organization"
	default:
		return string(r)
	}
}

// User is the identity persisted for the current viewer.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"userType"`
}

// Registration is a validated signup submission.
type Registration struct {
	Name     string
	Email    string
	Location string
	Role     Role
}
