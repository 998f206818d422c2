package domain

type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleReceptionist UserRole = "receptionist"
	UserRoleAccountant   UserRole = "accountant"
	UserRoleDoctor       UserRole = "doctor"
	UserRoleResident     UserRole = "resident"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleReceptionist, UserRoleAccountant, UserRoleDoctor, UserRoleResident:
		return true
	}
	return false
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   int64    `json:"id"`
	Role UserRole `json:"role"`
}
