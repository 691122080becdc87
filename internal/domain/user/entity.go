package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN" // Platform operator - manages complexes and approvals
	RoleAdmin      Role = "ADMIN"       // Complex manager - full access inside one complex
	RoleEmployee   Role = "EMPLOYEE"    // Front desk - reservations, tabs and clients
)

// Status tracks the approval workflow of a staff account.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	ComplexID    *string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsSuperAdmin checks if user operates the whole platform
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsApproved checks if the account passed the approval workflow
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// CanManageComplex checks if user can change complex settings, courts and stock
func (u *User) CanManageComplex() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
