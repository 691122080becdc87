package user

import (
	"time"

	"github.com/pierreiost/quadracerta/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string  `json:"id"`
	ComplexID *string `json:"complex_id,omitempty"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone,omitempty"`
	Role      Role    `json:"role"`
	Status    Status  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		ComplexID: u.ComplexID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// ApproveUserRequest binds a pending account to a complex with a role.
// A SUPER_ADMIN approval leaves ComplexID empty.
type ApproveUserRequest struct {
	ID        string  `json:"-"`
	ComplexID *string `json:"complex_id,omitempty"`
	Role      Role    `json:"role"`
}

func (r *ApproveUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if !r.Role.IsValid() {
		errs.Add("role", "role must be one of SUPER_ADMIN, ADMIN, EMPLOYEE")
	} else if r.Role != RoleSuperAdmin {
		if r.ComplexID == nil || validator.IsEmpty(*r.ComplexID) {
			errs.Add("complex_id", "complex_id is required for ADMIN and EMPLOYEE")
		} else if !validator.IsValidUUID(*r.ComplexID) {
			errs.Add("complex_id", "complex_id must be a valid UUID")
		}
	}

	return errs.OrNil()
}
