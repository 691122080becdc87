package sportcomplex

import (
	"time"

	"github.com/pierreiost/quadracerta/internal/pkg/validator"
)

type ComplexResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ToResponse(c Complex) ComplexResponse {
	return ComplexResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateComplexRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (r *CreateComplexRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 150 {
		errs.Add("name", "name must not exceed 150 characters")
	}
	if validator.IsEmpty(r.Address) {
		errs.Add("address", "address is required")
	}
	if !validator.IsEmpty(r.Phone) && !validator.IsValidPhone(r.Phone) {
		errs.Add("phone", "phone must be a valid phone number with area code")
	}

	return errs.OrNil()
}

type UpdateComplexRequest struct {
	ID      string  `json:"-"` // From JWT
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func (r *UpdateComplexRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if len(*r.Name) > 150 {
			errs.Add("name", "name must not exceed 150 characters")
		}
	}
	if r.Address != nil && validator.IsEmpty(*r.Address) {
		errs.Add("address", "address must not be empty")
	}
	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhone(*r.Phone) {
		errs.Add("phone", "phone must be a valid phone number with area code")
	}

	return errs.OrNil()
}
