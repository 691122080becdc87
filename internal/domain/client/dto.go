package client

import (
	"time"

	"github.com/pierreiost/quadracerta/internal/pkg/validator"
)

type ClientResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	CPF       string `json:"cpf,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

func ToResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Phone:     c.Phone,
		Email:     c.Email,
		CPF:       c.CPF,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

type CreateClientRequest struct {
	ComplexID string `json:"-"` // From JWT
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CPF       string `json:"cpf"`
	Notes     string `json:"notes"`
}

func (r *CreateClientRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ComplexID) {
		errs.Add("complex_id", "complex_id is required")
	}
	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "full_name is required")
	} else if len(r.FullName) > 150 {
		errs.Add("full_name", "full_name must not exceed 150 characters")
	}
	if validator.IsEmpty(r.Phone) {
		errs.Add("phone", "phone is required")
	} else if !validator.IsValidPhone(r.Phone) {
		errs.Add("phone", "phone must be a valid phone number with area code")
	}
	if !validator.IsEmpty(r.Email) && !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if !validator.IsEmpty(r.CPF) && !validator.IsValidCPF(r.CPF) {
		errs.Add("cpf", "cpf is invalid")
	}

	return errs.OrNil()
}

type UpdateClientRequest struct {
	ID        string  `json:"-"`
	ComplexID string  `json:"-"` // From JWT
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	CPF       *string `json:"cpf,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs.Add("full_name", "full_name must not be empty")
	}
	if r.Phone != nil && !validator.IsValidPhone(*r.Phone) {
		errs.Add("phone", "phone must be a valid phone number with area code")
	}
	if r.Email != nil && !validator.IsEmpty(*r.Email) && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.CPF != nil && !validator.IsEmpty(*r.CPF) && !validator.IsValidCPF(*r.CPF) {
		errs.Add("cpf", "cpf is invalid")
	}

	return errs.OrNil()
}

type ListClientsFilter struct {
	ComplexID string
	Search    string
}
