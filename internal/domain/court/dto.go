package court

import (
	"time"

	"github.com/pierreiost/quadracerta/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CourtResponse struct {
	ID           string          `json:"id"`
	ComplexID    string          `json:"complex_id"`
	Name         string          `json:"name"`
	SportType    string          `json:"sport_type"`
	Status       Status          `json:"status"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Capacity     int             `json:"capacity,omitempty"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

func ToResponse(c Court) CourtResponse {
	return CourtResponse{
		ID:           c.ID,
		ComplexID:    c.ComplexID,
		Name:         c.Name,
		SportType:    c.SportType,
		Status:       c.Status,
		PricePerHour: c.PricePerHour,
		Capacity:     c.Capacity,
		Description:  c.Description,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateCourtRequest struct {
	ComplexID    string          `json:"-"` // From JWT
	Name         string          `json:"name"`
	SportType    string          `json:"sport_type"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	Capacity     int             `json:"capacity"`
	Description  string          `json:"description"`
}

func (r *CreateCourtRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ComplexID) {
		errs.Add("complex_id", "complex_id is required")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
	if validator.IsEmpty(r.SportType) {
		errs.Add("sport_type", "sport_type is required")
	}
	if r.PricePerHour.IsNegative() {
		errs.Add("price_per_hour", "price_per_hour must not be negative")
	}
	if r.Capacity < 0 {
		errs.Add("capacity", "capacity must not be negative")
	}

	return errs.OrNil()
}

type UpdateCourtRequest struct {
	ID           string           `json:"-"`
	ComplexID    string           `json:"-"` // From JWT
	Name         *string          `json:"name,omitempty"`
	SportType    *string          `json:"sport_type,omitempty"`
	PricePerHour *decimal.Decimal `json:"price_per_hour,omitempty"`
	Capacity     *int             `json:"capacity,omitempty"`
	Description  *string          `json:"description,omitempty"`
}

func (r *UpdateCourtRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if len(*r.Name) > 100 {
			errs.Add("name", "name must not exceed 100 characters")
		}
	}
	if r.SportType != nil && validator.IsEmpty(*r.SportType) {
		errs.Add("sport_type", "sport_type must not be empty")
	}
	if r.PricePerHour != nil && r.PricePerHour.IsNegative() {
		errs.Add("price_per_hour", "price_per_hour must not be negative")
	}
	if r.Capacity != nil && *r.Capacity < 0 {
		errs.Add("capacity", "capacity must not be negative")
	}

	return errs.OrNil()
}

type UpdateCourtStatusRequest struct {
	Status Status `json:"status"`
}

func (r *UpdateCourtStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.Status.IsValid() {
		errs.Add("status", "status must be one of AVAILABLE, OCCUPIED, MAINTENANCE, BLOCKED")
	}
	return errs.OrNil()
}

type ListCourtsFilter struct {
	ComplexID string
	Status    *Status
}
