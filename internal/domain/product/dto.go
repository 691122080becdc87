package product

import (
	"time"

	"github.com/pierreiost/quadracerta/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit"`
	ExpiryDate  *string         `json:"expiry_date,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

func ToResponse(p Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.ExpiryDate != nil {
		expiry := p.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &expiry
	}
	return resp
}

type CreateProductRequest struct {
	ComplexID   string          `json:"-"` // From JWT
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit"`
	ExpiryDate  *string         `json:"expiry_date,omitempty"` // YYYY-MM-DD
}

func (r *CreateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ComplexID) {
		errs.Add("complex_id", "complex_id is required")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 150 {
		errs.Add("name", "name must not exceed 150 characters")
	}
	if r.Price.IsNegative() {
		errs.Add("price", "price must not be negative")
	}
	if r.Stock < 0 {
		errs.Add("stock", "stock must not be negative")
	}
	if validator.IsEmpty(r.Unit) {
		errs.Add("unit", "unit is required")
	}
	if r.ExpiryDate != nil {
		if _, ok := validator.IsValidDate(*r.ExpiryDate); !ok {
			errs.Add("expiry_date", "expiry_date must be in YYYY-MM-DD format")
		}
	}

	return errs.OrNil()
}

type UpdateProductRequest struct {
	ID          string           `json:"-"`
	ComplexID   string           `json:"-"` // From JWT
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	ExpiryDate  *string          `json:"expiry_date,omitempty"` // empty string clears it
}

func (r *UpdateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Price != nil && r.Price.IsNegative() {
		errs.Add("price", "price must not be negative")
	}
	if r.Unit != nil && validator.IsEmpty(*r.Unit) {
		errs.Add("unit", "unit must not be empty")
	}
	if r.ExpiryDate != nil && *r.ExpiryDate != "" {
		if _, ok := validator.IsValidDate(*r.ExpiryDate); !ok {
			errs.Add("expiry_date", "expiry_date must be in YYYY-MM-DD format")
		}
	}

	return errs.OrNil()
}

// AdjustStockRequest applies a signed delta to the current stock
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

func (r *AdjustStockRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Delta == 0 {
		errs.Add("delta", "delta must not be zero")
	}
	return errs.OrNil()
}
