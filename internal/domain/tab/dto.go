package tab

import (
	"time"

	"github.com/pierreiost/quadracerta/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TabItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type TabResponse struct {
	ID             string            `json:"id"`
	ClientID       string            `json:"client_id"`
	ClientFullName string            `json:"client_full_name,omitempty"`
	ReservationID  *string           `json:"reservation_id,omitempty"`
	Status         Status            `json:"status"`
	Total          decimal.Decimal   `json:"total"`
	Items          []TabItemResponse `json:"items"`
	CreatedAt      string            `json:"created_at"`
	ClosedAt       *string           `json:"closed_at,omitempty"`
}

func ToResponse(t Tab) TabResponse {
	resp := TabResponse{
		ID:             t.ID,
		ClientID:       t.ClientID,
		ClientFullName: t.ClientFullName,
		ReservationID:  t.ReservationID,
		Status:         t.Status,
		Total:          t.Total,
		Items:          make([]TabItemResponse, 0, len(t.Items)),
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range t.Items {
		resp.Items = append(resp.Items, TabItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}
	if t.ClosedAt != nil {
		closed := t.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	return resp
}

type OpenTabRequest struct {
	ComplexID     string  `json:"-"` // From JWT
	ClientID      string  `json:"client_id"`
	ReservationID *string `json:"reservation_id,omitempty"`
}

func (r *OpenTabRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ComplexID) {
		errs.Add("complex_id", "complex_id is required")
	}
	if validator.IsEmpty(r.ClientID) {
		errs.Add("client_id", "client_id is required")
	}
	return errs.OrNil()
}

type AddItemRequest struct {
	TabID     string `json:"-"`
	ComplexID string `json:"-"` // From JWT
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (r *AddItemRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.TabID) {
		errs.Add("tab_id", "tab_id is required")
	}
	if validator.IsEmpty(r.ProductID) {
		errs.Add("product_id", "product_id is required")
	}
	if r.Quantity < 1 {
		errs.Add("quantity", "quantity must be at least 1")
	}
	return errs.OrNil()
}

type ListTabsFilter struct {
	ComplexID string
	Status    *Status
	ClientID  string
}
