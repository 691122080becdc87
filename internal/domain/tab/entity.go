package tab

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
)

// Tab is a running bill for a client. Total always equals the sum of item subtotals.
type Tab struct {
	ID            string
	ClientID      string
	ReservationID *string
	Status        Status
	Total         decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ClosedAt      *time.Time
	Items         []TabItem

	// Join
	ComplexID      string
	ClientFullName string
}

func (t *Tab) IsOpen() bool {
	return t.Status == StatusOpen
}

type TabItem struct {
	ID        string
	TabID     string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time

	// Join
	ProductName string
}

func (i TabItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
