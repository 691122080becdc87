package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	ComplexID   string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Unit        string
	ExpiryDate  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
