package court

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
	StatusBlocked     Status = "BLOCKED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusBlocked:
		return true
	}
	return false
}

// Bookable reports whether new reservations may be placed on a court in this status.
func (s Status) Bookable() bool {
	return s == StatusAvailable || s == StatusOccupied
}

type Court struct {
	ID           string
	ComplexID    string
	Name         string
	SportType    string
	Status       Status
	PricePerHour decimal.Decimal
	Capacity     int
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
