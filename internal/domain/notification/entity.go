package notification

import (
	"time"
)

// Type identifies the rule that produced a notification
type Type string

const (
	TypeLowStock            Type = "LOW_STOCK"
	TypeUpcomingReservation Type = "UPCOMING_RESERVATION"
	TypeOldOpenTab          Type = "OLD_OPEN_TAB"
	TypeMaintenance         Type = "MAINTENANCE"
	TypeExpiringProduct     Type = "EXPIRING_PRODUCT"
	TypePendingReservation  Type = "PENDING_RESERVATION"
)

// AllTypes returns every notification type in rule registration order
func AllTypes() []Type {
	return []Type{
		TypeLowStock,
		TypeUpcomingReservation,
		TypeOldOpenTab,
		TypeMaintenance,
		TypeExpiringProduct,
		TypePendingReservation,
	}
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank orders priorities for sorting: HIGH first, LOW last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Notification is derived from live tenant data on every request and never stored.
// ID is deterministic from the rule type and the source entity id.
type Notification struct {
	ID        string
	Type      Type
	Priority  Priority
	Title     string
	Message   string
	Link      string
	CreatedAt time.Time
}
