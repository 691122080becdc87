package reservation

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo encodes the reservation lifecycle:
// PENDING -> CONFIRMED | CANCELLED, CONFIRMED -> CANCELLED | COMPLETED.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	}
	return false
}

type Reservation struct {
	ID               string
	CourtID          string
	ClientID         string
	StartTime        time.Time
	EndTime          time.Time
	Status           Status
	IsRecurring      bool
	RecurringGroupID *string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	CourtName      string
	ClientFullName string
}

// Overlaps reports whether [start, end) intersects the reservation interval.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && start.Before(r.EndTime)
}
