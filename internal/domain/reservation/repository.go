package reservation

import (
	"context"
	"time"
)

type ReservationRepository interface {
	Create(ctx context.Context, r Reservation) (Reservation, error)
	GetByID(ctx context.Context, id string, complexID string) (Reservation, error)
	List(ctx context.Context, filter ListReservationsFilter, loc *time.Location) ([]Reservation, error)
	// UpdateStatus moves the reservation from one status to another and fails with
	// ErrInvalidStatusTransition when it is no longer in from.
	UpdateStatus(ctx context.Context, id string, from Status, to Status) error
	// LockCourt serializes bookings on a court until the surrounding transaction ends.
	LockCourt(ctx context.Context, courtID string) error
	// HasOverlap checks PENDING and CONFIRMED reservations on the court.
	HasOverlap(ctx context.Context, courtID string, start, end time.Time) (bool, error)
	// CompleteFinished marks CONFIRMED reservations ending before now as COMPLETED.
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)
}
