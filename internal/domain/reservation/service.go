package reservation

import "context"

type ReservationService interface {
	Create(ctx context.Context, req CreateReservationRequest) (ReservationResponse, error)
	CreateRecurring(ctx context.Context, req CreateRecurringRequest) ([]ReservationResponse, error)
	List(ctx context.Context, filter ListReservationsFilter) ([]ReservationResponse, error)
	Get(ctx context.Context, id string, complexID string) (ReservationResponse, error)
	Confirm(ctx context.Context, id string, complexID string) (ReservationResponse, error)
	Cancel(ctx context.Context, id string, complexID string) (ReservationResponse, error)
	Complete(ctx context.Context, id string, complexID string) (ReservationResponse, error)
	CompleteFinished(ctx context.Context) error
}
