package court

import (
	"context"
	"time"
)

type CourtRepository interface {
	Create(ctx context.Context, c Court) (Court, error)
	GetByID(ctx context.Context, id string, complexID string) (Court, error)
	List(ctx context.Context, filter ListCourtsFilter) ([]Court, error)
	Update(ctx context.Context, req UpdateCourtRequest) error
	UpdateStatus(ctx context.Context, id string, complexID string, status Status) error
	Delete(ctx context.Context, id string, complexID string) error
	HasActiveReservationsAfter(ctx context.Context, id string, after time.Time) (bool, error)
}
