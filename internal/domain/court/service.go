package court

import "context"

type CourtService interface {
	Create(ctx context.Context, req CreateCourtRequest) (CourtResponse, error)
	List(ctx context.Context, filter ListCourtsFilter) ([]CourtResponse, error)
	Get(ctx context.Context, id string, complexID string) (CourtResponse, error)
	Update(ctx context.Context, req UpdateCourtRequest) (CourtResponse, error)
	UpdateStatus(ctx context.Context, id string, complexID string, req UpdateCourtStatusRequest) (CourtResponse, error)
	Delete(ctx context.Context, id string, complexID string) error
}
