package court

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/court"
)

type CourtServiceImpl struct {
	court.CourtRepository
	now func() time.Time
}

func NewCourtService(repo court.CourtRepository) court.CourtService {
	return &CourtServiceImpl{CourtRepository: repo, now: time.Now}
}

// Create implements court.CourtService. New courts start AVAILABLE.
func (s *CourtServiceImpl) Create(ctx context.Context, req court.CreateCourtRequest) (court.CourtResponse, error) {
	if err := req.Validate(); err != nil {
		return court.CourtResponse{}, err
	}

	created, err := s.CourtRepository.Create(ctx, court.Court{
		ComplexID:    req.ComplexID,
		Name:         strings.TrimSpace(req.Name),
		SportType:    strings.TrimSpace(req.SportType),
		Status:       court.StatusAvailable,
		PricePerHour: req.PricePerHour,
		Capacity:     req.Capacity,
		Description:  req.Description,
	})
	if err != nil {
		return court.CourtResponse{}, err
	}
	return court.ToResponse(created), nil
}

// List implements court.CourtService.
func (s *CourtServiceImpl) List(ctx context.Context, filter court.ListCourtsFilter) ([]court.CourtResponse, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, court.ErrInvalidStatus
	}
	courts, err := s.CourtRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]court.CourtResponse, 0, len(courts))
	for _, c := range courts {
		resp = append(resp, court.ToResponse(c))
	}
	return resp, nil
}

// Get implements court.CourtService.
func (s *CourtServiceImpl) Get(ctx context.Context, id string, complexID string) (court.CourtResponse, error) {
	found, err := s.GetByID(ctx, id, complexID)
	if err != nil {
		return court.CourtResponse{}, err
	}
	return court.ToResponse(found), nil
}

// Update implements court.CourtService.
func (s *CourtServiceImpl) Update(ctx context.Context, req court.UpdateCourtRequest) (court.CourtResponse, error) {
	if err := req.Validate(); err != nil {
		return court.CourtResponse{}, err
	}
	if err := s.CourtRepository.Update(ctx, req); err != nil {
		return court.CourtResponse{}, err
	}
	return s.Get(ctx, req.ID, req.ComplexID)
}

// UpdateStatus implements court.CourtService.
func (s *CourtServiceImpl) UpdateStatus(ctx context.Context, id string, complexID string, req court.UpdateCourtStatusRequest) (court.CourtResponse, error) {
	if err := req.Validate(); err != nil {
		return court.CourtResponse{}, err
	}
	if err := s.CourtRepository.UpdateStatus(ctx, id, complexID, req.Status); err != nil {
		return court.CourtResponse{}, err
	}
	slog.Info("Court status changed", "court_id", id, "complex_id", complexID, "status", req.Status)
	return s.Get(ctx, id, complexID)
}

// Delete implements court.CourtService. Courts with upcoming active reservations are kept.
func (s *CourtServiceImpl) Delete(ctx context.Context, id string, complexID string) error {
	if _, err := s.GetByID(ctx, id, complexID); err != nil {
		return err
	}

	busy, err := s.HasActiveReservationsAfter(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("failed to check court reservations: %w", err)
	}
	if busy {
		return court.ErrCourtHasReservations
	}
	return s.CourtRepository.Delete(ctx, id, complexID)
}
