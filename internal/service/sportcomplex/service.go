package sportcomplex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pierreiost/quadracerta/internal/domain/sportcomplex"
)

type ComplexServiceImpl struct {
	sportcomplex.ComplexRepository
}

func NewComplexService(repo sportcomplex.ComplexRepository) sportcomplex.ComplexService {
	return &ComplexServiceImpl{ComplexRepository: repo}
}

// Create implements sportcomplex.ComplexService.
func (s *ComplexServiceImpl) Create(ctx context.Context, req sportcomplex.CreateComplexRequest) (sportcomplex.ComplexResponse, error) {
	if err := req.Validate(); err != nil {
		return sportcomplex.ComplexResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.ExistsByName(ctx, name)
	if err != nil {
		return sportcomplex.ComplexResponse{}, fmt.Errorf("failed to check complex name: %w", err)
	}
	if exists {
		return sportcomplex.ComplexResponse{}, sportcomplex.ErrComplexNameExists
	}

	created, err := s.ComplexRepository.Create(ctx, sportcomplex.Complex{
		Name:    name,
		Address: strings.TrimSpace(req.Address),
		Phone:   req.Phone,
	})
	if err != nil {
		return sportcomplex.ComplexResponse{}, err
	}

	slog.Info("Complex created", "complex_id", created.ID, "name", created.Name)
	return sportcomplex.ToResponse(created), nil
}

// List implements sportcomplex.ComplexService.
func (s *ComplexServiceImpl) List(ctx context.Context) ([]sportcomplex.ComplexResponse, error) {
	complexes, err := s.ComplexRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]sportcomplex.ComplexResponse, 0, len(complexes))
	for _, c := range complexes {
		resp = append(resp, sportcomplex.ToResponse(c))
	}
	return resp, nil
}

// Get implements sportcomplex.ComplexService.
func (s *ComplexServiceImpl) Get(ctx context.Context, id string) (sportcomplex.ComplexResponse, error) {
	found, err := s.GetByID(ctx, id)
	if err != nil {
		return sportcomplex.ComplexResponse{}, err
	}
	return sportcomplex.ToResponse(found), nil
}

// Update implements sportcomplex.ComplexService.
func (s *ComplexServiceImpl) Update(ctx context.Context, req sportcomplex.UpdateComplexRequest) (sportcomplex.ComplexResponse, error) {
	if err := req.Validate(); err != nil {
		return sportcomplex.ComplexResponse{}, err
	}
	if err := s.ComplexRepository.Update(ctx, req); err != nil {
		return sportcomplex.ComplexResponse{}, err
	}
	return s.Get(ctx, req.ID)
}
