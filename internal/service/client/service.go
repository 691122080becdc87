package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/pierreiost/quadracerta/internal/domain/client"
)

// OpenTabChecker reports whether a client still has an open tab.
type OpenTabChecker interface {
	HasOpenTab(ctx context.Context, clientID string) (bool, error)
}

type ClientServiceImpl struct {
	client.ClientRepository
	tabs OpenTabChecker
}

func NewClientService(repo client.ClientRepository, tabs OpenTabChecker) client.ClientService {
	return &ClientServiceImpl{ClientRepository: repo, tabs: tabs}
}

// Create implements client.ClientService.
func (s *ClientServiceImpl) Create(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	exists, err := s.ExistsByPhone(ctx, req.ComplexID, req.Phone, "")
	if err != nil {
		return client.ClientResponse{}, fmt.Errorf("failed to check client phone: %w", err)
	}
	if exists {
		return client.ClientResponse{}, client.ErrPhoneExists
	}

	created, err := s.ClientRepository.Create(ctx, client.Client{
		ComplexID: req.ComplexID,
		FullName:  strings.TrimSpace(req.FullName),
		Phone:     req.Phone,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		CPF:       req.CPF,
		Notes:     req.Notes,
	})
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToResponse(created), nil
}

// List implements client.ClientService.
func (s *ClientServiceImpl) List(ctx context.Context, filter client.ListClientsFilter) ([]client.ClientResponse, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	clients, err := s.ClientRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, client.ToResponse(c))
	}
	return resp, nil
}

// Get implements client.ClientService.
func (s *ClientServiceImpl) Get(ctx context.Context, id string, complexID string) (client.ClientResponse, error) {
	found, err := s.GetByID(ctx, id, complexID)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToResponse(found), nil
}

// Update implements client.ClientService.
func (s *ClientServiceImpl) Update(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	if req.Phone != nil {
		exists, err := s.ExistsByPhone(ctx, req.ComplexID, *req.Phone, req.ID)
		if err != nil {
			return client.ClientResponse{}, fmt.Errorf("failed to check client phone: %w", err)
		}
		if exists {
			return client.ClientResponse{}, client.ErrPhoneExists
		}
	}

	if err := s.ClientRepository.Update(ctx, req); err != nil {
		return client.ClientResponse{}, err
	}
	return s.Get(ctx, req.ID, req.ComplexID)
}

// Delete implements client.ClientService.
func (s *ClientServiceImpl) Delete(ctx context.Context, id string, complexID string) error {
	if _, err := s.GetByID(ctx, id, complexID); err != nil {
		return err
	}

	open, err := s.tabs.HasOpenTab(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check open tabs: %w", err)
	}
	if open {
		return client.ErrClientHasOpenTab
	}
	return s.ClientRepository.Delete(ctx, id, complexID)
}
