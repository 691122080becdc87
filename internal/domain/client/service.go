package client

import "context"

type ClientService interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	List(ctx context.Context, filter ListClientsFilter) ([]ClientResponse, error)
	Get(ctx context.Context, id string, complexID string) (ClientResponse, error)
	Update(ctx context.Context, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, id string, complexID string) error
}
