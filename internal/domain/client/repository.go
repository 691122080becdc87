package client

import "context"

type ClientRepository interface {
	Create(ctx context.Context, c Client) (Client, error)
	GetByID(ctx context.Context, id string, complexID string) (Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]Client, error)
	Update(ctx context.Context, req UpdateClientRequest) error
	Delete(ctx context.Context, id string, complexID string) error
	ExistsByPhone(ctx context.Context, complexID string, phone string, excludeID string) (bool, error)
}
