package product

import "context"

type ProductRepository interface {
	Create(ctx context.Context, p Product) (Product, error)
	GetByID(ctx context.Context, id string, complexID string) (Product, error)
	List(ctx context.Context, complexID string) ([]Product, error)
	Update(ctx context.Context, p Product) error
	// AdjustStock applies delta atomically and fails with ErrInsufficientStock
	// when the result would be negative.
	AdjustStock(ctx context.Context, id string, complexID string, delta int) (int, error)
	Delete(ctx context.Context, id string, complexID string) error
}
