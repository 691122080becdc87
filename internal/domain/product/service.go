package product

import "context"

type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	List(ctx context.Context, complexID string) ([]ProductResponse, error)
	Get(ctx context.Context, id string, complexID string) (ProductResponse, error)
	Update(ctx context.Context, req UpdateProductRequest) (ProductResponse, error)
	AdjustStock(ctx context.Context, id string, complexID string, req AdjustStockRequest) (ProductResponse, error)
	Delete(ctx context.Context, id string, complexID string) error
}
