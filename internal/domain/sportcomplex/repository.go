package sportcomplex

import "context"

type ComplexRepository interface {
	Create(ctx context.Context, c Complex) (Complex, error)
	GetByID(ctx context.Context, id string) (Complex, error)
	List(ctx context.Context) ([]Complex, error)
	Update(ctx context.Context, req UpdateComplexRequest) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
