package sportcomplex

import "context"

type ComplexService interface {
	Create(ctx context.Context, req CreateComplexRequest) (ComplexResponse, error)
	List(ctx context.Context) ([]ComplexResponse, error)
	Get(ctx context.Context, id string) (ComplexResponse, error)
	Update(ctx context.Context, req UpdateComplexRequest) (ComplexResponse, error)
}
