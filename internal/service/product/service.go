package product

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/pkg/validator"
)

type ProductServiceImpl struct {
	product.ProductRepository
}

func NewProductService(repo product.ProductRepository) product.ProductService {
	return &ProductServiceImpl{ProductRepository: repo}
}

func parseExpiry(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &d
}

// Create implements product.ProductService.
func (s *ProductServiceImpl) Create(ctx context.Context, req product.CreateProductRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}

	created, err := s.ProductRepository.Create(ctx, product.Product{
		ComplexID:   req.ComplexID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Unit:        strings.TrimSpace(req.Unit),
		ExpiryDate:  parseExpiry(req.ExpiryDate),
	})
	if err != nil {
		return product.ProductResponse{}, err
	}
	return product.ToResponse(created), nil
}

// List implements product.ProductService.
func (s *ProductServiceImpl) List(ctx context.Context, complexID string) ([]product.ProductResponse, error) {
	products, err := s.ProductRepository.List(ctx, complexID)
	if err != nil {
		return nil, err
	}
	resp := make([]product.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, product.ToResponse(p))
	}
	return resp, nil
}

// Get implements product.ProductService.
func (s *ProductServiceImpl) Get(ctx context.Context, id string, complexID string) (product.ProductResponse, error) {
	found, err := s.GetByID(ctx, id, complexID)
	if err != nil {
		return product.ProductResponse{}, err
	}
	return product.ToResponse(found), nil
}

// Update implements product.ProductService. Stock only changes through AdjustStock.
func (s *ProductServiceImpl) Update(ctx context.Context, req product.UpdateProductRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}

	current, err := s.GetByID(ctx, req.ID, req.ComplexID)
	if err != nil {
		return product.ProductResponse{}, err
	}

	if req.Name != nil {
		current.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Price != nil {
		current.Price = *req.Price
	}
	if req.Unit != nil {
		current.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.ExpiryDate != nil {
		current.ExpiryDate = parseExpiry(req.ExpiryDate)
	}

	if err := s.ProductRepository.Update(ctx, current); err != nil {
		return product.ProductResponse{}, err
	}
	return product.ToResponse(current), nil
}

// AdjustStock implements product.ProductService.
func (s *ProductServiceImpl) AdjustStock(ctx context.Context, id string, complexID string, req product.AdjustStockRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}

	stock, err := s.ProductRepository.AdjustStock(ctx, id, complexID, req.Delta)
	if err != nil {
		return product.ProductResponse{}, err
	}
	slog.Info("Product stock adjusted", "product_id", id, "delta", req.Delta, "stock", stock)

	return s.Get(ctx, id, complexID)
}

// Delete implements product.ProductService.
func (s *ProductServiceImpl) Delete(ctx context.Context, id string, complexID string) error {
	return s.ProductRepository.Delete(ctx, id, complexID)
}
