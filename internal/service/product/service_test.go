package product

import (
	"context"
	"testing"

	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const complexID = "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p product.Product) (product.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string, complexID string) (product.Product, error) {
	args := m.Called(ctx, id, complexID)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, complexID string) ([]product.Product, error) {
	args := m.Called(ctx, complexID)
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id string, complexID string, delta int) (int, error) {
	args := m.Called(ctx, id, complexID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string, complexID string) error {
	return m.Called(ctx, id, complexID).Error(0)
}

func TestCreate_ParsesExpiryDate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	expiry := "2025-07-01"
	repo.On("Create", ctx, mock.MatchedBy(func(p product.Product) bool {
		return p.ExpiryDate != nil && p.ExpiryDate.Format("2006-01-02") == expiry && p.Unit == "un"
	})).Return(product.Product{ID: "p-1", Name: "Gatorade", Price: decimal.RequireFromString("7.50"), Stock: 24, Unit: "un"}, nil)

	resp, err := svc.Create(ctx, product.CreateProductRequest{
		ComplexID:  complexID,
		Name:       "Gatorade",
		Price:      decimal.RequireFromString("7.50"),
		Stock:      24,
		Unit:       " un ",
		ExpiryDate: &expiry,
	})
	require.NoError(t, err)
	assert.Equal(t, "p-1", resp.ID)
	repo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	bad := "01/07/2025"
	_, err := svc.Create(context.Background(), product.CreateProductRequest{
		ComplexID:  complexID,
		Name:       "Gatorade",
		Stock:      -1,
		Unit:       "un",
		ExpiryDate: &bad,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "stock")
	assert.Contains(t, fields, "expiry_date")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_KeepsStockAndClearsExpiry(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	expiry, _ := validator.IsValidDate("2025-07-01")
	current := product.Product{ID: "p-1", ComplexID: complexID, Name: "Gatorade", Stock: 24, Unit: "un", ExpiryDate: &expiry}
	repo.On("GetByID", ctx, "p-1", complexID).Return(current, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(p product.Product) bool {
		return p.Stock == 24 && p.ExpiryDate == nil && p.Price.Equal(decimal.RequireFromString("8.00"))
	})).Return(nil)

	price := decimal.RequireFromString("8.00")
	noExpiry := ""
	resp, err := svc.Update(ctx, product.UpdateProductRequest{ID: "p-1", ComplexID: complexID, Price: &price, ExpiryDate: &noExpiry})
	require.NoError(t, err)
	assert.Equal(t, 24, resp.Stock)
	assert.Nil(t, resp.ExpiryDate)
	repo.AssertExpectations(t)
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("AdjustStock", ctx, "p-1", complexID, 6).Return(10, nil)
	repo.On("GetByID", ctx, "p-1", complexID).Return(product.Product{ID: "p-1", ComplexID: complexID, Stock: 10}, nil)

	resp, err := svc.AdjustStock(ctx, "p-1", complexID, product.AdjustStockRequest{Delta: 6})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Stock)
}

func TestAdjustStock_Insufficient(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("AdjustStock", ctx, "p-1", complexID, -5).Return(3, product.ErrInsufficientStock)

	_, err := svc.AdjustStock(ctx, "p-1", complexID, product.AdjustStockRequest{Delta: -5})
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustStock_ZeroDelta(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	_, err := svc.AdjustStock(context.Background(), "p-1", complexID, product.AdjustStockRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	repo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
