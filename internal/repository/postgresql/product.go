package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
)

type productRepositoryImpl struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) product.ProductRepository {
	return &productRepositoryImpl{db: db}
}

const productColumns = `id, complex_id, name, description, price, stock, unit, expiry_date, created_at, updated_at`

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID,
		&p.ComplexID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.Unit,
		&p.ExpiryDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]product.Product, error) {
	defer rows.Close()

	products := make([]product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Create implements product.ProductRepository.
func (r *productRepositoryImpl) Create(ctx context.Context, p product.Product) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return product.Product{}, err
	}

	query := `
		INSERT INTO products (id, complex_id, name, description, price, stock, unit, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns

	created, err := scanProduct(q.QueryRow(ctx, query,
		id, p.ComplexID, p.Name, p.Description, p.Price, p.Stock, p.Unit, p.ExpiryDate,
	))
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// GetByID implements product.ProductRepository.
func (r *productRepositoryImpl) GetByID(ctx context.Context, id string, complexID string) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND complex_id = $2`

	found, err := scanProduct(q.QueryRow(ctx, query, id, complexID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrProductNotFound
		}
		return product.Product{}, err
	}
	return found, nil
}

// List implements product.ProductRepository.
func (r *productRepositoryImpl) List(ctx context.Context, complexID string) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE complex_id = $1 ORDER BY name`, complexID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return collectProducts(rows)
}

// Update implements product.ProductRepository.
func (r *productRepositoryImpl) Update(ctx context.Context, p product.Product) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, unit = $4, expiry_date = $5, updated_at = NOW()
		WHERE id = $6 AND complex_id = $7
	`, p.Name, p.Description, p.Price, p.Unit, p.ExpiryDate, p.ID, p.ComplexID)
	if err != nil {
		return fmt.Errorf("failed to update product with id %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// AdjustStock implements product.ProductRepository.
func (r *productRepositoryImpl) AdjustStock(ctx context.Context, id string, complexID string, delta int) (int, error) {
	q := GetQuerier(ctx, r.db)

	var stock int
	err := q.QueryRow(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2 AND complex_id = $3 AND stock + $1 >= 0
		RETURNING stock
	`, delta, id, complexID).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to adjust stock of product %s: %w", id, err)
	}

	// No row updated: either the product is missing or the stock would go negative.
	if _, getErr := r.GetByID(ctx, id, complexID); getErr != nil {
		return 0, getErr
	}
	return 0, product.ErrInsufficientStock
}

// Delete implements product.ProductRepository.
func (r *productRepositoryImpl) Delete(ctx context.Context, id string, complexID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND complex_id = $2`, id, complexID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return product.ErrProductInUse
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}
