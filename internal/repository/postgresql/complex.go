package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pierreiost/quadracerta/internal/domain/sportcomplex"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
)

type complexRepositoryImpl struct {
	db *database.DB
}

func NewComplexRepository(db *database.DB) sportcomplex.ComplexRepository {
	return &complexRepositoryImpl{db: db}
}

// Create implements sportcomplex.ComplexRepository.
func (c *complexRepositoryImpl) Create(ctx context.Context, newComplex sportcomplex.Complex) (sportcomplex.Complex, error) {
	q := GetQuerier(ctx, c.db)

	id, err := newID()
	if err != nil {
		return sportcomplex.Complex{}, err
	}

	query := `
		INSERT INTO complexes (id, name, address, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, address, phone, created_at, updated_at
	`

	var created sportcomplex.Complex
	err = q.QueryRow(ctx, query, id, newComplex.Name, newComplex.Address, newComplex.Phone).
		Scan(&created.ID, &created.Name, &created.Address, &created.Phone, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sportcomplex.Complex{}, sportcomplex.ErrComplexNameExists
		}
		return sportcomplex.Complex{}, fmt.Errorf("failed to create complex: %w", err)
	}
	return created, nil
}

// GetByID implements sportcomplex.ComplexRepository.
func (c *complexRepositoryImpl) GetByID(ctx context.Context, id string) (sportcomplex.Complex, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, address, phone, created_at, updated_at
		FROM complexes
		WHERE id = $1
	`

	var found sportcomplex.Complex
	err := q.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.Name, &found.Address, &found.Phone, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sportcomplex.Complex{}, sportcomplex.ErrComplexNotFound
		}
		return sportcomplex.Complex{}, err
	}
	return found, nil
}

// List implements sportcomplex.ComplexRepository.
func (c *complexRepositoryImpl) List(ctx context.Context) ([]sportcomplex.Complex, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, address, phone, created_at, updated_at
		FROM complexes
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list complexes: %w", err)
	}
	defer rows.Close()

	complexes := make([]sportcomplex.Complex, 0)
	for rows.Next() {
		var found sportcomplex.Complex
		if err := rows.Scan(&found.ID, &found.Name, &found.Address, &found.Phone, &found.CreatedAt, &found.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan complex: %w", err)
		}
		complexes = append(complexes, found)
	}
	return complexes, rows.Err()
}

// Update implements sportcomplex.ComplexRepository.
func (c *complexRepositoryImpl) Update(ctx context.Context, req sportcomplex.UpdateComplexRequest) error {
	q := GetQuerier(ctx, c.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	set, args, i := buildSet(updates, 1)
	sql := "UPDATE complexes SET " + set + fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return sportcomplex.ErrComplexNameExists
		}
		return fmt.Errorf("failed to update complex with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return sportcomplex.ErrComplexNotFound
	}
	return nil
}

// ExistsByName implements sportcomplex.ComplexRepository.
func (c *complexRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, c.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM complexes WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
