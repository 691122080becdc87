package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
)

type courtRepositoryImpl struct {
	db *database.DB
}

func NewCourtRepository(db *database.DB) court.CourtRepository {
	return &courtRepositoryImpl{db: db}
}

const courtColumns = `id, complex_id, name, sport_type, status, price_per_hour, capacity, description, created_at, updated_at`

func scanCourt(row pgx.Row) (court.Court, error) {
	var c court.Court
	err := row.Scan(
		&c.ID,
		&c.ComplexID,
		&c.Name,
		&c.SportType,
		&c.Status,
		&c.PricePerHour,
		&c.Capacity,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func collectCourts(rows pgx.Rows) ([]court.Court, error) {
	defer rows.Close()

	courts := make([]court.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan court: %w", err)
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

// Create implements court.CourtRepository.
func (r *courtRepositoryImpl) Create(ctx context.Context, c court.Court) (court.Court, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return court.Court{}, err
	}

	query := `
		INSERT INTO courts (id, complex_id, name, sport_type, status, price_per_hour, capacity, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + courtColumns

	created, err := scanCourt(q.QueryRow(ctx, query,
		id, c.ComplexID, c.Name, c.SportType, c.Status, c.PricePerHour, c.Capacity, c.Description,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return court.Court{}, court.ErrCourtNameExists
		}
		return court.Court{}, fmt.Errorf("failed to create court: %w", err)
	}
	return created, nil
}

// GetByID implements court.CourtRepository.
func (r *courtRepositoryImpl) GetByID(ctx context.Context, id string, complexID string) (court.Court, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + courtColumns + ` FROM courts WHERE id = $1 AND complex_id = $2`

	found, err := scanCourt(q.QueryRow(ctx, query, id, complexID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return court.Court{}, court.ErrCourtNotFound
		}
		return court.Court{}, err
	}
	return found, nil
}

// List implements court.CourtRepository.
func (r *courtRepositoryImpl) List(ctx context.Context, filter court.ListCourtsFilter) ([]court.Court, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + courtColumns + ` FROM courts WHERE complex_id = $1`
	args := []interface{}{filter.ComplexID}
	if filter.Status != nil {
		query += ` AND status = $2`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	return collectCourts(rows)
}

// Update implements court.CourtRepository.
func (r *courtRepositoryImpl) Update(ctx context.Context, req court.UpdateCourtRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SportType != nil {
		updates["sport_type"] = *req.SportType
	}
	if req.PricePerHour != nil {
		updates["price_per_hour"] = *req.PricePerHour
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	set, args, i := buildSet(updates, 1)
	sql := "UPDATE courts SET " + set + fmt.Sprintf(" WHERE id = $%d AND complex_id = $%d", i, i+1)
	args = append(args, req.ID, req.ComplexID)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return court.ErrCourtNameExists
		}
		return fmt.Errorf("failed to update court with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return court.ErrCourtNotFound
	}
	return nil
}

// UpdateStatus implements court.CourtRepository.
func (r *courtRepositoryImpl) UpdateStatus(ctx context.Context, id string, complexID string, status court.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE courts SET status = $1, updated_at = NOW()
		WHERE id = $2 AND complex_id = $3
	`, status, id, complexID)
	if err != nil {
		return fmt.Errorf("failed to update court status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return court.ErrCourtNotFound
	}
	return nil
}

// Delete implements court.CourtRepository.
func (r *courtRepositoryImpl) Delete(ctx context.Context, id string, complexID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM courts WHERE id = $1 AND complex_id = $2`, id, complexID)
	if err != nil {
		return fmt.Errorf("failed to delete court: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return court.ErrCourtNotFound
	}
	return nil
}

// HasActiveReservationsAfter implements court.CourtRepository.
func (r *courtRepositoryImpl) HasActiveReservationsAfter(ctx context.Context, id string, after time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE court_id = $1
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND end_time > $2
		)
	`, id, after).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
