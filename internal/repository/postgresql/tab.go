package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type tabRepositoryImpl struct {
	db *database.DB
}

func NewTabRepository(db *database.DB) tab.TabRepository {
	return &tabRepositoryImpl{db: db}
}

const tabSelect = `
	SELECT t.id, t.client_id, t.reservation_id, t.status, t.total,
	       t.created_at, t.updated_at, t.closed_at, c.complex_id, c.full_name
	FROM tabs t
	JOIN clients c ON c.id = t.client_id
`

func scanTab(row pgx.Row) (tab.Tab, error) {
	var t tab.Tab
	err := row.Scan(
		&t.ID,
		&t.ClientID,
		&t.ReservationID,
		&t.Status,
		&t.Total,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ClosedAt,
		&t.ComplexID,
		&t.ClientFullName,
	)
	return t, err
}

func collectTabs(rows pgx.Rows) ([]tab.Tab, error) {
	defer rows.Close()

	tabs := make([]tab.Tab, 0)
	for rows.Next() {
		t, err := scanTab(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tab: %w", err)
		}
		tabs = append(tabs, t)
	}
	return tabs, rows.Err()
}

// Create implements tab.TabRepository.
func (r *tabRepositoryImpl) Create(ctx context.Context, t tab.Tab) (tab.Tab, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return tab.Tab{}, err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO tabs (id, client_id, reservation_id, status, total)
		VALUES ($1, $2, $3, $4, $5)
	`, id, t.ClientID, t.ReservationID, t.Status, t.Total)
	if err != nil {
		if isUniqueViolation(err) {
			return tab.Tab{}, tab.ErrTabAlreadyOpen
		}
		return tab.Tab{}, fmt.Errorf("failed to create tab: %w", err)
	}

	created, err := scanTab(q.QueryRow(ctx, tabSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return tab.Tab{}, fmt.Errorf("failed to load created tab: %w", err)
	}
	return created, nil
}

// GetByID implements tab.TabRepository.
func (r *tabRepositoryImpl) GetByID(ctx context.Context, id string, complexID string) (tab.Tab, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanTab(q.QueryRow(ctx, tabSelect+` WHERE t.id = $1 AND c.complex_id = $2`, id, complexID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tab.Tab{}, tab.ErrTabNotFound
		}
		return tab.Tab{}, err
	}
	return found, nil
}

// List implements tab.TabRepository.
func (r *tabRepositoryImpl) List(ctx context.Context, filter tab.ListTabsFilter) ([]tab.Tab, error) {
	q := GetQuerier(ctx, r.db)

	query := tabSelect + ` WHERE c.complex_id = $1`
	args := []interface{}{filter.ComplexID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND t.client_id = $%d", len(args))
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tabs: %w", err)
	}
	return collectTabs(rows)
}

// HasOpenTab implements tab.TabRepository.
func (r *tabRepositoryImpl) HasOpenTab(ctx context.Context, clientID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tabs WHERE client_id = $1 AND status = 'OPEN')`, clientID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// LockTab implements tab.TabRepository.
func (r *tabRepositoryImpl) LockTab(ctx context.Context, id string, complexID string) error {
	q := GetQuerier(ctx, r.db)

	var lockedID string
	err := q.QueryRow(ctx, `
		SELECT t.id
		FROM tabs t
		JOIN clients c ON c.id = t.client_id
		WHERE t.id = $1 AND c.complex_id = $2
		FOR UPDATE OF t
	`, id, complexID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tab.ErrTabNotFound
		}
		return fmt.Errorf("failed to lock tab %s: %w", id, err)
	}
	return nil
}

// UpdateStatus implements tab.TabRepository. Leaving OPEN stamps closed_at.
func (r *tabRepositoryImpl) UpdateStatus(ctx context.Context, id string, status tab.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE tabs
		SET status = $1, closed_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = 'OPEN'
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update tab status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tab.ErrTabNotOpen
	}
	return nil
}

// UpdateTotal implements tab.TabRepository.
func (r *tabRepositoryImpl) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE tabs SET total = $1, updated_at = NOW() WHERE id = $2`, total, id)
	if err != nil {
		return fmt.Errorf("failed to update tab total: %w", err)
	}
	return nil
}

// ListItems implements tab.TabRepository.
func (r *tabRepositoryImpl) ListItems(ctx context.Context, tabID string) ([]tab.TabItem, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT i.id, i.tab_id, i.product_id, i.quantity, i.unit_price, i.created_at, p.name
		FROM tab_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.tab_id = $1
		ORDER BY i.created_at
	`, tabID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tab items: %w", err)
	}
	defer rows.Close()

	items := make([]tab.TabItem, 0)
	for rows.Next() {
		var item tab.TabItem
		if err := rows.Scan(&item.ID, &item.TabID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.CreatedAt, &item.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan tab item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddItem implements tab.TabRepository.
func (r *tabRepositoryImpl) AddItem(ctx context.Context, item tab.TabItem) (tab.TabItem, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return tab.TabItem{}, err
	}

	created := item
	err = q.QueryRow(ctx, `
		INSERT INTO tab_items (id, tab_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, id, item.TabID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return tab.TabItem{}, fmt.Errorf("failed to add tab item: %w", err)
	}
	return created, nil
}

// GetItem implements tab.TabRepository.
func (r *tabRepositoryImpl) GetItem(ctx context.Context, tabID string, itemID string) (tab.TabItem, error) {
	q := GetQuerier(ctx, r.db)

	var item tab.TabItem
	err := q.QueryRow(ctx, `
		SELECT id, tab_id, product_id, quantity, unit_price, created_at
		FROM tab_items
		WHERE id = $1 AND tab_id = $2
	`, itemID, tabID).Scan(&item.ID, &item.TabID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tab.TabItem{}, tab.ErrTabItemNotFound
		}
		return tab.TabItem{}, err
	}
	return item, nil
}

// RemoveItem implements tab.TabRepository.
func (r *tabRepositoryImpl) RemoveItem(ctx context.Context, tabID string, itemID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tab_items WHERE id = $1 AND tab_id = $2`, itemID, tabID)
	if err != nil {
		return fmt.Errorf("failed to remove tab item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tab.ErrTabItemNotFound
	}
	return nil
}
