package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/domain/notification"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
)

// notificationSourceImpl answers the read-only queries behind the notification feed.
// Every query is filtered by complex_id, directly or through the owning court/client.
type notificationSourceImpl struct {
	db *database.DB
}

func NewNotificationSource(db *database.DB) notification.Source {
	return &notificationSourceImpl{db: db}
}

func (s *notificationSourceImpl) ProductsWithStockBelow(ctx context.Context, complexID string, limit int) ([]product.Product, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE complex_id = $1 AND stock < $2
	`, complexID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	return collectProducts(rows)
}

func (s *notificationSourceImpl) ProductsExpiringBetween(ctx context.Context, complexID string, from, to time.Time) ([]product.Product, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE complex_id = $1
		  AND expiry_date IS NOT NULL
		  AND expiry_date >= $2 AND expiry_date <= $3
	`, complexID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring products: %w", err)
	}
	return collectProducts(rows)
}

func (s *notificationSourceImpl) ReservationsStartingBetween(ctx context.Context, complexID string, status reservation.Status, from, to time.Time) ([]reservation.Reservation, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, reservationSelect+`
		WHERE co.complex_id = $1 AND r.status = $2
		  AND r.start_time >= $3 AND r.start_time <= $4
		ORDER BY r.start_time ASC
	`, complexID, status, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming reservations: %w", err)
	}
	return collectReservations(rows)
}

func (s *notificationSourceImpl) ReservationsStartingFrom(ctx context.Context, complexID string, status reservation.Status, from time.Time) ([]reservation.Reservation, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, reservationSelect+`
		WHERE co.complex_id = $1 AND r.status = $2 AND r.start_time >= $3
	`, complexID, status, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	return collectReservations(rows)
}

func (s *notificationSourceImpl) OpenTabsCreatedBefore(ctx context.Context, complexID string, cutoff time.Time) ([]tab.Tab, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, tabSelect+`
		WHERE c.complex_id = $1 AND t.status = 'OPEN' AND t.created_at <= $2
		ORDER BY t.created_at ASC
	`, complexID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query open tabs: %w", err)
	}
	return collectTabs(rows)
}

func (s *notificationSourceImpl) CourtsWithStatus(ctx context.Context, complexID string, status court.Status) ([]court.Court, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, `SELECT `+courtColumns+` FROM courts WHERE complex_id = $1 AND status = $2`, complexID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query courts: %w", err)
	}
	return collectCourts(rows)
}

func (s *notificationSourceImpl) CountProductsOutOfStock(ctx context.Context, complexID string) (int, error) {
	q := GetQuerier(ctx, s.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE complex_id = $1 AND stock = 0`, complexID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count out of stock products: %w", err)
	}
	return count, nil
}

func (s *notificationSourceImpl) CountReservationsStartingBetween(ctx context.Context, complexID string, status reservation.Status, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, s.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reservations r
		JOIN courts co ON co.id = r.court_id
		WHERE co.complex_id = $1 AND r.status = $2
		  AND r.start_time >= $3 AND r.start_time <= $4
	`, complexID, status, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (s *notificationSourceImpl) CountOpenTabsCreatedBefore(ctx context.Context, complexID string, cutoff time.Time) (int, error) {
	q := GetQuerier(ctx, s.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tabs t
		JOIN clients c ON c.id = t.client_id
		WHERE c.complex_id = $1 AND t.status = 'OPEN' AND t.created_at <= $2
	`, complexID, cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open tabs: %w", err)
	}
	return count, nil
}
