package notification

import (
	"context"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
)

// Source is the read-only view of tenant data the rules evaluate.
// Every method is scoped to a single complex.
type Source interface {
	// ProductsWithStockBelow returns products whose stock is strictly below limit.
	ProductsWithStockBelow(ctx context.Context, complexID string, limit int) ([]product.Product, error)
	// ProductsExpiringBetween returns products with an expiry date in [from, to].
	ProductsExpiringBetween(ctx context.Context, complexID string, from, to time.Time) ([]product.Product, error)
	// ReservationsStartingBetween returns reservations in status with start time in [from, to],
	// ordered by start time ascending. CourtName and ClientFullName are populated.
	ReservationsStartingBetween(ctx context.Context, complexID string, status reservation.Status, from, to time.Time) ([]reservation.Reservation, error)
	// ReservationsStartingFrom returns reservations in status with start time >= from.
	ReservationsStartingFrom(ctx context.Context, complexID string, status reservation.Status, from time.Time) ([]reservation.Reservation, error)
	// OpenTabsCreatedBefore returns OPEN tabs created at or before cutoff, oldest first.
	OpenTabsCreatedBefore(ctx context.Context, complexID string, cutoff time.Time) ([]tab.Tab, error)
	CourtsWithStatus(ctx context.Context, complexID string, status court.Status) ([]court.Court, error)

	CountProductsOutOfStock(ctx context.Context, complexID string) (int, error)
	CountReservationsStartingBetween(ctx context.Context, complexID string, status reservation.Status, from, to time.Time) (int, error)
	CountOpenTabsCreatedBefore(ctx context.Context, complexID string, cutoff time.Time) (int, error)
}
