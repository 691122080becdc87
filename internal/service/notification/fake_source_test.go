package notification

import (
	"context"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
)

type scopedReservation struct {
	complexID string
	reservation.Reservation
}

// fakeSource is an in-memory notification.Source. Results keep insertion order.
type fakeSource struct {
	products     []product.Product
	reservations []scopedReservation
	tabs         []tab.Tab
	courts       []court.Court

	err error
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func (f *fakeSource) ProductsWithStockBelow(_ context.Context, complexID string, limit int) ([]product.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []product.Product
	for _, p := range f.products {
		if p.ComplexID == complexID && p.Stock < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) ProductsExpiringBetween(_ context.Context, complexID string, from, to time.Time) ([]product.Product, error) {
	var out []product.Product
	for _, p := range f.products {
		if p.ComplexID == complexID && p.ExpiryDate != nil && inRange(*p.ExpiryDate, from, to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) ReservationsStartingBetween(_ context.Context, complexID string, status reservation.Status, from, to time.Time) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	for _, r := range f.reservations {
		if r.complexID == complexID && r.Status == status && inRange(r.StartTime, from, to) {
			out = append(out, r.Reservation)
		}
	}
	return out, nil
}

func (f *fakeSource) ReservationsStartingFrom(_ context.Context, complexID string, status reservation.Status, from time.Time) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	for _, r := range f.reservations {
		if r.complexID == complexID && r.Status == status && !r.StartTime.Before(from) {
			out = append(out, r.Reservation)
		}
	}
	return out, nil
}

func (f *fakeSource) OpenTabsCreatedBefore(_ context.Context, complexID string, cutoff time.Time) ([]tab.Tab, error) {
	var out []tab.Tab
	for _, t := range f.tabs {
		if t.ComplexID == complexID && t.Status == tab.StatusOpen && !t.CreatedAt.After(cutoff) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeSource) CourtsWithStatus(_ context.Context, complexID string, status court.Status) ([]court.Court, error) {
	var out []court.Court
	for _, c := range f.courts {
		if c.ComplexID == complexID && c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeSource) CountProductsOutOfStock(_ context.Context, complexID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, p := range f.products {
		if p.ComplexID == complexID && p.Stock == 0 {
			n++
		}
	}
	return n, nil
}

func (f *fakeSource) CountReservationsStartingBetween(ctx context.Context, complexID string, status reservation.Status, from, to time.Time) (int, error) {
	found, err := f.ReservationsStartingBetween(ctx, complexID, status, from, to)
	return len(found), err
}

func (f *fakeSource) CountOpenTabsCreatedBefore(ctx context.Context, complexID string, cutoff time.Time) (int, error) {
	found, err := f.OpenTabsCreatedBefore(ctx, complexID, cutoff)
	return len(found), err
}
