package notification

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/domain/notification"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
)

// Feed thresholds
const (
	LowStockLimit       = 10
	UpcomingWindow      = 30 * time.Minute
	UpcomingHighMinutes = 10
	StaleTabAge         = 4 * time.Hour
	ExpiryWindow        = 7 * 24 * time.Hour
	ExpiryHighDays      = 2
)

const (
	linkProducts     = "/products"
	linkReservations = "/reservations"
	linkTabs         = "/tabs"
	linkCourts       = "/courts"

	titleOutOfStock         = "Produto sem estoque"
	titleLowStock           = "Estoque baixo"
	titleUpcoming           = "Reserva em breve"
	titleStaleTab           = "Comanda aberta há muito tempo"
	titleMaintenance        = "Quadra em manutenção"
	titleExpiringProduct    = "Produto próximo do vencimento"
	titlePendingReservation = "Reserva pendente"

	currencyPrefix = "R$ "
)

// DefaultRules returns the built-in rules in registration order.
func DefaultRules(source notification.Source) []notification.Rule {
	return []notification.Rule{
		LowStockRule{Source: source},
		UpcomingReservationRule{Source: source},
		StaleTabRule{Source: source},
		MaintenanceRule{Source: source},
		ExpiringProductRule{Source: source},
		PendingReservationRule{Source: source},
	}
}

// LowStockRule flags products with fewer than LowStockLimit units; zero stock is HIGH.
type LowStockRule struct {
	Source notification.Source
}

func (LowStockRule) Type() notification.Type { return notification.TypeLowStock }

func (r LowStockRule) Evaluate(ctx context.Context, complexID string, now time.Time) ([]notification.Notification, error) {
	products, err := r.Source.ProductsWithStockBelow(ctx, complexID, LowStockLimit)
	if err != nil {
		return nil, err
	}

	out := make([]notification.Notification, 0, len(products))
	for _, p := range products {
		priority, title := notification.PriorityMedium, titleLowStock
		if p.Stock == 0 {
			priority, title = notification.PriorityHigh, titleOutOfStock
		}
		out = append(out, notification.Notification{
			ID:        "stock-" + p.ID,
			Type:      notification.TypeLowStock,
			Priority:  priority,
			Title:     title,
			Message:   fmt.Sprintf("%s: %d %s", p.Name, p.Stock, p.Unit),
			Link:      linkProducts,
			CreatedAt: now,
		})
	}
	return out, nil
}

// UpcomingReservationRule flags confirmed reservations starting within UpcomingWindow.
type UpcomingReservationRule struct {
	Source notification.Source
}

func (UpcomingReservationRule) Type() notification.Type { return notification.TypeUpcomingReservation }

func (r UpcomingReservationRule) Evaluate(ctx context.Context, complexID string, now time.Time) ([]notification.Notification, error) {
	reservations, err := r.Source.ReservationsStartingBetween(ctx, complexID, reservation.StatusConfirmed, now, now.Add(UpcomingWindow))
	if err != nil {
		return nil, err
	}

	out := make([]notification.Notification, 0, len(reservations))
	for _, res := range reservations {
		minutesUntil := int(math.Round(float64(res.StartTime.Sub(now)) / float64(time.Minute)))
		priority := notification.PriorityMedium
		if minutesUntil <= UpcomingHighMinutes {
			priority = notification.PriorityHigh
		}
		out = append(out, notification.Notification{
			ID:        "reservation-" + res.ID,
			Type:      notification.TypeUpcomingReservation,
			Priority:  priority,
			Title:     titleUpcoming,
			Message:   fmt.Sprintf("%s - %s em %d min", res.ClientFullName, res.CourtName, minutesUntil),
			Link:      linkReservations,
			CreatedAt: now,
		})
	}
	return out, nil
}

// StaleTabRule flags tabs that stayed open for StaleTabAge or longer.
type StaleTabRule struct {
	Source notification.Source
}

func (StaleTabRule) Type() notification.Type { return notification.TypeOldOpenTab }

func (r StaleTabRule) Evaluate(ctx context.Context, complexID string, now time.Time) ([]notification.Notification, error) {
	tabs, err := r.Source.OpenTabsCreatedBefore(ctx, complexID, now.Add(-StaleTabAge))
	if err != nil {
		return nil, err
	}

	out := make([]notification.Notification, 0, len(tabs))
	for _, t := range tabs {
		hoursOpen := int(math.Round(float64(now.Sub(t.CreatedAt)) / float64(time.Hour)))
		out = append(out, notification.Notification{
			ID:        "tab-" + t.ID,
			Type:      notification.TypeOldOpenTab,
			Priority:  notification.PriorityMedium,
			Title:     titleStaleTab,
			Message:   fmt.Sprintf("%s - %dh aberta - %s%s", t.ClientFullName, hoursOpen, currencyPrefix, t.Total.StringFixed(2)),
			Link:      linkTabs,
			CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}

// MaintenanceRule lists courts under maintenance.
type MaintenanceRule struct {
	Source notification.Source
}

func (MaintenanceRule) Type() notification.Type { return notification.TypeMaintenance }

func (r MaintenanceRule) Evaluate(ctx context.Context, complexID string, now time.Time) ([]notification.Notification, error) {
	courts, err := r.Source.CourtsWithStatus(ctx, complexID, court.StatusMaintenance)
	if err != nil {
		return nil, err
	}

	out := make([]notification.Notification, 0, len(courts))
	for _, c := range courts {
		out = append(out, notification.Notification{
			ID:        "maintenance-" + c.ID,
			Type:      notification.TypeMaintenance,
			Priority:  notification.PriorityLow,
			Title:     titleMaintenance,
			Message:   fmt.Sprintf("%s - %s", c.Name, c.SportType),
			Link:      linkCourts,
			CreatedAt: now,
		})
	}
	return out, nil
}

// ExpiringProductRule flags products expiring within ExpiryWindow.
type ExpiringProductRule struct {
	Source notification.Source
}

func (ExpiringProductRule) Type() notification.Type { return notification.TypeExpiringProduct }

func (r ExpiringProductRule) Evaluate(ctx context.Context, complexID string, now time.Time) ([]notification.Notification, error) {
	products, err := r.Source.ProductsExpiringBetween(ctx, complexID, now, now.Add(ExpiryWindow))
	if err != nil {
		return nil, err
	}

	out := make([]notification.Notification, 0, len(products))
	for _, p := range products {
		if p.ExpiryDate == nil {
			continue
		}
		daysUntil := int(math.Ceil(float64(p.ExpiryDate.Sub(now)) / float64(24*time.Hour)))
		priority := notification.PriorityMedium
		if daysUntil <= ExpiryHighDays {
			priority = notification.PriorityHigh
		}
		out = append(out, notification.Notification{
			ID:        "expiring-" + p.ID,
			Type:      notification.TypeExpiringProduct,
			Priority:  priority,
			Title:     titleExpiringProduct,
			Message:   fmt.Sprintf("%s vence em %d dia(s)", p.Name, daysUntil),
			Link:      linkProducts,
			CreatedAt: now,
		})
	}
	return out, nil
}

// PendingReservationRule lists future reservations still waiting for confirmation.
type PendingReservationRule struct {
	Source notification.Source
}

func (PendingReservationRule) Type() notification.Type { return notification.TypePendingReservation }

func (r PendingReservationRule) Evaluate(ctx context.Context, complexID string, now time.Time) ([]notification.Notification, error) {
	reservations, err := r.Source.ReservationsStartingFrom(ctx, complexID, reservation.StatusPending, now)
	if err != nil {
		return nil, err
	}

	out := make([]notification.Notification, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, notification.Notification{
			ID:        "pending-" + res.ID,
			Type:      notification.TypePendingReservation,
			Priority:  notification.PriorityMedium,
			Title:     titlePendingReservation,
			Message:   fmt.Sprintf("%s - %s", res.ClientFullName, res.CourtName),
			Link:      linkReservations,
			CreatedAt: res.CreatedAt,
		})
	}
	return out, nil
}
