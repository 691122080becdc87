package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/notification"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"golang.org/x/sync/errgroup"
)

// Badge thresholds, stricter than the feed on purpose.
const (
	SummaryUpcomingWindow = 15 * time.Minute
	SummaryStaleTabAge    = 6 * time.Hour
)

// Config holds notification service configuration
type Config struct {
	Rules []notification.Rule // default: DefaultRules(source)
	Now   func() time.Time    // default: time.Now
}

type service struct {
	source notification.Source
	rules  []notification.Rule
	now    func() time.Time
}

// NewNotificationService creates the notification derivation engine
func NewNotificationService(source notification.Source, cfg Config) notification.Service {
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules(source)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		source: source,
		rules:  cfg.Rules,
		now:    cfg.Now,
	}
}

// GetFeed runs every rule concurrently against the same instant, waits for all of them,
// then merges. The first failing rule cancels the others and fails the whole feed.
func (s *service) GetFeed(ctx context.Context, complexID string) (notification.FeedResponse, error) {
	if complexID == "" {
		return buildFeed(nil), nil
	}

	now := s.now()
	results := make([][]notification.Notification, len(s.rules))

	g, gCtx := errgroup.WithContext(ctx)
	for i, rule := range s.rules {
		i, rule := i, rule
		g.Go(func() error {
			found, err := rule.Evaluate(gCtx, complexID, now)
			if err != nil {
				slog.Error("Notification rule failed", "rule", rule.Type(), "complex_id", complexID, "error", err)
				return fmt.Errorf("evaluate %s: %w", rule.Type(), err)
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return notification.FeedResponse{}, err
	}

	var merged []notification.Notification
	for _, found := range results {
		merged = append(merged, found...)
	}
	return buildFeed(merged), nil
}

// GetSummaryCount counts out of stock products, confirmed reservations starting within
// SummaryUpcomingWindow and tabs open for SummaryStaleTabAge or longer.
func (s *service) GetSummaryCount(ctx context.Context, complexID string) (notification.SummaryCountResponse, error) {
	if complexID == "" {
		return notification.SummaryCountResponse{}, nil
	}

	now := s.now()
	var outOfStock, upcoming, staleTabs int

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.source.CountProductsOutOfStock(gCtx, complexID)
		if err != nil {
			return fmt.Errorf("count out of stock products: %w", err)
		}
		outOfStock = n
		return nil
	})
	g.Go(func() error {
		n, err := s.source.CountReservationsStartingBetween(gCtx, complexID, reservation.StatusConfirmed, now, now.Add(SummaryUpcomingWindow))
		if err != nil {
			return fmt.Errorf("count upcoming reservations: %w", err)
		}
		upcoming = n
		return nil
	})
	g.Go(func() error {
		n, err := s.source.CountOpenTabsCreatedBefore(gCtx, complexID, now.Add(-SummaryStaleTabAge))
		if err != nil {
			return fmt.Errorf("count stale tabs: %w", err)
		}
		staleTabs = n
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Notification summary failed", "complex_id", complexID, "error", err)
		return notification.SummaryCountResponse{}, err
	}

	return notification.SummaryCountResponse{Count: outOfStock + upcoming + staleTabs}, nil
}

// SortNotifications orders by priority (HIGH first) then CreatedAt descending.
// The sort is stable so equal entries keep their emission order.
func SortNotifications(items []notification.Notification) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := items[i].Priority.Rank(), items[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func buildFeed(items []notification.Notification) notification.FeedResponse {
	SortNotifications(items)

	feed := notification.FeedResponse{
		Notifications: make([]notification.NotificationResponse, 0, len(items)),
	}
	for _, n := range items {
		switch n.Priority {
		case notification.PriorityHigh:
			feed.Summary.High++
		case notification.PriorityMedium:
			feed.Summary.Medium++
		default:
			feed.Summary.Low++
		}
		feed.Notifications = append(feed.Notifications, notification.ToResponse(n))
	}
	feed.Count = len(feed.Notifications)
	feed.UnreadCount = feed.Count
	return feed
}
