package notification

import (
	"context"
	"time"
)

// Rule derives notifications of a single type from tenant data.
// Rules are independent and must not depend on each other's output.
type Rule interface {
	Type() Type
	Evaluate(ctx context.Context, complexID string, now time.Time) ([]Notification, error)
}

type Service interface {
	// GetFeed evaluates every rule for the complex. An empty complexID yields an empty feed.
	GetFeed(ctx context.Context, complexID string) (FeedResponse, error)
	// GetSummaryCount counts urgent conditions for a badge using stricter thresholds than the feed.
	GetSummaryCount(ctx context.Context, complexID string) (SummaryCountResponse, error)
}
