package notification

import (
	"time"
)

// NotificationResponse is a single feed entry
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Priority  Priority  `json:"priority"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Priority:  n.Priority,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	}
}

// PrioritySummary counts feed entries per priority
type PrioritySummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// FeedResponse is the full notification feed. UnreadCount always equals Count
// because no read state is kept.
type FeedResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Count         int                    `json:"count"`
	UnreadCount   int                    `json:"unreadCount"`
	Summary       PrioritySummary        `json:"summary"`
}

// SummaryCountResponse is the badge counter
type SummaryCountResponse struct {
	Count int `json:"count"`
}
