// Package notification delivers and serves manager notifications about newly
// placed orders.
package notification

import (
	"context"
	"time"
)

// Filter selects which notifications to list.
type Filter string

// Supported list filters. Unread is the default view.
const (
	FilterUnread Filter = "unread"
	FilterRead   Filter = "read"
	FilterAll    Filter = "all"
)

// ParseFilter maps a query value onto a known filter, defaulting to unread.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterRead:
		return FilterRead
	case FilterAll:
		return FilterAll
	default:
		return FilterUnread
	}
}

// Notification tells one manager about one placed order. It is created
// exactly once per (manager, order) pair and mutated only by the read flag.
type Notification struct {
	ID        int64
	UserID    int64
	OrderID   int64
	Message   string
	CreatedAt time.Time
	IsRead    bool
}

// Counts summarizes a manager's notification box.
type Counts struct {
	Unread int
	Read   int
	Total  int
}

// Repository defines persistence operations for notifications.
type Repository interface {
	// Create inserts a notification. A duplicate (user, order) pair is an
	// error; the dispatcher never retries into duplicates.
	Create(ctx context.Context, n *Notification) error
	// ListByUser returns the user's notifications newest-first, narrowed by
	// the filter.
	ListByUser(ctx context.Context, userID int64, f Filter) ([]Notification, error)
	// CountByUser returns unread/read/total counts for the user.
	CountByUser(ctx context.Context, userID int64) (Counts, error)
	// MarkRead flips the read flag of a notification addressed to the given
	// user. Unknown IDs and foreign notifications are a no-op.
	MarkRead(ctx context.Context, userID, notificationID int64) error
}
