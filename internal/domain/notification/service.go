package notification

import (
	"context"

	"github.com/go-faster/errors"
)

// Inbox is a listing of a user's notifications under one filter, together
// with the box-wide counts.
type Inbox struct {
	Filter        Filter
	Notifications []Notification
	Counts        Counts
}

// Service serves a manager's notification box.
type Service struct {
	notifications Repository
}

// NewService creates a notification Service.
func NewService(notifications Repository) *Service {
	return &Service{notifications: notifications}
}

// List returns the user's notifications newest-first under the given filter,
// plus unread/read/total counts over the whole box.
func (s *Service) List(ctx context.Context, userID int64, f Filter) (Inbox, error) {
	items, err := s.notifications.ListByUser(ctx, userID, f)
	if err != nil {
		return Inbox{}, errors.Wrap(err, "list notifications")
	}
	counts, err := s.notifications.CountByUser(ctx, userID)
	if err != nil {
		return Inbox{}, errors.Wrap(err, "count notifications")
	}
	return Inbox{Filter: f, Notifications: items, Counts: counts}, nil
}

// MarkRead marks one of the user's notifications as read. Notifications
// addressed to other users and already-read notifications are left alone.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if err := s.notifications.MarkRead(ctx, userID, notificationID); err != nil {
		return errors.Wrap(err, "mark notification read")
	}
	return nil
}
