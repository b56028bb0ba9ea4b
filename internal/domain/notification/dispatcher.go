package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/olekhv/storefront/internal/domain/auth"
	"github.com/olekhv/storefront/internal/domain/order"
)

var _ order.PlacedHook = (*Dispatcher)(nil)

// Dispatcher fans out a notification to every manager when an order is
// placed. It runs after the order transaction commits; its failures are the
// caller's to log, never to roll back.
type Dispatcher struct {
	users         auth.Repository
	notifications Repository
	loc           *time.Location
}

// NewDispatcher creates a Dispatcher. Timestamps in messages are rendered in
// loc; pass time.Local for the server zone.
func NewDispatcher(users auth.Repository, notifications Repository, loc *time.Location) *Dispatcher {
	if loc == nil {
		loc = time.Local
	}
	return &Dispatcher{
		users:         users,
		notifications: notifications,
		loc:           loc,
	}
}

// OrderPlaced creates one notification per user holding the manager role at
// this instant. Per-manager inserts run concurrently; the first error is
// returned after the rest finish.
func (d *Dispatcher) OrderPlaced(ctx context.Context, o *order.Order) error {
	managers, err := d.users.ListManagerIDs(ctx)
	if err != nil {
		return errors.Wrap(err, "list managers")
	}

	msg := Message(o.ID, o.CreatedAt.In(d.loc))

	g, ctx := errgroup.WithContext(ctx)
	for _, managerID := range managers {
		g.Go(func() error {
			n := &Notification{
				UserID:  managerID,
				OrderID: o.ID,
				Message: msg,
			}
			if err := d.notifications.Create(ctx, n); err != nil {
				return errors.Wrapf(err, "notify manager %d", managerID)
			}
			return nil
		})
	}
	return g.Wait()
}

// Message renders the notification text for an order placed at the given
// local time.
func Message(orderID int64, at time.Time) string {
	return fmt.Sprintf("New order #%d from %s", orderID, at.Format("02.01.2006, 15:04"))
}
