package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/olekhv/storefront/internal/domain/auth"
	"github.com/olekhv/storefront/internal/domain/cart"
)

// PlacedHook is notified after an order has been durably created. Hooks run
// synchronously but outside the order transaction: a failing hook is logged
// and never rolls back the order.
type PlacedHook interface {
	OrderPlaced(ctx context.Context, o *Order) error
}

// Service encapsulates order placement and order reads.
type Service struct {
	carts  *cart.Service
	orders Repository
	hooks  []PlacedHook
}

// NewService creates an order Service. Hooks are invoked in registration
// order after every successful placement.
func NewService(carts *cart.Service, orders Repository, hooks ...PlacedHook) *Service {
	return &Service{
		carts:  carts,
		orders: orders,
		hooks:  hooks,
	}
}

// Place converts the user's current cart into an order.
//
// It re-fetches the cart (a stale checkout page must not place an empty
// order), validates the checkout, snapshots every resolvable line with its
// current price, and persists the order, its lines, and the cart clear as one
// transaction. The recorded total is the live cart total at this instant and
// is never recomputed afterwards.
func (s *Service) Place(ctx context.Context, userID int64, c Checkout) (*Order, error) {
	view, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if view.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(view.Lines))
	for _, l := range view.Lines {
		if l.ProductID == nil {
			// Dangling cart lines carry no price and are not part of the order.
			continue
		}
		lines = append(lines, Line{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}

	o := &Order{
		UserID:          userID,
		TotalPrice:      view.Total,
		DeliveryMethod:  c.DeliveryMethod,
		DeliveryAddress: c.DeliveryAddress,
		PaymentMethod:   c.PaymentMethod,
		Lines:           lines,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	// The order is committed; hook failures must not surface to the caller.
	for _, h := range s.hooks {
		if err := h.OrderPlaced(ctx, o); err != nil {
			zctx.From(ctx).Error("order placed hook failed",
				zap.Int64("order_id", o.ID),
				zap.Error(err),
			)
		}
	}

	return o, nil
}

// GetForUser loads an order for display. The owner always has access;
// everyone else needs the manager role.
func (s *Service) GetForUser(ctx context.Context, u *auth.User, orderID int64) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %d", orderID)
	}

	if o.UserID != u.ID && !u.HasRole(auth.RoleManager) {
		return nil, &AccessDeniedError{OrderID: orderID}
	}
	return o, nil
}

// ListByUser returns the user's own orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	out, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return out, nil
}
