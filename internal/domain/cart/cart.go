// Package cart implements the per-user shopping cart aggregate: line
// accumulation, quantity edits, and total computation.
package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Line is a single (product, quantity) entry in a user's cart, joined with
// the current catalog state. ProductID is nil when the referenced product was
// deleted; such lines contribute zero to the total.
type Line struct {
	ProductID   *int64
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// Subtotal returns quantity × current price for this line. A dangling line
// has a zero price and therefore a zero subtotal.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// View is a read model of a cart: its lines and the recomputed total.
type View struct {
	Lines []Line
	Total decimal.Decimal
}

// IsEmpty reports whether the cart has no lines.
func (v View) IsEmpty() bool {
	return len(v.Lines) == 0
}

// TotalOf computes the cart total from the given lines.
func TotalOf(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Repository defines persistence operations for carts. Implementations must
// guarantee at most one line per (cart, product) pair; UpsertLine is the
// atomic add-or-increment that closes the concurrent-add race.
type Repository interface {
	// Lines returns the current cart lines for the user, joined with the
	// catalog. A user without a cart has no lines.
	Lines(ctx context.Context, userID int64) ([]Line, error)
	// UpsertLine creates the user's cart on first use and either inserts a
	// line with quantity 1 or atomically increments the existing line.
	UpsertLine(ctx context.Context, userID, productID int64) error
	// DeleteLine removes the line for the product entirely. Missing cart or
	// line is a no-op.
	DeleteLine(ctx context.Context, userID, productID int64) error
	// SetQuantity replaces the quantity of an existing line. Missing cart or
	// line is a no-op.
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	// Clear deletes all lines of the user's cart. Missing cart is a no-op.
	Clear(ctx context.Context, userID int64) error
}
