package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. The catalog is
// owned by an external subsystem; this core only reads it.
type Product struct {
	ID     int64
	Name   string
	Price  decimal.Decimal
	Active bool
}

// Repository defines read operations for the product catalog.
type Repository interface {
	// List returns active products ordered by ID.
	List(ctx context.Context) ([]Product, error)
	// GetByID returns a single product by its identifier, active or not.
	// It returns ErrNotFound when no matching product exists.
	GetByID(ctx context.Context, id int64) (*Product, error)
}
