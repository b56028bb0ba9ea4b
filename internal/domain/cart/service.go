package cart

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/olekhv/storefront/internal/domain/product"
)

// Service encapsulates cart business rules on top of the repository.
type Service struct {
	products product.Repository
	carts    Repository
}

// NewService creates a cart Service with the required dependencies.
func NewService(products product.Repository, carts Repository) *Service {
	return &Service{
		products: products,
		carts:    carts,
	}
}

// Add puts one unit of the product into the user's cart. Adding a product
// already in the cart increments its line instead of duplicating it. It
// returns the recomputed cart total. Unknown products fail with
// product.ErrNotFound.
func (s *Service) Add(ctx context.Context, userID, productID int64) (decimal.Decimal, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return decimal.Zero, product.ErrNotFound
		}
		return decimal.Zero, errors.Wrapf(err, "get product %d", productID)
	}

	if err := s.carts.UpsertLine(ctx, userID, productID); err != nil {
		return decimal.Zero, errors.Wrap(err, "upsert cart line")
	}

	return s.Total(ctx, userID)
}

// Remove deletes the whole line for the product, regardless of quantity.
// A missing cart or line is absorbed silently. It returns the recomputed
// total.
func (s *Service) Remove(ctx context.Context, userID, productID int64) (decimal.Decimal, error) {
	if err := s.carts.DeleteLine(ctx, userID, productID); err != nil {
		return decimal.Zero, errors.Wrap(err, "delete cart line")
	}
	return s.Total(ctx, userID)
}

// SetQuantity replaces the quantity of an existing line. Values below 1 are
// clamped to 1 rather than rejected. A missing line is a no-op.
func (s *Service) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if err := s.carts.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return errors.Wrap(err, "set cart line quantity")
	}
	return nil
}

// Clear removes every line from the user's cart.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	if err := s.carts.Clear(ctx, userID); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}

// Get returns the cart lines together with the recomputed total.
func (s *Service) Get(ctx context.Context, userID int64) (View, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return View{}, errors.Wrap(err, "load cart lines")
	}
	return View{Lines: lines, Total: TotalOf(lines)}, nil
}

// Total recomputes the cart total as the sum of quantity × current price over
// lines whose product still resolves.
func (s *Service) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "load cart lines")
	}
	return TotalOf(lines), nil
}
