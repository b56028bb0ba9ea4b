package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olekhv/storefront/internal/domain/cart"
)

const (
	cartLinesSQL = `SELECT cl.product_id, COALESCE(p.name, ''), COALESCE(p.price, 0), cl.quantity
	FROM cart_lines cl
	JOIN carts c ON c.id = cl.cart_id
	LEFT JOIN products p ON p.id = cl.product_id
	WHERE c.user_id = $1
	ORDER BY cl.id`

	ensureCartSQL = `INSERT INTO carts (user_id) VALUES ($1)
	ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING id`

	upsertCartLineSQL = `INSERT INTO cart_lines (cart_id, product_id, quantity)
	VALUES ($1, $2, 1)
	ON CONFLICT (cart_id, product_id)
	DO UPDATE SET quantity = cart_lines.quantity + 1`

	deleteCartLineSQL = `DELETE FROM cart_lines cl USING carts c
	WHERE cl.cart_id = c.id AND c.user_id = $1 AND cl.product_id = $2`

	setCartLineQtySQL = `UPDATE cart_lines cl SET quantity = $3 FROM carts c
	WHERE cl.cart_id = c.id AND c.user_id = $1 AND cl.product_id = $2`

	clearCartSQL = `DELETE FROM cart_lines cl USING carts c
	WHERE cl.cart_id = c.id AND c.user_id = $1`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL. The
// UNIQUE (cart_id, product_id) constraint plus the upsert in UpsertLine make
// concurrent adds of the same product collapse into one line.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Lines returns the user's cart lines joined with the catalog. Lines whose
// product was deleted come back with a nil product ID and a zero price.
func (r *CartRepository) Lines(ctx context.Context, userID int64) ([]cart.Line, error) {
	rows, err := r.pool.Query(ctx, cartLinesSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing cart lines for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []cart.Line
	for rows.Next() {
		var l cart.Line
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Price, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scanning cart line: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart lines: %w", err)
	}
	return out, nil
}

// UpsertLine lazily creates the user's cart and atomically add-or-increments
// the line for the product.
func (r *CartRepository) UpsertLine(ctx context.Context, userID, productID int64) error {
	var cartID int64
	if err := r.pool.QueryRow(ctx, ensureCartSQL, userID).Scan(&cartID); err != nil {
		return fmt.Errorf("ensuring cart for user %d: %w", userID, err)
	}

	if _, err := r.pool.Exec(ctx, upsertCartLineSQL, cartID, productID); err != nil {
		return fmt.Errorf("upserting cart line (cart %d, product %d): %w", cartID, productID, err)
	}
	return nil
}

// DeleteLine removes the product's line from the user's cart, if any.
func (r *CartRepository) DeleteLine(ctx context.Context, userID, productID int64) error {
	if _, err := r.pool.Exec(ctx, deleteCartLineSQL, userID, productID); err != nil {
		return fmt.Errorf("deleting cart line (user %d, product %d): %w", userID, productID, err)
	}
	return nil
}

// SetQuantity replaces the quantity of the product's line, if present.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if _, err := r.pool.Exec(ctx, setCartLineQtySQL, userID, productID, quantity); err != nil {
		return fmt.Errorf("setting cart line quantity (user %d, product %d): %w", userID, productID, err)
	}
	return nil
}

// Clear deletes every line in the user's cart.
func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	if _, err := r.pool.Exec(ctx, clearCartSQL, userID); err != nil {
		return fmt.Errorf("clearing cart for user %d: %w", userID, err)
	}
	return nil
}
