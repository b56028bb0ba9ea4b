package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olekhv/storefront/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (user_id, total_price, delivery_method, delivery_address, payment_method)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at`

	insertOrderLineSQL = `INSERT INTO order_lines (order_id, product_id, product_name, quantity, price)
	VALUES ($1, $2, $3, $4, $5)`

	getOrderSQL = `SELECT id, user_id, created_at, total_price, delivery_method, delivery_address, payment_method
	FROM orders WHERE id = $1`

	listOrdersByUserSQL = `SELECT id, user_id, created_at, total_price, delivery_method, delivery_address, payment_method
	FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	orderLinesSQL = `SELECT product_id, product_name, quantity, price
	FROM order_lines WHERE order_id = $1 ORDER BY id`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order, its lines, and the placing user's cart clear in
// one transaction. A failure at any point rolls everything back: no order
// row, no line rows, cart intact.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertOrderSQL,
			o.UserID, o.TotalPrice, o.DeliveryMethod, o.DeliveryAddress, o.PaymentMethod,
		).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting order: %w", err)
		}

		for _, l := range o.Lines {
			_, err := tx.Exec(ctx, insertOrderLineSQL,
				o.ID, l.ProductID, l.ProductName, l.Quantity, l.Price,
			)
			if err != nil {
				return fmt.Errorf("inserting order line (product %v): %w", l.ProductID, err)
			}
		}

		if _, err := tx.Exec(ctx, clearCartSQL, o.UserID); err != nil {
			return fmt.Errorf("clearing cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating order for user %d: %w", o.UserID, err)
	}
	return nil
}

// GetByID loads an order with its lines, or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.pool.QueryRow(ctx, getOrderSQL, id).Scan(
		&o.ID, &o.UserID, &o.CreatedAt, &o.TotalPrice,
		&o.DeliveryMethod, &o.DeliveryAddress, &o.PaymentMethod,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	if o.Lines, err = r.lines(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the user's orders newest-first, lines included.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.CreatedAt, &o.TotalPrice,
			&o.DeliveryMethod, &o.DeliveryAddress, &o.PaymentMethod,
		); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	for i := range out {
		if out[i].Lines, err = r.lines(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepository) lines(ctx context.Context, orderID int64) ([]order.Line, error) {
	rows, err := r.pool.Query(ctx, orderLinesSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing lines of order %d: %w", orderID, err)
	}
	defer rows.Close()

	var out []order.Line
	for rows.Next() {
		var l order.Line
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.Price); err != nil {
			return nil, fmt.Errorf("scanning order line: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order lines: %w", err)
	}
	return out, nil
}
