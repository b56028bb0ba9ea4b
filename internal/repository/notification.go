package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olekhv/storefront/internal/domain/notification"
)

const (
	insertNotificationSQL = `INSERT INTO order_notifications (user_id, order_id, message)
	VALUES ($1, $2, $3)
	RETURNING id, created_at, is_read`

	listNotificationsSQL = `SELECT id, user_id, order_id, message, created_at, is_read
	FROM order_notifications
	WHERE user_id = $1 AND ($2 OR is_read = $3)
	ORDER BY created_at DESC, id DESC`

	countNotificationsSQL = `SELECT
		COUNT(*) FILTER (WHERE NOT is_read),
		COUNT(*) FILTER (WHERE is_read),
		COUNT(*)
	FROM order_notifications WHERE user_id = $1`

	markNotificationReadSQL = `UPDATE order_notifications SET is_read = TRUE
	WHERE id = $1 AND user_id = $2 AND NOT is_read`
)

var _ notification.Repository = (*NotificationRepository)(nil)

// NotificationRepository implements notification.Repository backed by
// PostgreSQL.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a NotificationRepository that uses the
// given pool.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create inserts a notification. The UNIQUE (user_id, order_id) constraint
// rejects a second notification for the same manager and order.
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	err := r.pool.QueryRow(ctx, insertNotificationSQL, n.UserID, n.OrderID, n.Message).
		Scan(&n.ID, &n.CreatedAt, &n.IsRead)
	if err != nil {
		return fmt.Errorf("inserting notification (user %d, order %d): %w", n.UserID, n.OrderID, err)
	}
	return nil
}

// ListByUser returns the user's notifications newest-first, narrowed by the
// filter.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, f notification.Filter) ([]notification.Notification, error) {
	all := f == notification.FilterAll
	wantRead := f == notification.FilterRead

	rows, err := r.pool.Query(ctx, listNotificationsSQL, userID, all, wantRead)
	if err != nil {
		return nil, fmt.Errorf("listing notifications for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.OrderID, &n.Message, &n.CreatedAt, &n.IsRead); err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}
	return out, nil
}

// CountByUser returns unread/read/total counts over the user's box.
func (r *NotificationRepository) CountByUser(ctx context.Context, userID int64) (notification.Counts, error) {
	var c notification.Counts
	err := r.pool.QueryRow(ctx, countNotificationsSQL, userID).Scan(&c.Unread, &c.Read, &c.Total)
	if err != nil {
		return notification.Counts{}, fmt.Errorf("counting notifications for user %d: %w", userID, err)
	}
	return c, nil
}

// MarkRead flips the read flag of the user's own unread notification.
// Foreign or unknown IDs match no row and are silently absorbed.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if _, err := r.pool.Exec(ctx, markNotificationReadSQL, notificationID, userID); err != nil {
		return fmt.Errorf("marking notification %d read: %w", notificationID, err)
	}
	return nil
}
