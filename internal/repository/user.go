package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olekhv/storefront/internal/domain/auth"
)

const (
	findUserByKeyHashSQL = `SELECT u.id, u.username, u.roles
	FROM api_keys k
	JOIN users u ON u.id = k.user_id
	WHERE k.key_hash = $1`

	listManagerIDsSQL = `SELECT id FROM users WHERE $1 = ANY(roles) ORDER BY id`
)

var _ auth.Repository = (*UserRepository)(nil)

// UserRepository implements auth.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByKeyHash resolves an API key hash to its owning user, or
// auth.ErrUnauthorized.
func (r *UserRepository) FindByKeyHash(ctx context.Context, hash string) (*auth.User, error) {
	var u auth.User
	err := r.pool.QueryRow(ctx, findUserByKeyHashSQL, hash).Scan(&u.ID, &u.Username, &u.Roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUnauthorized
		}
		return nil, fmt.Errorf("finding user by key hash: %w", err)
	}
	return &u, nil
}

// ListManagerIDs returns the IDs of users currently holding the manager role.
func (r *UserRepository) ListManagerIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, listManagerIDsSQL, auth.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("listing managers: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning manager id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manager ids: %w", err)
	}
	return out, nil
}
