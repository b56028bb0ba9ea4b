// Package auth holds the identity projection this core consumes. Account
// management itself lives in an external subsystem; the storefront only needs
// to resolve an API key to a user and check role membership.
package auth

import (
	"context"

	"github.com/go-faster/errors"
)

// RoleManager authorizes cross-user order visibility and receipt of order
// notifications.
const RoleManager = "manager"

// ErrUnauthorized is returned when an API key does not resolve to a user.
var ErrUnauthorized = errors.New("unauthorized")

// User is the authenticated caller of a request.
type User struct {
	ID       int64
	Username string
	Roles    []string
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Repository resolves identities for the request layer and the notification
// dispatcher.
type Repository interface {
	// FindByKeyHash returns the user owning the API key with the given HMAC
	// hash, or ErrUnauthorized.
	FindByKeyHash(ctx context.Context, hash string) (*User, error)
	// ListManagerIDs returns the IDs of every user holding the manager role
	// at the moment of the call.
	ListManagerIDs(ctx context.Context) ([]int64, error)
}
