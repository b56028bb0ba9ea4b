package httpapi

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/olekhv/storefront/internal/domain/auth"
)

// userKey is the context key for the authenticated user.
type userKey struct{}

// UserFromContext extracts the authenticated user stored by the auth
// middleware. It returns nil outside an authenticated request.
func UserFromContext(ctx context.Context) *auth.User {
	u, _ := ctx.Value(userKey{}).(*auth.User)
	return u
}

// APIKeyAuth authenticates requests via HMAC-SHA256 hashed API keys carried
// in the X-API-Key header. Only the hash ever touches storage.
type APIKeyAuth struct {
	users  auth.Repository
	pepper []byte
}

// NewAPIKeyAuth creates an APIKeyAuth with the given user repository and
// HMAC pepper.
func NewAPIKeyAuth(users auth.Repository, pepper []byte) *APIKeyAuth {
	return &APIKeyAuth{
		users:  users,
		pepper: pepper,
	}
}

// HashKey computes the HMAC-SHA256 hex digest of an API key. The seed tool
// uses the same derivation when provisioning keys.
func (a *APIKeyAuth) HashKey(key string) string {
	mac := hmac.New(sha256.New, a.pepper)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

// Middleware resolves the X-API-Key header to a user and injects it into the
// request context, or rejects the request with 401.
func (a *APIKeyAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			respondError(w, r, http.StatusUnauthorized, "missing API key")
			return
		}

		u, err := a.users.FindByKeyHash(r.Context(), a.HashKey(key))
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
