// Package auth resolves who is calling: identities carried in the request
// context, bearer tokens, and password verification.
package auth

import "context"

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID uint
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// CanAccessUser reports whether the caller may act on resources owned by userID.
func (i Identity) CanAccessUser(userID uint) bool {
	return i.IsAdmin() || i.UserID == userID
}

type ctxKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}
