package middleware

import (
	"context"

	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxRole     contextKey = "actor_role"
	ctxIdentity contextKey = "identity"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// IdentityFromContext returns the live identity resolved by the Auth
// middleware. The second result is false on unauthenticated requests.
func IdentityFromContext(ctx context.Context) (types.Identity, bool) {
	if ctx == nil {
		return types.Identity{}, false
	}
	v, ok := ctx.Value(ctxIdentity).(types.Identity)
	return v, ok
}

// WithIdentity seeds the context the way Auth does. Exposed for handler
// tests.
func WithIdentity(ctx context.Context, ident types.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, ident.ID)
	ctx = context.WithValue(ctx, ctxRole, string(ident.Role))
	return context.WithValue(ctx, ctxIdentity, ident)
}
