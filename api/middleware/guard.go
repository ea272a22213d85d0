package middleware

import (
	"net/http"

	"github.com/sj23z/Puzur-Cataloge/api/responses"
	"github.com/sj23z/Puzur-Cataloge/internal/authz"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/logger"
)

// RequireRoles gates a subtree on the caller's role. It runs after Auth,
// so an absent identity means the chain was miswired rather than a user
// mistake, but it still fails closed.
func RequireRoles(logg *logger.Logger, allowed ...enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromContext(r.Context())
			sess := authz.Session{Authenticated: ok, Identity: ident}

			switch authz.Decide(sess, allowed) {
			case authz.Allow:
				next.ServeHTTP(w, r)
			case authz.RedirectLogin:
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			default:
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
			}
		})
	}
}
