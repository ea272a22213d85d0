package authz

import (
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

// Decision is the outcome of an access check. The HTTP layer maps
// RedirectLogin to 401 and RedirectHome to 403.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Session is the caller's resolved state at decision time.
type Session struct {
	Authenticated bool
	Identity      types.Identity
}

// Decide checks the session against the roles allowed on a resource.
// An empty allowed list means any authenticated caller may pass. The
// check is pure: it never touches storage or the clock.
func Decide(sess Session, allowed []enums.Role) Decision {
	if !sess.Authenticated {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		return Allow
	}
	for _, role := range allowed {
		if sess.Identity.Role == role {
			return Allow
		}
	}
	return RedirectHome
}
