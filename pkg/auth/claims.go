package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT. The jti
// doubles as the server-side session id; only the identity id and role ride
// in the token itself, the live record is re-read on every guarded request.
type AccessTokenPayload struct {
	UserID    string
	Role      enums.Role
	SessionID string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID string     `json:"user_id"`
	Role   enums.Role `json:"role"`
	jwt.RegisteredClaims
}
