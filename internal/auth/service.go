package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/sj23z/Puzur-Cataloge/internal/identity"
	pkgauth "github.com/sj23z/Puzur-Cataloge/pkg/auth"
	"github.com/sj23z/Puzur-Cataloge/pkg/config"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult returns the minted token alongside the sanitized account,
// which the portal uses to route admins and clinics to their dashboards.
type LoginResult struct {
	AccessToken string         `json:"accessToken"`
	User        types.Identity `json:"user"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// sessionManager is the slice of the session manager the login flow needs.
type sessionManager interface {
	Start(ctx context.Context, identityID string) (string, error)
	End(ctx context.Context, sessionID string) error
}

type service struct {
	identities identity.Service
	sessions   sessionManager
	jwtCfg     config.JWTConfig
	now        func() time.Time
}

func NewService(identities identity.Service, sessions sessionManager, jwtCfg config.JWTConfig) (Service, error) {
	if identities == nil {
		return nil, fmt.Errorf("identity service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		identities: identities,
		sessions:   sessions,
		jwtCfg:     jwtCfg,
		now:        time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	user, err := s.identities.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return LoginResult{}, err
	}

	sessionID, err := s.sessions.Start(ctx, user.ID)
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start session")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID:    user.ID,
		Role:      user.Role,
		SessionID: sessionID,
	})
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return LoginResult{AccessToken: token, User: user}, nil
}

// Logout ends the token's server-side session. Expired tokens still log
// out cleanly; token forgeries do not.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, token)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if err := s.sessions.End(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "end session")
	}
	return nil
}
