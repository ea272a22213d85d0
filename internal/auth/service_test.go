package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sj23z/Puzur-Cataloge/internal/identity"
	pkgauth "github.com/sj23z/Puzur-Cataloge/pkg/auth"
	"github.com/sj23z/Puzur-Cataloge/pkg/config"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/kv"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

type fakeSessions struct {
	records map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{records: map[string]string{}}
}

func (f *fakeSessions) Start(_ context.Context, identityID string) (string, error) {
	id := uuid.NewString()
	f.records[id] = identityID
	return id, nil
}

func (f *fakeSessions) End(_ context.Context, sessionID string) error {
	delete(f.records, sessionID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "puzur-test",
		ExpirationMinutes: 60,
	}
}

func newFixture(t *testing.T) (Service, *fakeSessions) {
	t.Helper()
	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	identities, err := identity.NewService(kv.NewMemoryStore(), passwordCfg)
	if err != nil {
		t.Fatalf("identity.NewService: %v", err)
	}
	if _, err := identities.Upsert(context.Background(), identity.UpsertInput{
		Identity: types.Identity{
			Username:     "doctor",
			Role:         enums.RoleStandard,
			FullName:     "Dr. Sarah Smith",
			ClinicName:   "Elite Aesthetics",
			DiscountTier: 0.85,
			IsActive:     true,
		},
		Secret: "password123",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	sessions := newFakeSessions()
	svc, err := NewService(identities, sessions, testJWTConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, sessions
}

func TestLoginMintsTokenBoundToSession(t *testing.T) {
	svc, sessions := newFixture(t)

	result, err := svc.Login(context.Background(), LoginRequest{Username: "doctor", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected an access token")
	}
	if result.User.CredentialHash != "" {
		t.Fatalf("credential hash leaked in login result")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("token user id %q, want %q", claims.UserID, result.User.ID)
	}
	if _, ok := sessions.records[claims.ID]; !ok {
		t.Fatalf("session %q not started", claims.ID)
	}
	if sessions.records[claims.ID] != result.User.ID {
		t.Fatalf("session bound to %q, want %q", sessions.records[claims.ID], result.User.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, sessions := newFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "doctor", Password: "nope"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if len(sessions.records) != 0 {
		t.Fatalf("no session should start on a failed login")
	}
}

func TestLogoutEndsSession(t *testing.T) {
	svc, sessions := newFixture(t)

	result, err := svc.Login(context.Background(), LoginRequest{Username: "doctor", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(context.Background(), result.AccessToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.records) != 0 {
		t.Fatalf("session not ended: %v", sessions.records)
	}
}

func TestLogoutAcceptsExpiredToken(t *testing.T) {
	svc, sessions := newFixture(t)
	typed := svc.(*service)
	typed.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }

	result, err := svc.Login(context.Background(), LoginRequest{Username: "doctor", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	typed.now = time.Now

	if err := svc.Logout(context.Background(), result.AccessToken); err != nil {
		t.Fatalf("Logout with expired token: %v", err)
	}
	if len(sessions.records) != 0 {
		t.Fatalf("session not ended")
	}
}

func TestLogoutRejectsForgedToken(t *testing.T) {
	svc, _ := newFixture(t)

	forgedCfg := testJWTConfig()
	forgedCfg.Secret = "other-secret"
	forged, err := pkgauth.MintAccessToken(forgedCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: "u-1",
		Role:   enums.RoleStandard,
	})
	if err != nil {
		t.Fatalf("mint forged token: %v", err)
	}

	err = svc.Logout(context.Background(), forged)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}
