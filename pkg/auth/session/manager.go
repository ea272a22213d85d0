package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/sj23z/Puzur-Cataloge/pkg/config"
	redisclient "github.com/sj23z/Puzur-Cataloge/pkg/redis"
)

// ErrSessionNotFound signals a session id with no live record, either never
// started or already logged out.
var ErrSessionNotFound = errors.New("session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager owns the server-side session records. A record maps session id to
// identity id and nothing else; the live identity record is re-read on every
// authorization check, so a deactivated account loses access at its next
// request rather than at its next login.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	Lookup(ctx context.Context, sessionID string) (string, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Start records a new session for the identity and returns its id.
func (m *Manager) Start(ctx context.Context, identityID string) (string, error) {
	if strings.TrimSpace(identityID) == "" {
		return "", fmt.Errorf("identity id is required")
	}
	sessionID := uuid.NewString()
	if err := m.store.Set(ctx, m.keyer.SessionKey(sessionID), identityID, m.ttl); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Lookup resolves the identity id bound to the session.
func (m *Manager) Lookup(ctx context.Context, sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", ErrSessionNotFound
	}
	identityID, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if errors.Is(err, redislib.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return identityID, nil
}

// End erases the session record; subsequent lookups report ErrSessionNotFound.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}
