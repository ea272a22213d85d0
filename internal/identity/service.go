package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sj23z/Puzur-Cataloge/pkg/config"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/kv"
	"github.com/sj23z/Puzur-Cataloge/pkg/security"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

const invalidCredentialsMessage = "invalid credentials"

// Service owns the users collection: admin CRUD plus the login check.
type Service interface {
	List(ctx context.Context) ([]types.Identity, error)
	Upsert(ctx context.Context, input UpsertInput) (types.Identity, error)
	Authenticate(ctx context.Context, username, secret string) (types.Identity, error)
	GetActive(ctx context.Context, id string) (types.Identity, error)
}

// UpsertInput carries an identity plus an optional new secret. Merge
// semantics: when Secret is empty and the id already exists, the stored
// credential hash is preserved; every other field is replaced wholesale.
type UpsertInput struct {
	Identity types.Identity
	Secret   string
}

type service struct {
	store       kv.Store
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService builds the identity service around the injected store handle.
func NewService(store kv.Store, passwordCfg config.PasswordConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	return &service{
		store:       store,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

func (s *service) List(ctx context.Context) ([]types.Identity, error) {
	users, err := kv.ReadAll[types.Identity](ctx, s.store, kv.KeyUsers)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read users")
	}
	sanitized := make([]types.Identity, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}
	return sanitized, nil
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (types.Identity, error) {
	record := input.Identity
	record.Username = strings.TrimSpace(record.Username)
	record.FullName = strings.TrimSpace(record.FullName)

	if record.Username == "" {
		return types.Identity{}, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if record.FullName == "" {
		return types.Identity{}, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if !record.Role.IsValid() {
		return types.Identity{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", record.Role))
	}
	if record.DiscountTier <= 0 || record.DiscountTier > 1 {
		return types.Identity{}, pkgerrors.New(pkgerrors.CodeValidation, "discount tier must be in (0, 1]")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	users, err := kv.ReadAll[types.Identity](ctx, s.store, kv.KeyUsers)
	if err != nil {
		return types.Identity{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read users")
	}

	for _, existing := range users {
		if existing.Username == record.Username && existing.ID != record.ID {
			return types.Identity{}, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
	}

	if input.Secret != "" {
		hash, err := security.HashCredential(input.Secret, s.passwordCfg)
		if err != nil {
			return types.Identity{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash credential")
		}
		record.CredentialHash = hash
	}

	replaced := false
	for i, existing := range users {
		if existing.ID != record.ID {
			continue
		}
		if record.CredentialHash == "" {
			record.CredentialHash = existing.CredentialHash
		}
		users[i] = record
		replaced = true
		break
	}
	if !replaced {
		if record.CredentialHash == "" {
			return types.Identity{}, pkgerrors.New(pkgerrors.CodeValidation, "a secret is required for new accounts")
		}
		users = append(users, record)
	}

	if err := kv.WriteAll(ctx, s.store, kv.KeyUsers, users); err != nil {
		return types.Identity{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write users")
	}
	return record.Sanitized(), nil
}

func (s *service) Authenticate(ctx context.Context, username, secret string) (types.Identity, error) {
	users, err := kv.ReadAll[types.Identity](ctx, s.store, kv.KeyUsers)
	if err != nil {
		return types.Identity{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read users")
	}

	for _, user := range users {
		// Username matching is case-sensitive and exact.
		if user.Username != username {
			continue
		}
		ok, err := security.VerifyCredential(secret, user.CredentialHash)
		if err != nil || !ok {
			return types.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		// Inactive accounts fold into the generic credential failure;
		// expiry gets its own signal.
		if !user.IsActive {
			return types.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		if user.Expired(s.now()) {
			return types.Identity{}, pkgerrors.New(pkgerrors.CodeAccountExpired, "account access expired")
		}
		return user.Sanitized(), nil
	}
	return types.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
}

func (s *service) GetActive(ctx context.Context, id string) (types.Identity, error) {
	users, err := kv.ReadAll[types.Identity](ctx, s.store, kv.KeyUsers)
	if err != nil {
		return types.Identity{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read users")
	}

	for _, user := range users {
		if user.ID != id {
			continue
		}
		if !user.IsActive {
			return types.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "account deactivated")
		}
		if user.Expired(s.now()) {
			return types.Identity{}, pkgerrors.New(pkgerrors.CodeAccountExpired, "account access expired")
		}
		return user.Sanitized(), nil
	}
	return types.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "account not found")
}
