package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/authfail"
	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
)

// Auth issues identity tokens for valid credentials and resolves presented
// tokens back to user records.
type Auth struct {
	users  model.UserStore
	tokens model.TokenManager
	hasher model.PasswordHasher
	logger *logger.Logger

	// now is swappable in tests; resolution always works in UTC.
	now func() time.Time
}

func NewAuth(
	users model.UserStore,
	tokens model.TokenManager,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
		now:    time.Now,
	}
}

// Login verifies email and password and returns a signed token. A missing
// user and a wrong password produce the same failure so the response never
// reveals which precondition failed.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Debug("auth service: login for unknown email",
				"email", email)
			return "", authfail.LoginRejected()
		}
		a.logger.Error("auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.HashedPassword) {
		a.logger.Debug("auth service: password mismatch",
			"email", email)
		return "", authfail.LoginRejected()
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		a.logger.Error("auth service: failed to issue token",
			"user_id", user.ID.String(),
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// RegisterParams carries the fields of a new account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new non-admin user together with its empty secrets
// record. The existence check runs before creation; a concurrent duplicate
// is still caught by the unique email constraint in the store.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (uuid.UUID, error) {
	_, err := a.users.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("auth service: email already registered",
			"email", params.Email)
		return uuid.Nil, model.ErrConflict
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("auth service: failed to check email",
			"email", params.Email,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	digest, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("auth service: failed to hash password",
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now().UTC()
	created, err := a.users.Create(ctx, model.User{
		ID:             uuid.New(),
		Name:           params.Name,
		Email:          params.Email,
		HashedPassword: digest,
		IsAdmin:        false,
		CreatedAt:      now,
		LastActive:     now,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return uuid.Nil, model.ErrConflict
		}
		a.logger.Error("auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("auth service: user registered",
		"user_id", created.ID.String())

	return created.ID, nil
}

// ResolveToken turns a raw token into the user it identifies. Each failure
// carries its own classification so the transport layer can translate it
// without inspecting messages. A successful resolution overwrites the
// user's last_active with the current UTC time.
func (a *Auth) ResolveToken(ctx context.Context, raw string) (model.User, error) {
	if raw == "" {
		return model.User{}, authfail.MissingCredentials()
	}

	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return model.User{}, err
	}

	now := a.now().UTC()
	if now.After(claims.ExpiresAt) {
		return model.User{}, authfail.Expired()
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, authfail.UserNotFound()
		}
		a.logger.Error("auth service: failed to get user by id",
			"user_id", claims.UserID.String(),
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := a.users.TouchLastActive(ctx, user.ID, now); err != nil {
		a.logger.Error("auth service: failed to update last active",
			"user_id", user.ID.String(),
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update last active: %w", err)
	}
	user.LastActive = now

	return user, nil
}

// EnsureAdmin creates the configured administrator account if it does not
// exist yet. Called once at startup.
func (a *Auth) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now().UTC()
	_, err = a.users.Create(ctx, model.User{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: digest,
		IsAdmin:        true,
		CreatedAt:      now,
		LastActive:     now,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	a.logger.Info("auth service: admin account created",
		"email", email)

	return nil
}
