package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
)

// ErrWrongPassword is returned when a password change presents a current
// password that does not match the stored digest.
var ErrWrongPassword = errors.New("current password is incorrect")

// User serves profile and cloud-credential operations for authenticated
// users.
type User struct {
	users   model.UserStore
	secrets model.SecretStore
	hasher  model.PasswordHasher
	logger  *logger.Logger

	now func() time.Time
}

func NewUser(
	users model.UserStore,
	secrets model.SecretStore,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *User {
	return &User{
		users:   users,
		secrets: secrets,
		hasher:  hasher,
		logger:  logger,
		now:     time.Now,
	}
}

// UpdatePassword replaces the caller's password after verifying the current
// one against the stored digest.
func (s *User) UpdatePassword(ctx context.Context, user model.User, current, updated string) error {
	if !s.hasher.Verify(current, user.HashedPassword) {
		s.logger.Debug("user service: current password mismatch",
			"user_id", user.ID.String())
		return ErrWrongPassword
	}

	digest, err := s.hasher.Hash(updated)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, digest); err != nil {
		s.logger.Error("user service: failed to update password",
			"user_id", user.ID.String(),
			"error", err.Error())
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// List returns all user accounts. Admin gating happens in the transport
// layer.
func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Secrets returns the caller's cloud credential record.
func (s *User) Secrets(ctx context.Context, userID uuid.UUID) (model.Secret, error) {
	secret, err := s.secrets.GetByUserID(ctx, userID)
	if err != nil {
		return model.Secret{}, fmt.Errorf("failed to get secrets: %w", err)
	}
	return secret, nil
}

// SetAWSCredentials upserts the caller's AWS access key pair.
func (s *User) SetAWSCredentials(ctx context.Context, userID uuid.UUID, accessKey, secretKey string) error {
	at := s.now().UTC()
	if err := s.secrets.UpdateAWS(ctx, userID, accessKey, secretKey, at); err != nil {
		s.logger.Error("user service: failed to update aws credentials",
			"user_id", userID.String(),
			"error", err.Error())
		return fmt.Errorf("failed to update aws credentials: %w", err)
	}
	return nil
}

// SetAzureCredentials upserts the caller's Azure service principal pair.
func (s *User) SetAzureCredentials(ctx context.Context, userID uuid.UUID, clientID, clientSecret string) error {
	at := s.now().UTC()
	if err := s.secrets.UpdateAzure(ctx, userID, clientID, clientSecret, at); err != nil {
		s.logger.Error("user service: failed to update azure credentials",
			"user_id", userID.String(),
			"error", err.Error())
		return fmt.Errorf("failed to update azure credentials: %w", err)
	}
	return nil
}
