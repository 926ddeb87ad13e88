package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SecretStore persists per-user cloud credentials.
type SecretStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Secret, error)
	UpdateAWS(ctx context.Context, userID uuid.UUID, accessKey, secretKey string, at time.Time) error
	UpdateAzure(ctx context.Context, userID uuid.UUID, clientID, clientSecret string, at time.Time) error
}

// Secret holds one user's cloud provider credentials. A user gets exactly
// one row, created empty at registration.
type Secret struct {
	UserID uuid.UUID

	AWSAccessKey string
	AWSSecretKey string
	AWSCreatedAt *time.Time

	AzureClientID     string
	AzureClientSecret string
	AzureCreatedAt    *time.Time
}

// HasAWS reports whether a complete AWS credential pair is stored.
func (s Secret) HasAWS() bool {
	return s.AWSAccessKey != "" && s.AWSSecretKey != ""
}

// HasAzure reports whether complete Azure credentials are stored.
func (s Secret) HasAzure() bool {
	return s.AzureClientID != "" && s.AzureClientSecret != ""
}
