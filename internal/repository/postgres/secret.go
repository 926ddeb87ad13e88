package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/OpenLabsEx/API/internal/model"
)

var _ model.SecretStore = (*SecretRepository)(nil)

type SecretRepository struct {
	db *Connection
}

func NewSecretRepository(db *Connection) *SecretRepository {
	return &SecretRepository{
		db: db,
	}
}

func (r *SecretRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Secret, error) {
	var secret model.Secret
	query := `SELECT user_id, aws_access_key, aws_secret_key, aws_created_at,
			         azure_client_id, azure_client_secret, azure_created_at
			  FROM secrets WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&secret.UserID, &secret.AWSAccessKey, &secret.AWSSecretKey, &secret.AWSCreatedAt,
		&secret.AzureClientID, &secret.AzureClientSecret, &secret.AzureCreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Secret{}, model.ErrNotFound
		}
		return model.Secret{}, fmt.Errorf("failed to get secrets by user id: %w", err)
	}

	return secret, nil
}

func (r *SecretRepository) UpdateAWS(ctx context.Context, userID uuid.UUID, accessKey, secretKey string, at time.Time) error {
	query := `UPDATE secrets SET aws_access_key = $2, aws_secret_key = $3, aws_created_at = $4
			  WHERE user_id = $1`

	tag, err := r.db.Exec(ctx, query, userID, accessKey, secretKey, at)
	if err != nil {
		return fmt.Errorf("failed to update aws credentials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *SecretRepository) UpdateAzure(ctx context.Context, userID uuid.UUID, clientID, clientSecret string, at time.Time) error {
	query := `UPDATE secrets SET azure_client_id = $2, azure_client_secret = $3, azure_created_at = $4
			  WHERE user_id = $1`

	tag, err := r.db.Exec(ctx, query, userID, clientID, clientSecret, at)
	if err != nil {
		return fmt.Errorf("failed to update azure credentials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
