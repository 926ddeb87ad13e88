package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/model"
)

var _ model.RangeStore = (*RangeRepository)(nil)

type RangeRepository struct {
	db *Connection
}

func NewRangeRepository(db *Connection) *RangeRepository {
	return &RangeRepository{
		db: db,
	}
}

func (r *RangeRepository) Create(ctx context.Context, deployed model.DeployedRange) (model.DeployedRange, error) {
	query := `INSERT INTO deployed_ranges (id, user_id, template_id, name, provider, state, template, state_key, deployed_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, user_id, template_id, name, provider, state, template, state_key, deployed_at`

	var saved model.DeployedRange
	err := r.db.QueryRow(ctx, query,
		deployed.ID, deployed.UserID, deployed.TemplateID, deployed.Name, deployed.Provider,
		deployed.State, deployed.Template, deployed.StateKey, deployed.DeployedAt,
	).Scan(
		&saved.ID, &saved.UserID, &saved.TemplateID, &saved.Name, &saved.Provider,
		&saved.State, &saved.Template, &saved.StateKey, &saved.DeployedAt,
	)
	if err != nil {
		return model.DeployedRange{}, fmt.Errorf("failed to create deployed range: %w", err)
	}

	return saved, nil
}

func (r *RangeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DeployedRange, error) {
	query := `SELECT id, user_id, template_id, name, provider, state, template, state_key, deployed_at
			  FROM deployed_ranges WHERE user_id = $1 ORDER BY deployed_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployed ranges: %w", err)
	}
	defer rows.Close()

	var ranges []model.DeployedRange
	for rows.Next() {
		var deployed model.DeployedRange
		if err := rows.Scan(
			&deployed.ID, &deployed.UserID, &deployed.TemplateID, &deployed.Name, &deployed.Provider,
			&deployed.State, &deployed.Template, &deployed.StateKey, &deployed.DeployedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deployed range: %w", err)
		}
		ranges = append(ranges, deployed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deployed ranges: %w", err)
	}

	return ranges, nil
}
