package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/OpenLabsEx/API/internal/model"
)

var _ model.TemplateStore = (*TemplateRepository)(nil)

type TemplateRepository struct {
	db *Connection
}

func NewTemplateRepository(db *Connection) *TemplateRepository {
	return &TemplateRepository{
		db: db,
	}
}

func (r *TemplateRepository) Create(ctx context.Context, template model.Template) (model.Template, error) {
	query := `INSERT INTO templates (id, user_id, kind, name, doc, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, user_id, kind, name, doc, created_at`

	var saved model.Template
	err := r.db.QueryRow(ctx, query,
		template.ID, template.UserID, template.Kind, template.Name, template.Doc, template.CreatedAt,
	).Scan(
		&saved.ID, &saved.UserID, &saved.Kind, &saved.Name, &saved.Doc, &saved.CreatedAt,
	)
	if err != nil {
		return model.Template{}, fmt.Errorf("failed to create %s template: %w", template.Kind, err)
	}

	return saved, nil
}

// Get fetches a template by kind and id. A non-nil ownerID restricts the
// lookup to that owner; records owned by other users report ErrNotFound
// rather than existence.
func (r *TemplateRepository) Get(ctx context.Context, kind model.TemplateKind, id uuid.UUID, ownerID *uuid.UUID) (model.Template, error) {
	query := `SELECT id, user_id, kind, name, doc, created_at
			  FROM templates WHERE kind = $1 AND id = $2`
	args := []any{kind, id}
	if ownerID != nil {
		query += ` AND user_id = $3`
		args = append(args, *ownerID)
	}

	var template model.Template
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&template.ID, &template.UserID, &template.Kind, &template.Name, &template.Doc, &template.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Template{}, model.ErrNotFound
		}
		return model.Template{}, fmt.Errorf("failed to get %s template: %w", kind, err)
	}

	return template, nil
}

func (r *TemplateRepository) Headers(ctx context.Context, kind model.TemplateKind, ownerID uuid.UUID) ([]model.TemplateHeader, error) {
	query := `SELECT id, name FROM templates
			  WHERE kind = $1 AND user_id = $2 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, kind, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s template headers: %w", kind, err)
	}
	defer rows.Close()

	var headers []model.TemplateHeader
	for rows.Next() {
		var header model.TemplateHeader
		if err := rows.Scan(&header.ID, &header.Name); err != nil {
			return nil, fmt.Errorf("failed to scan template header: %w", err)
		}
		headers = append(headers, header)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate template headers: %w", err)
	}

	return headers, nil
}
