package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// Create persists the user together with an empty secrets row in a
	// single transaction. A duplicate email surfaces as ErrConflict.
	Create(ctx context.Context, user User) (User, error)
	// TouchLastActive overwrites last_active unconditionally.
	TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	List(ctx context.Context) ([]User, error)
}

// User represents a stored user account.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	HashedPassword string
	IsAdmin        bool
	CreatedAt      time.Time
	LastActive     time.Time
}
