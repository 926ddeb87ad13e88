// Package request carries the authenticated user through request contexts.
package request

import (
	"context"

	"github.com/OpenLabsEx/API/internal/model"
)

type contextKey int

const userKey contextKey = iota

// Manager implements model.ContextManager on top of context values.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// WithUser returns a child context carrying the authenticated user.
func (m *Manager) WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the authenticated user, reporting whether one
// was stored.
func (m *Manager) UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
