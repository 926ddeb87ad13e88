package model

import "context"

// ContextManager carries the authenticated user through a request context.
type ContextManager interface {
	WithUser(ctx context.Context, user User) context.Context
	UserFromContext(ctx context.Context) (User, bool)
}
