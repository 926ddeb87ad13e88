package middleware

import (
	"net/http"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
	"github.com/OpenLabsEx/API/internal/authfail"
	"github.com/OpenLabsEx/API/internal/model"
)

// Admin rejects authenticated users without administrator rights. It
// composes after Authenticate and is a pure predicate on the context user.
type Admin struct {
	contextManager model.ContextManager
}

// NewAdmin creates a new Admin middleware instance.
func NewAdmin(contextManager model.ContextManager) *Admin {
	return &Admin{contextManager: contextManager}
}

// Wrap guards next with the admin check.
func (m *Admin) Wrap(next httputil.HandlerFunc) httputil.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, ok := m.contextManager.UserFromContext(r.Context())
		if !ok {
			return authfail.MissingCredentials()
		}
		if !user.IsAdmin {
			return authfail.Forbidden()
		}
		return next(w, r)
	}
}
