package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
)

// tokenCookie is the cookie the login endpoint sets. When present and
// non-empty it is the only transport location considered.
const tokenCookie = "token"

// AuthService resolves a raw token to the user it identifies.
type AuthService interface {
	ResolveToken(ctx context.Context, raw string) (model.User, error)
}

// Authenticate extracts the identity token from the request, resolves it
// and stores the user in the request context. Failures propagate to the
// error translator unchanged.
type Authenticate struct {
	auth           AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(auth AuthService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{auth: auth, contextManager: contextManager, logger: logger}
}

// Wrap guards next with token authentication.
func (m *Authenticate) Wrap(next httputil.HandlerFunc) httputil.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := m.auth.ResolveToken(r.Context(), ExtractToken(r))
		if err != nil {
			m.logger.Debug("authenticate middleware: resolution failed",
				"path", r.URL.Path,
				"error", err.Error())
			return err
		}

		ctx := m.contextManager.WithUser(r.Context(), user)
		return next(w, r.WithContext(ctx))
	}
}

// ExtractToken returns the raw token from the request: the token cookie
// when set and non-empty, otherwise the Authorization header's Bearer
// value. An empty return means no credentials were presented.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(tokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return raw
	}

	return ""
}
