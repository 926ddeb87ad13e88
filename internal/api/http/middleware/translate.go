package middleware

import (
	"errors"
	"net/http"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
	"github.com/OpenLabsEx/API/internal/authfail"
	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
)

// statusByKind maps every classified authentication failure to its status
// code. Kinds outside this table are treated as server faults.
var statusByKind = map[authfail.Kind]int{
	authfail.KindMissingCredentials: http.StatusUnauthorized,
	authfail.KindInvalidToken:       http.StatusUnauthorized,
	authfail.KindInvalidCredentials: http.StatusUnauthorized,
	authfail.KindNoExpiration:       http.StatusUnauthorized,
	authfail.KindExpired:            http.StatusUnauthorized,
	authfail.KindUserNotFound:       http.StatusUnauthorized,
	authfail.KindForbidden:          http.StatusForbidden,
}

// Translate turns handler errors into JSON responses. Classified
// authentication failures get their mapped status; 401 responses carry a
// WWW-Authenticate challenge, 403 responses never do. Everything else
// falls through to the generic mapping.
type Translate struct {
	logger *logger.Logger
}

// NewTranslate creates a new Translate middleware instance.
func NewTranslate(logger *logger.Logger) *Translate {
	return &Translate{logger: logger}
}

// Wrap adapts an error-returning handler into an http.Handler.
func (m *Translate) Wrap(next httputil.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := next(w, r)
		if err == nil {
			return
		}
		m.write(w, r, err)
	})
}

func (m *Translate) write(w http.ResponseWriter, r *http.Request, err error) {
	var fail *authfail.Error
	if errors.As(err, &fail) {
		status, ok := statusByKind[fail.Kind]
		if !ok {
			m.logger.Error("translate middleware: unknown failure kind",
				"kind", string(fail.Kind),
				"path", r.URL.Path)
			httputil.WriteDetail(w, http.StatusInternalServerError, "internal server error")
			return
		}

		if status == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		httputil.WriteDetail(w, status, fail.Detail)
		return
	}

	var apiErr *httputil.Error
	if errors.As(err, &apiErr) {
		httputil.WriteDetail(w, apiErr.Status, apiErr.Detail)
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		httputil.WriteDetail(w, http.StatusNotFound, "record not found")
	case errors.Is(err, model.ErrConflict):
		httputil.WriteDetail(w, http.StatusConflict, "record already exists")
	default:
		m.logger.Error("translate middleware: unhandled error",
			"path", r.URL.Path,
			"error", err.Error())
		httputil.WriteDetail(w, http.StatusInternalServerError, "internal server error")
	}
}
