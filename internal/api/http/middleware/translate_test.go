package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
	"github.com/OpenLabsEx/API/internal/authfail"
	"github.com/OpenLabsEx/API/internal/model"
	"github.com/OpenLabsEx/API/internal/testutil"
)

func serve(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	m := NewTranslate(testutil.MakeNoopLogger())
	h := m.Wrap(func(_ http.ResponseWriter, _ *http.Request) error { return err })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httputil.Detail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestTranslate_ClassifiedFailures(t *testing.T) {
	tests := []struct {
		err        *authfail.Error
		wantStatus int
		wantDetail string
	}{
		{authfail.MissingCredentials(), http.StatusUnauthorized, "Authentication credentials missing"},
		{authfail.InvalidToken(), http.StatusUnauthorized, "Invalid authentication credentials"},
		{authfail.InvalidCredentials(), http.StatusUnauthorized, "Invalid authentication credentials"},
		{authfail.NoExpiration(), http.StatusUnauthorized, "Token has no expiration"},
		{authfail.Expired(), http.StatusUnauthorized, "Token has expired"},
		{authfail.UserNotFound(), http.StatusUnauthorized, "User not found"},
		{authfail.LoginRejected(), http.StatusUnauthorized, "Invalid credentials or user does not exist"},
		{authfail.Forbidden(), http.StatusForbidden, "Not enough permissions"},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind)+"/"+tt.wantDetail, func(t *testing.T) {
			rec := serve(t, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rec))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestTranslate_UnknownKindIsServerFault(t *testing.T) {
	rec := serve(t, &authfail.Error{Kind: authfail.Kind("mystery"), Detail: "should not leak"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeDetail(t, rec))
	assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestTranslate_WrappedFailureKeepsClassification(t *testing.T) {
	// Intermediate layers may annotate; the classification must survive.
	rec := serve(t, fmt.Errorf("resolve: %w", authfail.Expired()))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has expired", decodeDetail(t, rec))
}

func TestTranslate_TransportErrors(t *testing.T) {
	rec := serve(t, httputil.NewError(http.StatusConflict, "User already exists"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists", decodeDetail(t, rec))
}

func TestTranslate_GenericFallback(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"not found", model.ErrNotFound, http.StatusNotFound, "record not found"},
		{"conflict", model.ErrConflict, http.StatusConflict, "record already exists"},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rec))
		})
	}
}

func TestTranslate_NoErrorWritesNothing(t *testing.T) {
	m := NewTranslate(testutil.MakeNoopLogger())
	h := m.Wrap(func(w http.ResponseWriter, _ *http.Request) error {
		return httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
