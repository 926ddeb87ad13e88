package handler

import (
	"net/http"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
)

// Health serves the unauthenticated liveness endpoint.
type Health struct{}

// NewHealth creates a new Health handler.
func NewHealth() *Health {
	return &Health{}
}

func (h *Health) Check(w http.ResponseWriter, _ *http.Request) error {
	return httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
