package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
	"github.com/OpenLabsEx/API/internal/service"
)

// AuthService defines login and registration operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, params service.RegisterParams) (uuid.UUID, error)
}

// Auth handles the login and registration endpoints.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login verifies credentials and returns a signed token. The token is also
// set as a cookie so browser clients authenticate without carrying the
// Authorization header.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return httputil.NewError(http.StatusUnprocessableEntity, "malformed request body")
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return httputil.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID string `json:"id"`
}

// Register creates a new account. A duplicate email is a conflict; any
// other persistence failure is reported as unprocessable.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return httputil.NewError(http.StatusUnprocessableEntity, "malformed request body")
	}
	if req.Email == "" || req.Password == "" {
		return httputil.NewError(http.StatusUnprocessableEntity, "email and password are required")
	}

	id, err := h.service.Register(r.Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return httputil.NewError(http.StatusConflict, "User already exists")
		}
		h.logger.Error("auth handler: registration failed",
			"error", err.Error())
		return httputil.NewError(http.StatusUnprocessableEntity, "Unable to create user")
	}

	return httputil.WriteJSON(w, http.StatusCreated, registerResponse{ID: id.String()})
}
