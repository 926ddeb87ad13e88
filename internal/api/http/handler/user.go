package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
	"github.com/OpenLabsEx/API/internal/authfail"
	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
	"github.com/OpenLabsEx/API/internal/service"
)

// UserService defines profile and credential operations.
type UserService interface {
	UpdatePassword(ctx context.Context, user model.User, current, updated string) error
	List(ctx context.Context) ([]model.User, error)
	Secrets(ctx context.Context, userID uuid.UUID) (model.Secret, error)
	SetAWSCredentials(ctx context.Context, userID uuid.UUID, accessKey, secretKey string) error
	SetAzureCredentials(ctx context.Context, userID uuid.UUID, clientID, clientSecret string) error
}

// User handles the authenticated user endpoints.
type User struct {
	service        UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{service: service, contextManager: contextManager, logger: logger}
}

func (h *User) caller(r *http.Request) (model.User, error) {
	user, ok := h.contextManager.UserFromContext(r.Context())
	if !ok {
		return model.User{}, authfail.MissingCredentials()
	}
	return user, nil
}

type userResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsAdmin    bool      `json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		IsAdmin:    user.IsAdmin,
		CreatedAt:  user.CreatedAt,
		LastActive: user.LastActive,
	}
}

// Me returns the caller's own profile.
func (h *User) Me(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}
	return httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// List returns all accounts. Admin gating happens in middleware.
func (h *User) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.service.List(r.Context())
	if err != nil {
		return err
	}

	response := make([]userResponse, 0, len(users))
	for _, user := range users {
		response = append(response, toUserResponse(user))
	}
	return httputil.WriteJSON(w, http.StatusOK, response)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdatePassword replaces the caller's password.
func (h *User) UpdatePassword(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return httputil.NewError(http.StatusUnprocessableEntity, "malformed request body")
	}
	if req.NewPassword == "" {
		return httputil.NewError(http.StatusUnprocessableEntity, "new password must not be empty")
	}

	if err := h.service.UpdatePassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return httputil.NewError(http.StatusBadRequest, "Current password is incorrect")
		}
		return err
	}

	return httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

type providerStatus struct {
	HasCredentials bool       `json:"has_credentials"`
	CreatedAt      *time.Time `json:"created_at"`
}

type secretsResponse struct {
	AWS   providerStatus `json:"aws"`
	Azure providerStatus `json:"azure"`
}

// Secrets reports which cloud credentials the caller has stored. The
// credential values themselves are never returned.
func (h *User) Secrets(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}

	secret, err := h.service.Secrets(r.Context(), user.ID)
	if err != nil {
		return err
	}

	return httputil.WriteJSON(w, http.StatusOK, secretsResponse{
		AWS:   providerStatus{HasCredentials: secret.HasAWS(), CreatedAt: secret.AWSCreatedAt},
		Azure: providerStatus{HasCredentials: secret.HasAzure(), CreatedAt: secret.AzureCreatedAt},
	})
}

type awsCredentialsRequest struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

// SetAWSCredentials upserts the caller's AWS key pair.
func (h *User) SetAWSCredentials(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}

	var req awsCredentialsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return httputil.NewError(http.StatusUnprocessableEntity, "malformed request body")
	}
	if req.AccessKey == "" || req.SecretKey == "" {
		return httputil.NewError(http.StatusUnprocessableEntity, "access_key and secret_key are required")
	}

	if err := h.service.SetAWSCredentials(r.Context(), user.ID, req.AccessKey, req.SecretKey); err != nil {
		return err
	}

	return httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "AWS credentials updated successfully"})
}

type azureCredentialsRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// SetAzureCredentials upserts the caller's Azure service principal pair.
func (h *User) SetAzureCredentials(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}

	var req azureCredentialsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return httputil.NewError(http.StatusUnprocessableEntity, "malformed request body")
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		return httputil.NewError(http.StatusUnprocessableEntity, "client_id and client_secret are required")
	}

	if err := h.service.SetAzureCredentials(r.Context(), user.ID, req.ClientID, req.ClientSecret); err != nil {
		return err
	}

	return httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Azure credentials updated successfully"})
}
