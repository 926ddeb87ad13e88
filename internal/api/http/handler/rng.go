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
	"github.com/OpenLabsEx/API/internal/validate"
)

// RangeService defines deployment operations.
type RangeService interface {
	Deploy(ctx context.Context, caller model.User, templateID uuid.UUID) (model.DeployedRange, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.DeployedRange, error)
}

// Range handles the deployed-range endpoints.
type Range struct {
	service        RangeService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRange creates a new Range handler.
func NewRange(service RangeService, contextManager model.ContextManager, logger *logger.Logger) *Range {
	return &Range{service: service, contextManager: contextManager, logger: logger}
}

func (h *Range) caller(r *http.Request) (model.User, error) {
	user, ok := h.contextManager.UserFromContext(r.Context())
	if !ok {
		return model.User{}, authfail.MissingCredentials()
	}
	return user, nil
}

type deployRequest struct {
	TemplateID string `json:"template_id"`
}

type deployedRangeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Provider   string    `json:"provider"`
	State      string    `json:"state"`
	DeployedAt time.Time `json:"deployed_at"`
}

func toDeployedRangeResponse(deployed model.DeployedRange) deployedRangeResponse {
	return deployedRangeResponse{
		ID:         deployed.ID.String(),
		Name:       deployed.Name,
		Provider:   deployed.Provider,
		State:      string(deployed.State),
		DeployedAt: deployed.DeployedAt,
	}
}

// Deploy provisions an owned range template and records the deployment.
func (h *Range) Deploy(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}

	var req deployRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return httputil.NewError(http.StatusUnprocessableEntity, "malformed request body")
	}
	if !validate.IsValidUUID4(req.TemplateID) {
		return httputil.NewError(http.StatusBadRequest, "ID provided is not a valid UUID4.")
	}
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		return httputil.NewError(http.StatusBadRequest, "ID provided is not a valid UUID4.")
	}

	deployed, err := h.service.Deploy(r.Context(), user, templateID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return httputil.NewError(http.StatusNotFound,
				"Unable to find range template with provided ID!")
		case errors.Is(err, service.ErrNoCredentials):
			return httputil.NewError(http.StatusNotFound,
				"No credentials found for the range's provider!")
		}
		h.logger.Error("range handler: deployment failed",
			"template_id", templateID.String(),
			"error", err.Error())
		return err
	}

	return httputil.WriteJSON(w, http.StatusCreated, toDeployedRangeResponse(deployed))
}

// List returns the caller's deployed ranges.
func (h *Range) List(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}

	deployed, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		return err
	}
	if len(deployed) == 0 {
		return httputil.NewError(http.StatusNotFound, "Unable to find any deployed ranges!")
	}

	response := make([]deployedRangeResponse, 0, len(deployed))
	for _, d := range deployed {
		response = append(response, toDeployedRangeResponse(d))
	}
	return httputil.WriteJSON(w, http.StatusOK, response)
}
