package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/OpenLabsEx/API/internal/api/http/httputil"
	"github.com/OpenLabsEx/API/internal/authfail"
	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
	"github.com/OpenLabsEx/API/internal/service"
	"github.com/OpenLabsEx/API/internal/validate"
)

// KindSlugPattern is the mux path pattern matching the template kind
// segment.
const KindSlugPattern = "{kind:ranges|vpcs|subnets|hosts}"

// kindBySlug maps URL path segments to template kinds.
var kindBySlug = map[string]model.TemplateKind{
	"ranges":  model.TemplateRange,
	"vpcs":    model.TemplateVPC,
	"subnets": model.TemplateSubnet,
	"hosts":   model.TemplateHost,
}

// TemplateService defines template CRUD operations.
type TemplateService interface {
	Create(ctx context.Context, owner model.User, kind model.TemplateKind, doc json.RawMessage) (model.Template, error)
	Get(ctx context.Context, caller model.User, kind model.TemplateKind, id uuid.UUID) (model.Template, error)
	Headers(ctx context.Context, caller model.User, kind model.TemplateKind) ([]model.TemplateHeader, error)
}

// Template handles the template hierarchy endpoints. All routes are
// authenticated; ownership scoping happens in the service.
type Template struct {
	service        TemplateService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTemplate creates a new Template handler.
func NewTemplate(service TemplateService, contextManager model.ContextManager, logger *logger.Logger) *Template {
	return &Template{service: service, contextManager: contextManager, logger: logger}
}

func (h *Template) caller(r *http.Request) (model.User, error) {
	user, ok := h.contextManager.UserFromContext(r.Context())
	if !ok {
		return model.User{}, authfail.MissingCredentials()
	}
	return user, nil
}

func pathKind(r *http.Request) (model.TemplateKind, error) {
	slug := mux.Vars(r)["kind"]
	kind, ok := kindBySlug[slug]
	if !ok {
		return "", httputil.NewError(http.StatusNotFound, "Unknown template kind!")
	}
	return kind, nil
}

type templateHeaderResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns ID and name pairs for the caller's templates of one kind.
func (h *Template) List(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}
	kind, err := pathKind(r)
	if err != nil {
		return err
	}

	headers, err := h.service.Headers(r.Context(), user, kind)
	if err != nil {
		return err
	}
	if len(headers) == 0 {
		return httputil.NewError(http.StatusNotFound,
			fmt.Sprintf("Unable to find any %s templates that you own!", kind))
	}

	response := make([]templateHeaderResponse, 0, len(headers))
	for _, header := range headers {
		response = append(response, templateHeaderResponse{ID: header.ID.String(), Name: header.Name})
	}
	return httputil.WriteJSON(w, http.StatusOK, response)
}

// Get returns one template document with its ID injected. A malformed ID
// is rejected before the store is touched; foreign rows look identical to
// missing ones.
func (h *Template) Get(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}
	kind, err := pathKind(r)
	if err != nil {
		return err
	}

	rawID := mux.Vars(r)["id"]
	if !validate.IsValidUUID4(rawID) {
		return httputil.NewError(http.StatusBadRequest, "ID provided is not a valid UUID4.")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return httputil.NewError(http.StatusBadRequest, "ID provided is not a valid UUID4.")
	}

	template, err := h.service.Get(r.Context(), user, kind, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return httputil.NewError(http.StatusNotFound,
				fmt.Sprintf("Unable to find %s template with provided ID!", kind))
		}
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(template.Doc, &doc); err != nil {
		return fmt.Errorf("failed to decode stored template: %w", err)
	}
	doc["id"] = template.ID.String()

	return httputil.WriteJSON(w, http.StatusOK, doc)
}

type templateCreatedResponse struct {
	ID string `json:"id"`
}

// Create validates and stores a template document under the caller's
// ownership.
func (h *Template) Create(w http.ResponseWriter, r *http.Request) error {
	user, err := h.caller(r)
	if err != nil {
		return err
	}
	kind, err := pathKind(r)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return httputil.NewError(http.StatusUnprocessableEntity, "malformed request body")
	}

	template, err := h.service.Create(r.Context(), user, kind, body)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return httputil.NewError(http.StatusUnprocessableEntity, verr.Msg)
		}
		return err
	}

	return httputil.WriteJSON(w, http.StatusCreated, templateCreatedResponse{ID: template.ID.String()})
}
