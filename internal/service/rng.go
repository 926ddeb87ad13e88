package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
)

// ErrNoCredentials is returned when a deployment targets a provider the
// user has no stored credentials for.
var ErrNoCredentials = errors.New("no credentials configured for provider")

const stateFileName = "terraform.tfstate"

// Range deploys range templates and lists the resulting deployed-range
// records. Provisioning itself is delegated to a Deployer; this service
// owns the record and the state artifact.
type Range struct {
	templates model.TemplateStore
	ranges    model.RangeStore
	secrets   model.SecretStore
	storage   model.Storage
	deployer  model.Deployer
	logger    *logger.Logger

	now func() time.Time
}

func NewRange(
	templates model.TemplateStore,
	ranges model.RangeStore,
	secrets model.SecretStore,
	storage model.Storage,
	deployer model.Deployer,
	logger *logger.Logger,
) *Range {
	return &Range{
		templates: templates,
		ranges:    ranges,
		secrets:   secrets,
		storage:   storage,
		deployer:  deployer,
		logger:    logger,
		now:       time.Now,
	}
}

// Deploy provisions the range described by an owned range template, uploads
// the resulting state file keyed by the new deployment ID and persists the
// deployed-range record with a snapshot of the template document.
func (s *Range) Deploy(ctx context.Context, caller model.User, templateID uuid.UUID) (model.DeployedRange, error) {
	var owner *uuid.UUID
	if !caller.IsAdmin {
		owner = &caller.ID
	}

	template, err := s.templates.Get(ctx, model.TemplateRange, templateID, owner)
	if err != nil {
		return model.DeployedRange{}, err
	}

	var doc model.RangeDoc
	if err := json.Unmarshal(template.Doc, &doc); err != nil {
		return model.DeployedRange{}, fmt.Errorf("failed to decode range template: %w", err)
	}

	if err := s.checkCredentials(ctx, caller.ID, doc.Provider); err != nil {
		return model.DeployedRange{}, err
	}

	deployID := uuid.New()

	state, err := s.deployer.Deploy(ctx, doc, deployID)
	if err != nil {
		s.logger.Error("range service: deployment failed",
			"template_id", template.ID.String(),
			"deploy_id", deployID.String(),
			"error", err.Error())
		return model.DeployedRange{}, fmt.Errorf("failed to deploy range: %w", err)
	}

	stateKey := path.Join("ranges", deployID.String(), stateFileName)
	if err := s.storage.Upload(ctx, stateKey, bytes.NewReader(state)); err != nil {
		s.logger.Error("range service: failed to upload state artifact",
			"deploy_id", deployID.String(),
			"error", err.Error())
		return model.DeployedRange{}, fmt.Errorf("failed to upload state artifact: %w", err)
	}

	deployed, err := s.ranges.Create(ctx, model.DeployedRange{
		ID:         deployID,
		UserID:     caller.ID,
		TemplateID: template.ID,
		Name:       doc.Name,
		Provider:   doc.Provider,
		State:      model.RangeStateOn,
		Template:   template.Doc,
		StateKey:   stateKey,
		DeployedAt: s.now().UTC(),
	})
	if err != nil {
		return model.DeployedRange{}, fmt.Errorf("failed to create deployed range: %w", err)
	}

	s.logger.Info("range service: range deployed",
		"deploy_id", deployed.ID.String(),
		"provider", deployed.Provider)

	return deployed, nil
}

// List returns the caller's deployed ranges.
func (s *Range) List(ctx context.Context, userID uuid.UUID) ([]model.DeployedRange, error) {
	deployed, err := s.ranges.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployed ranges: %w", err)
	}
	return deployed, nil
}

func (s *Range) checkCredentials(ctx context.Context, userID uuid.UUID, provider string) error {
	secret, err := s.secrets.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get secrets: %w", err)
	}

	switch provider {
	case "aws":
		if !secret.HasAWS() {
			return ErrNoCredentials
		}
	case "azure":
		if !secret.HasAzure() {
			return ErrNoCredentials
		}
	default:
		return ErrNoCredentials
	}

	return nil
}
