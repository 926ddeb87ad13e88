package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
)

// DryRunDeployer is the default Deployer. It does not touch any cloud
// account; it renders a terraform-shaped state document describing the
// requested topology so the rest of the pipeline (record, artifact upload,
// listing) behaves exactly as it would with a real provisioner.
type DryRunDeployer struct {
	logger *logger.Logger
}

func NewDryRunDeployer(logger *logger.Logger) *DryRunDeployer {
	return &DryRunDeployer{logger: logger}
}

var _ model.Deployer = (*DryRunDeployer)(nil)

func (d *DryRunDeployer) Deploy(_ context.Context, doc model.RangeDoc, deployID uuid.UUID) ([]byte, error) {
	hosts := 0
	subnets := 0
	for _, vpc := range doc.VPCs {
		subnets += len(vpc.Subnets)
		for _, subnet := range vpc.Subnets {
			hosts += len(subnet.Hosts)
		}
	}

	d.logger.Info("dry-run deployer: rendering state",
		"deploy_id", deployID.String(),
		"provider", doc.Provider,
		"vpcs", len(doc.VPCs),
		"subnets", subnets,
		"hosts", hosts)

	state := map[string]any{
		"version": 4,
		"lineage": deployID.String(),
		"serial":  1,
		"outputs": map[string]any{
			"range_name": map[string]any{"value": doc.Name, "type": "string"},
			"provider":   map[string]any{"value": doc.Provider, "type": "string"},
		},
		"resources": []any{},
	}

	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to render state document: %w", err)
	}
	return data, nil
}
