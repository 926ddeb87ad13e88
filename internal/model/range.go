package model

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RangeState is the lifecycle state of a deployed range.
type RangeState string

const (
	RangeStateOn    RangeState = "on"
	RangeStateOff   RangeState = "off"
	RangeStateStart RangeState = "start"
	RangeStateStop  RangeState = "stop"
)

// RangeStore persists deployed-range records.
type RangeStore interface {
	Create(ctx context.Context, deployed DeployedRange) (DeployedRange, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]DeployedRange, error)
}

// DeployedRange records one deployment of a range template. The terraform
// state artifact lives in object storage under StateKey; the row keeps a
// snapshot of the template document the deployment was built from.
type DeployedRange struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TemplateID uuid.UUID
	Name       string
	Provider   string
	State      RangeState
	Template   json.RawMessage
	StateKey   string
	DeployedAt time.Time
}

// Deployer provisions the infrastructure described by a range template and
// returns the resulting state file. Cloud provisioning itself is an
// external capability.
type Deployer interface {
	Deploy(ctx context.Context, doc RangeDoc, deployID uuid.UUID) (stateFile []byte, err error)
}
