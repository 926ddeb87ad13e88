package model

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TemplateKind discriminates the four levels of the template hierarchy.
type TemplateKind string

const (
	TemplateRange  TemplateKind = "range"
	TemplateVPC    TemplateKind = "vpc"
	TemplateSubnet TemplateKind = "subnet"
	TemplateHost   TemplateKind = "host"
)

// TemplateStore persists infrastructure templates. Ownership filtering is
// done in the store with explicit user_id predicates; a nil ownerID skips
// the ownership check.
type TemplateStore interface {
	Create(ctx context.Context, template Template) (Template, error)
	Get(ctx context.Context, kind TemplateKind, id uuid.UUID, ownerID *uuid.UUID) (Template, error)
	Headers(ctx context.Context, kind TemplateKind, ownerID uuid.UUID) ([]TemplateHeader, error)
}

// Template is one stored template document of any kind.
type Template struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      TemplateKind
	Name      string
	Doc       json.RawMessage
	CreatedAt time.Time
}

// TemplateHeader is the list-view projection of a template.
type TemplateHeader struct {
	ID   uuid.UUID
	Name string
}

// HostDoc describes a single machine in a subnet template.
type HostDoc struct {
	Hostname string   `json:"hostname"`
	OS       string   `json:"os"`
	Spec     string   `json:"spec"`
	Size     int      `json:"size"`
	Tags     []string `json:"tags"`
}

// SubnetDoc describes a subnet and its hosts.
type SubnetDoc struct {
	Name  string    `json:"name"`
	CIDR  string    `json:"cidr"`
	Hosts []HostDoc `json:"hosts"`
}

// VPCDoc describes a VPC and its subnets.
type VPCDoc struct {
	Name    string      `json:"name"`
	CIDR    string      `json:"cidr"`
	Subnets []SubnetDoc `json:"subnets"`
}

// RangeDoc is the top-level template document: a named deployment of one or
// more VPCs on a cloud provider.
type RangeDoc struct {
	Name     string   `json:"name"`
	Provider string   `json:"provider"`
	VNC      bool     `json:"vnc"`
	VPN      bool     `json:"vpn"`
	VPCs     []VPCDoc `json:"vpcs"`
}
