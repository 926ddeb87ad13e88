package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
	"github.com/OpenLabsEx/API/internal/validate"
)

// ValidationError reports a template document that failed structural
// validation. The message is safe to return to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

var supportedProviders = map[string]bool{
	"aws":   true,
	"azure": true,
}

// Template stores and retrieves the range, VPC, subnet and host template
// hierarchy. Non-admin callers only see rows they own.
type Template struct {
	templates model.TemplateStore
	logger    *logger.Logger

	now func() time.Time
}

func NewTemplate(templates model.TemplateStore, logger *logger.Logger) *Template {
	return &Template{
		templates: templates,
		now:       time.Now,
		logger:    logger,
	}
}

// Create validates the document for the given kind and persists it under
// the caller's ownership.
func (s *Template) Create(ctx context.Context, owner model.User, kind model.TemplateKind, doc json.RawMessage) (model.Template, error) {
	name, err := validateDoc(kind, doc)
	if err != nil {
		return model.Template{}, err
	}

	template, err := s.templates.Create(ctx, model.Template{
		ID:        uuid.New(),
		UserID:    owner.ID,
		Kind:      kind,
		Name:      name,
		Doc:       doc,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("template service: failed to create template",
			"kind", string(kind),
			"user_id", owner.ID.String(),
			"error", err.Error())
		return model.Template{}, fmt.Errorf("failed to create template: %w", err)
	}

	s.logger.Debug("template service: template created",
		"kind", string(kind),
		"template_id", template.ID.String())

	return template, nil
}

// Get returns one template by ID. Admins bypass the ownership filter.
func (s *Template) Get(ctx context.Context, caller model.User, kind model.TemplateKind, id uuid.UUID) (model.Template, error) {
	var owner *uuid.UUID
	if !caller.IsAdmin {
		owner = &caller.ID
	}

	template, err := s.templates.Get(ctx, kind, id, owner)
	if err != nil {
		return model.Template{}, err
	}
	return template, nil
}

// Headers lists the caller's templates of one kind as ID and name pairs.
// Unlike Get, the listing never widens for admins.
func (s *Template) Headers(ctx context.Context, caller model.User, kind model.TemplateKind) ([]model.TemplateHeader, error) {
	headers, err := s.templates.Headers(ctx, kind, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return headers, nil
}

func validateDoc(kind model.TemplateKind, doc json.RawMessage) (name string, err error) {
	switch kind {
	case model.TemplateHost:
		var host model.HostDoc
		if err := json.Unmarshal(doc, &host); err != nil {
			return "", invalid("malformed host template: %v", err)
		}
		return host.Hostname, validateHost(host)
	case model.TemplateSubnet:
		var subnet model.SubnetDoc
		if err := json.Unmarshal(doc, &subnet); err != nil {
			return "", invalid("malformed subnet template: %v", err)
		}
		return subnet.Name, validateSubnet(subnet)
	case model.TemplateVPC:
		var vpc model.VPCDoc
		if err := json.Unmarshal(doc, &vpc); err != nil {
			return "", invalid("malformed vpc template: %v", err)
		}
		return vpc.Name, validateVPC(vpc)
	case model.TemplateRange:
		var rng model.RangeDoc
		if err := json.Unmarshal(doc, &rng); err != nil {
			return "", invalid("malformed range template: %v", err)
		}
		return rng.Name, validateRange(rng)
	default:
		return "", invalid("unknown template kind %q", string(kind))
	}
}

func validateHost(host model.HostDoc) error {
	if !validate.IsValidHostname(host.Hostname) {
		return invalid("hostname %q is not a valid RFC1035 hostname", host.Hostname)
	}
	if host.Size <= 0 {
		return invalid("host %q disk size must be positive", host.Hostname)
	}
	if len(host.Tags) == 0 {
		return invalid("host %q must carry at least one tag", host.Hostname)
	}
	return nil
}

func validateSubnet(subnet model.SubnetDoc) error {
	if subnet.Name == "" {
		return invalid("subnet name must not be empty")
	}
	if !validate.IsValidIPv4CIDR(subnet.CIDR) {
		return invalid("subnet %q CIDR %q is not a valid IPv4 CIDR", subnet.Name, subnet.CIDR)
	}
	for _, host := range subnet.Hosts {
		if err := validateHost(host); err != nil {
			return err
		}
	}
	return nil
}

func validateVPC(vpc model.VPCDoc) error {
	if vpc.Name == "" {
		return invalid("vpc name must not be empty")
	}
	if !validate.IsValidIPv4CIDR(vpc.CIDR) {
		return invalid("vpc %q CIDR %q is not a valid IPv4 CIDR", vpc.Name, vpc.CIDR)
	}
	for _, subnet := range vpc.Subnets {
		if err := validateSubnet(subnet); err != nil {
			return err
		}
	}
	return nil
}

func validateRange(rng model.RangeDoc) error {
	if rng.Name == "" {
		return invalid("range name must not be empty")
	}
	if !supportedProviders[rng.Provider] {
		return invalid("provider %q is not supported", rng.Provider)
	}
	if len(rng.VPCs) == 0 {
		return invalid("range %q must contain at least one vpc", rng.Name)
	}
	for _, vpc := range rng.VPCs {
		if err := validateVPC(vpc); err != nil {
			return err
		}
	}
	return nil
}
