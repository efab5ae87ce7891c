// Package leads wires lead capture, scoring and listing into the API.
package leads

import (
	"fmt"

	"lead_qualification_backend/internal/events"
	apphttp "lead_qualification_backend/internal/http"
	"lead_qualification_backend/internal/leads/handler"
	"lead_qualification_backend/internal/leads/management"
	"lead_qualification_backend/internal/leads/transport"
	"lead_qualification_backend/platform/logger"
	"lead_qualification_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

// NewModule registers the leadsource rule on val and builds the handler.
// The caller picks the storage backend.
func NewModule(repo management.Repository, eventBus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if err := transport.RegisterValidations(val); err != nil {
		return nil, fmt.Errorf("register lead validations: %w", err)
	}

	return &Module{handler: handler.New(management.New(repo, eventBus, log), val)}, nil
}

func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes puts POST /score on the open group and everything that
// touches stored leads under /leads on the protected one.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1)
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

var _ apphttp.Module = (*Module)(nil)
