// Package qualification provides the lead qualification bounded context:
// public intake, scoring, closer routing and scheduling-link provisioning.
package qualification

import (
	"qualifica_backend/internal/events"
	apphttp "qualifica_backend/internal/http"
	"qualifica_backend/internal/qualification/handler"
	"qualifica_backend/internal/qualification/repository"
	"qualifica_backend/internal/qualification/service"
	"qualifica_backend/platform/config"
	"qualifica_backend/platform/db"
	"qualifica_backend/platform/logger"
	"qualifica_backend/platform/validator"
)

// Module is the qualification bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	intake  *repository.Repository
}

// NewModule wires the qualification module. The restricted pool serves intake
// and lookups; the trusted pool serves the elevated assignment/link writes.
func NewModule(pools *db.Pools, bus events.Bus, val *validator.Validator, cfg config.QualificationConfig, log *logger.Logger) *Module {
	intake := repository.New(pools.Restricted)
	trusted := repository.New(pools.Trusted)

	svc := service.New(intake, trusted, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, intake: intake}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "qualification"
}

// Service returns the qualification service for external use (CLI backfills).
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the intake repository, used for health checks.
func (m *Module) Repository() *repository.Repository {
	return m.intake
}

// RegisterRoutes mounts qualification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.Public)
	m.handler.RegisterProtectedRoutes(ctx.Protected)
	m.handler.RegisterAdminRoutes(ctx.Protected.Group("/scoring"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
