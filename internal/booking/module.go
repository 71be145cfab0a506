// Package booking provides the public booking bounded context: resolving
// scheduling links, confirming slots and rendering QR codes.
package booking

import (
	"qualifica_backend/internal/booking/handler"
	"qualifica_backend/internal/booking/repository"
	"qualifica_backend/internal/booking/service"
	"qualifica_backend/internal/events"
	apphttp "qualifica_backend/internal/http"
	"qualifica_backend/internal/scheduler"
	"qualifica_backend/platform/config"
	"qualifica_backend/platform/db"
	"qualifica_backend/platform/logger"
	"qualifica_backend/platform/validator"
)

// Module is the booking bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the booking module. Booking always runs on the trusted
// pool: visitors confirming a slot own neither the link nor the lead.
func NewModule(pools *db.Pools, reminders scheduler.ReminderScheduler, bus events.Bus, val *validator.Validator, cfg config.BookingConfig, log *logger.Logger) *Module {
	repo := repository.New(pools.Trusted)
	svc := service.New(repo, reminders, cfg, bus, log)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "booking"
}

// RegisterRoutes mounts booking routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Public.Group("/agendamento"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
