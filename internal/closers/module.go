// Package closers provides closer administration: the roster of sales agents
// that qualified leads can be routed to.
package closers

import (
	"qualifica_backend/internal/closers/handler"
	"qualifica_backend/internal/closers/repository"
	"qualifica_backend/internal/closers/service"
	apphttp "qualifica_backend/internal/http"
	"qualifica_backend/platform/db"
	"qualifica_backend/platform/logger"
	"qualifica_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(pools *db.Pools, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pools.Restricted)
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc, val),
	}
}

func (m *Module) Name() string { return "closers" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/closers"))
}
