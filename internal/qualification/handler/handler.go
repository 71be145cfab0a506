package handler

import (
	"net/http"

	"qualifica_backend/internal/qualification/service"
	"qualifica_backend/internal/qualification/transport"
	"qualifica_backend/platform/httpkit"
	"qualifica_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidInput   = "Invalid input"
	msgInvalidRequest = "Invalid request"
)

// Handler exposes the qualification endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublicRoutes mounts the unauthenticated intake endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/qualificacao", h.Qualify)
}

// RegisterProtectedRoutes mounts the authenticated re-qualification endpoint.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/qualificacao/:leadId/reprocessar", h.Requalify)
}

// Qualify handles a public qualification submission.
func (h *Handler) Qualify(c *gin.Context) {
	var req transport.QualificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInput, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInput, err.Error())
		return
	}

	result, err := h.svc.Qualify(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Requalify re-runs qualification for an existing lead of the caller's tenant.
func (h *Handler) Requalify(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing tenant", nil)
		return
	}

	result, err := h.svc.Requalify(c.Request.Context(), leadID, tenantID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
