package handler

import (
	"net/http"

	"qualifica_backend/internal/qualification/transport"
	"qualifica_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes mounts the scoring configuration endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/configuracao", h.GetScoringConfig)
	rg.PUT("/configuracao", h.ReplaceScoringConfig)
}

// GetScoringConfig returns the caller tenant's active rule set.
func (h *Handler) GetScoringConfig(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing tenant", nil)
		return
	}

	result, err := h.svc.GetScoringConfig(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ReplaceScoringConfig activates a new rule set for the caller's tenant.
func (h *Handler) ReplaceScoringConfig(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing tenant", nil)
		return
	}

	var req transport.ScoringConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInput, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInput, err.Error())
		return
	}

	result, err := h.svc.ReplaceScoringConfig(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
