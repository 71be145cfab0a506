package handler

import (
	"net/http"

	"qualifica_backend/internal/booking/service"
	"qualifica_backend/internal/booking/transport"
	"qualifica_backend/platform/httpkit"
	"qualifica_backend/platform/validator"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// Handler exposes the public booking endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts booking routes under /public/agendamento.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:token", h.GetLink)
	rg.POST("/:token/confirmar", h.Confirm)
	rg.GET("/:token/qr", h.QRCode)
}

// GetLink returns public display data for a scheduling link.
func (h *Handler) GetLink(c *gin.Context) {
	info, err := h.svc.GetLink(c.Request.Context(), c.Param("token"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, info)
}

// Confirm books a slot through a scheduling link.
func (h *Handler) Confirm(c *gin.Context) {
	var req transport.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid input", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := h.svc.Confirm(c.Request.Context(), c.Param("token"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// QRCode renders the booking URL as a PNG QR code. The link is validated
// first so consumed or unknown tokens do not produce scannable codes.
func (h *Handler) QRCode(c *gin.Context) {
	token := c.Param("token")
	if _, err := h.svc.GetLink(c.Request.Context(), token); httpkit.HandleError(c, err) {
		return
	}

	png, err := qrcode.Encode(h.svc.BookingURL(token), qrcode.Medium, qrImageSize)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "Failed to render QR code", nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
