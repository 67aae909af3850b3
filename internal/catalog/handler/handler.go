// Package handler exposes the catalog HTTP endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"intake_gateway/internal/catalog/service"
	"intake_gateway/internal/catalog/transport"
	"intake_gateway/platform/httpkit"
)

// Handler serves catalogue reads.
type Handler struct {
	svc *service.Service
}

// New creates a catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListServiceOptions returns the selectable service types and add-ons.
func (h *Handler) ListServiceOptions(c *gin.Context) {
	cat, err := h.svc.Options(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCatalogue(cat))
}
