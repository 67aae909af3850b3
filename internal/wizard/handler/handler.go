// Package handler exposes the wizard HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intake_gateway/internal/wizard/service"
	"intake_gateway/internal/wizard/transport"
	"intake_gateway/platform/httpkit"
	"intake_gateway/platform/validator"
)

// Handler serves the wizard API.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a wizard handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Start mounts a new wizard session on the first step.
func (h *Handler) Start(c *gin.Context) {
	res, err := h.svc.Start(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.FromResult(res))
}

// Get returns the session with its derived read-models.
func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromResult(res))
}

// Dispatch applies one action to the session.
func (h *Handler) Dispatch(c *gin.Context) {
	var req transport.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	action, err := req.ToAction()
	if httpkit.HandleError(c, err) {
		return
	}

	res, err := h.svc.Dispatch(c.Request.Context(), c.Param("id"), action)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromResult(res))
}
