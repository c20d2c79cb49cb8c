package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comunidad/backend/internal/application/funeral"
	"github.com/comunidad/backend/internal/interfaces/http/dto"
)

// FuneralClientHandler exposes the funeral client enrollment endpoints
type FuneralClientHandler struct {
	BaseHandler
	clientService *funeral.ClientService
}

// NewFuneralClientHandler creates a new funeral client handler
func NewFuneralClientHandler(clientService *funeral.ClientService, logger *zap.Logger) *FuneralClientHandler {
	return &FuneralClientHandler{
		BaseHandler:   NewBaseHandler(logger),
		clientService: clientService,
	}
}

// Create enrolls a client into a funeral plan
// POST /api/v1/funeral/clients
func (h *FuneralClientHandler) Create(c *gin.Context) {
	var req funeral.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// Get returns one enrolled client
// GET /api/v1/funeral/clients/:id
func (h *FuneralClientHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

type listClientsRequest struct {
	PlanID string `form:"plan_id" binding:"omitempty,uuid"`
}

// List returns a paginated client listing, optionally by plan
// GET /api/v1/funeral/clients
func (h *FuneralClientHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	var req listClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var planID *uuid.UUID
	if req.PlanID != "" {
		id, err := uuid.Parse(req.PlanID)
		if err != nil {
			h.BadRequest(c, "Invalid plan_id format")
			return
		}
		planID = &id
	}

	result, err := h.clientService.List(c.Request.Context(), planID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, dto.NewMeta(result.Total, result.Page, result.PageSize))
}

type switchPlanRequest struct {
	PlanID uuid.UUID `json:"plan_id" binding:"required"`
}

// SwitchPlan moves a client to another active plan
// POST /api/v1/funeral/clients/:id/switch-plan
func (h *FuneralClientHandler) SwitchPlan(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req switchPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.SwitchPlan(c.Request.Context(), id, req.PlanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Cancel ends a client's enrollment, keeping the record
// POST /api/v1/funeral/clients/:id/cancel
func (h *FuneralClientHandler) Cancel(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	client, err := h.clientService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete removes a client record
// DELETE /api/v1/funeral/clients/:id
func (h *FuneralClientHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
