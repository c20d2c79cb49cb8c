package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comunidad/backend/internal/application/funeral"
)

// FuneralPlanHandler exposes the funeral plan catalog endpoints
type FuneralPlanHandler struct {
	BaseHandler
	planService *funeral.PlanService
}

// NewFuneralPlanHandler creates a new funeral plan handler
func NewFuneralPlanHandler(planService *funeral.PlanService, logger *zap.Logger) *FuneralPlanHandler {
	return &FuneralPlanHandler{
		BaseHandler: NewBaseHandler(logger),
		planService: planService,
	}
}

// Create registers a new funeral plan
// POST /api/v1/funeral/plans
func (h *FuneralPlanHandler) Create(c *gin.Context) {
	var req funeral.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// Get returns one funeral plan
// GET /api/v1/funeral/plans/:id
func (h *FuneralPlanHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	plan, err := h.planService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

type listPlansRequest struct {
	Active *bool `form:"active"`
}

// List returns the funeral plan catalog, optionally only active plans
// GET /api/v1/funeral/plans
func (h *FuneralPlanHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	var req listPlansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Active != nil {
		filter.Filters["active"] = *req.Active
	}

	plans, err := h.planService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plans)
}

// UpdatePricing changes a plan's price and installment count. Existing
// enrollments keep the terms they joined under.
// PUT /api/v1/funeral/plans/:id/pricing
func (h *FuneralPlanHandler) UpdatePricing(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req funeral.UpdatePlanPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.UpdatePricing(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Deactivate closes a plan to new enrollments
// POST /api/v1/funeral/plans/:id/deactivate
func (h *FuneralPlanHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	plan, err := h.planService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Delete removes a plan with no enrolled clients
// DELETE /api/v1/funeral/plans/:id
func (h *FuneralPlanHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
