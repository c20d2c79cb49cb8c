package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comunidad/backend/internal/application/billing"
	appresident "github.com/comunidad/backend/internal/application/resident"
	"github.com/comunidad/backend/internal/interfaces/http/dto"
)

// ResidentHandler exposes the resident registry endpoints
type ResidentHandler struct {
	BaseHandler
	residentService *appresident.ResidentService
	dunningService  *billing.DunningService
}

// NewResidentHandler creates a new resident handler
func NewResidentHandler(
	residentService *appresident.ResidentService,
	dunningService *billing.DunningService,
	logger *zap.Logger,
) *ResidentHandler {
	return &ResidentHandler{
		BaseHandler:     NewBaseHandler(logger),
		residentService: residentService,
		dunningService:  dunningService,
	}
}

// Create registers a new resident
// POST /api/v1/residents
func (h *ResidentHandler) Create(c *gin.Context) {
	var req appresident.CreateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	res, err := h.residentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, res)
}

// Get returns one resident
// GET /api/v1/residents/:id
func (h *ResidentHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	res, err := h.residentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, res)
}

type listResidentsRequest struct {
	State string `form:"state" binding:"omitempty,oneof=pending paid overdue late delinquent"`
}

// List returns a paginated resident listing, optionally filtered by
// payment state. state=delinquent matches both overdue and late.
// GET /api/v1/residents
func (h *ResidentHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	var req listResidentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.residentService.List(c.Request.Context(), req.State, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, dto.NewMeta(result.Total, result.Page, result.PageSize))
}

// Update changes a resident's name or contact details
// PUT /api/v1/residents/:id
func (h *ResidentHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appresident.UpdateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	res, err := h.residentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, res)
}

// Delete removes a resident along with their payments, tokens and
// notification log
// DELETE /api/v1/residents/:id
func (h *ResidentHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.residentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Notifications lists the messages sent to a resident, newest first
// GET /api/v1/residents/:id/notifications
func (h *ResidentHandler) Notifications(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	entries, err := h.dunningService.NotificationHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
