package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comunidad/backend/internal/application/funeral"
)

// CasketHandler exposes the casket inventory endpoints
type CasketHandler struct {
	BaseHandler
	casketService *funeral.CasketService
}

// NewCasketHandler creates a new casket handler
func NewCasketHandler(casketService *funeral.CasketService, logger *zap.Logger) *CasketHandler {
	return &CasketHandler{
		BaseHandler:   NewBaseHandler(logger),
		casketService: casketService,
	}
}

// Create registers a casket model
// POST /api/v1/funeral/caskets
func (h *CasketHandler) Create(c *gin.Context) {
	var req funeral.CreateCasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	casket, err := h.casketService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, casket)
}

// Get returns one casket model
// GET /api/v1/funeral/caskets/:id
func (h *CasketHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	casket, err := h.casketService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, casket)
}

type listCasketsRequest struct {
	InStock *bool `form:"in_stock"`
}

// List returns the casket inventory
// GET /api/v1/funeral/caskets
func (h *CasketHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	var req listCasketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.InStock != nil {
		filter.Filters["in_stock"] = *req.InStock
	}

	caskets, err := h.casketService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, caskets)
}

// AdjustStock applies a delta to a casket's stock. Stock never goes
// negative.
// POST /api/v1/funeral/caskets/:id/adjust-stock
func (h *CasketHandler) AdjustStock(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req funeral.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	casket, err := h.casketService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, casket)
}

// Delete removes a casket model
// DELETE /api/v1/funeral/caskets/:id
func (h *CasketHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.casketService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
