package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appresident "github.com/comunidad/backend/internal/application/resident"
)

// TokenHandler exposes the access token endpoints
type TokenHandler struct {
	BaseHandler
	tokenService *appresident.TokenService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(tokenService *appresident.TokenService, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		BaseHandler:  NewBaseHandler(logger),
		tokenService: tokenService,
	}
}

// Create issues a new access token for a resident. The token starts out
// mirroring the resident's current payment state.
// POST /api/v1/tokens
func (h *TokenHandler) Create(c *gin.Context) {
	var req appresident.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	token, err := h.tokenService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, token)
}

// ListByResident returns a resident's access tokens
// GET /api/v1/residents/:id/tokens
func (h *TokenHandler) ListByResident(c *gin.Context) {
	residentID, ok := h.parseID(c)
	if !ok {
		return
	}

	tokens, err := h.tokenService.ListByResident(c.Request.Context(), residentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tokens)
}

// Activate enables an access token
// POST /api/v1/tokens/:id/activate
func (h *TokenHandler) Activate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	token, err := h.tokenService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, token)
}

// Deactivate disables an access token
// POST /api/v1/tokens/:id/deactivate
func (h *TokenHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	token, err := h.tokenService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, token)
}

// Delete removes an access token
// DELETE /api/v1/tokens/:id
func (h *TokenHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.tokenService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
