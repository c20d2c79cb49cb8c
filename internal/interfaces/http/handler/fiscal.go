package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comunidad/backend/internal/application/fiscal"
)

// FiscalHandler exposes the fiscal configuration endpoints. These are
// admin-only; the router enforces that.
type FiscalHandler struct {
	BaseHandler
	settingsService *fiscal.SettingsService
}

// NewFiscalHandler creates a new fiscal handler
func NewFiscalHandler(settingsService *fiscal.SettingsService, logger *zap.Logger) *FiscalHandler {
	return &FiscalHandler{
		BaseHandler:     NewBaseHandler(logger),
		settingsService: settingsService,
	}
}

// Get returns the fiscal configuration
// GET /api/v1/fiscal/settings
func (h *FiscalHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// Update changes fiscal configuration fields
// PUT /api/v1/fiscal/settings
func (h *FiscalHandler) Update(c *gin.Context) {
	var req fiscal.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// NextInvoiceNumber consumes and returns the next invoice number
// POST /api/v1/fiscal/invoice-number
func (h *FiscalHandler) NextInvoiceNumber(c *gin.Context) {
	number, err := h.settingsService.NextInvoiceNumber(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"invoice_number": number})
}

type prepareLogoUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// PrepareLogoUpload returns a presigned URL for uploading the business
// logo directly to object storage
// POST /api/v1/fiscal/logo/upload-url
func (h *FiscalHandler) PrepareLogoUpload(c *gin.Context) {
	var req prepareLogoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "content_type is required")
		return
	}

	result, err := h.settingsService.PrepareLogoUpload(c.Request.Context(), req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

type confirmLogoUploadRequest struct {
	ObjectKey string `json:"object_key" binding:"required"`
}

// ConfirmLogoUpload records the uploaded logo after verifying the object
// exists in storage
// POST /api/v1/fiscal/logo/confirm
func (h *FiscalHandler) ConfirmLogoUpload(c *gin.Context) {
	var req confirmLogoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "object_key is required")
		return
	}

	settings, err := h.settingsService.ConfirmLogoUpload(c.Request.Context(), req.ObjectKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// LogoURL returns a presigned download URL for the stored logo
// GET /api/v1/fiscal/logo
func (h *FiscalHandler) LogoURL(c *gin.Context) {
	result, err := h.settingsService.GetLogoURL(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
