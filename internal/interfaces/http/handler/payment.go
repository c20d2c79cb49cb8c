package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comunidad/backend/internal/application/billing"
	"github.com/comunidad/backend/internal/interfaces/http/dto"
)

// PaymentHandler exposes the payment and dunning endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billing.PaymentService
	dunningService *billing.DunningService

	// now is swappable in tests
	now func() time.Time
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	paymentService *billing.PaymentService,
	dunningService *billing.DunningService,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    NewBaseHandler(logger),
		paymentService: paymentService,
		dunningService: dunningService,
		now:            time.Now,
	}
}

// Record registers a monthly payment for a resident. Recording twice for
// the same period is rejected with DUPLICATE_PERIOD.
// POST /api/v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	var req billing.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// Validate marks a recorded payment as verified. Validation is what
// settles the resident and mirrors the paid state onto their tokens.
// POST /api/v1/payments/:id/validate
func (h *PaymentHandler) Validate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.ValidatePayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// Get returns one payment
// GET /api/v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

type listPaymentsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending completed paid overdue"`
}

// List returns a paginated payment listing, optionally by status
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	var req listPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), req.Status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, dto.NewMeta(total, filter.Page, filter.PageSize))
}

// ListByResident returns a resident's payment history
// GET /api/v1/residents/:id/payments
func (h *PaymentHandler) ListByResident(c *gin.Context) {
	residentID, ok := h.parseID(c)
	if !ok {
		return
	}
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListResidentPayments(c.Request.Context(), residentID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// SweepOverdue runs the overdue escalation on demand
// POST /api/v1/payments/sweep-overdue
func (h *PaymentHandler) SweepOverdue(c *gin.Context) {
	result, err := h.dunningService.SweepOverdue(c.Request.Context(), h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SendReminders sends payment reminders to residents whose due date is
// approaching
// POST /api/v1/payments/send-reminders
func (h *PaymentHandler) SendReminders(c *gin.Context) {
	result, err := h.dunningService.SendReminders(c.Request.Context(), h.now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
