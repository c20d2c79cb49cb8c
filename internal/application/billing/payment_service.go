package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/comunidad/backend/internal/domain/billing"
	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/comunidad/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService coordinates payment recording and validation and keeps
// resident and token payment state in step with the payment ledger.
type PaymentService struct {
	paymentRepo  billing.PaymentRepository
	residentRepo resident.Repository
	tokenRepo    resident.TokenRepository
	logger       *zap.Logger

	now func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	residentRepo resident.Repository,
	tokenRepo resident.TokenRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		residentRepo: residentRepo,
		tokenRepo:    tokenRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// RecordPayment registers a monthly dues payment for a resident.
// The period defaults to the current month. A second payment for the same
// resident and period is rejected with DUPLICATE_PERIOD. When the paid
// period is the current month or later, the resident moves to paid; tokens
// are left untouched until the payment is validated.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrResidentID, req.ResidentID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	now := s.now()

	period, err := s.resolvePeriod(req.Month, req.Year, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	res, err := s.residentRepo.FindByID(ctx, req.ResidentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if res == nil {
		err := shared.NewDomainError("NOT_FOUND", "Resident not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	existing, err := s.paymentRepo.FindByResidentAndPeriod(ctx, req.ResidentID, period)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check existing payment: %w", err)
	}
	if existing != nil {
		err := shared.NewDomainError("DUPLICATE_PERIOD",
			fmt.Sprintf("A payment for %s already exists for this resident", period))
		telemetry.RecordError(span, err)
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.Amount, valueobject.DefaultCurrency)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	payment, err := billing.NewPayment(req.ResidentID, amount, period, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.Reference != "" {
		payment.WithReference(req.Reference)
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if payment.CoversCurrentOrFutureCycle(now) {
		res.MarkPaid(period, now)
		if err := s.residentRepo.Save(ctx, res); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to update resident: %w", err)
		}
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("resident_id", req.ResidentID.String()),
		zap.String("period", period.String()),
		zap.String("amount", req.Amount.String()),
	)

	return ToPaymentDTO(payment), nil
}

// ValidatePayment confirms a recorded payment. The payment moves to paid
// with the validation time as payment date, and the paid state with its
// dates cascades to the owning resident and every one of their tokens.
func (s *PaymentService) ValidatePayment(ctx context.Context, paymentID uuid.UUID) (*PaymentDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "validate")
	defer span.End()

	telemetry.SetAttribute(span, telemetry.SpanAttrPaymentID, paymentID.String())

	now := s.now()

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if payment == nil {
		err := shared.NewDomainError("NOT_FOUND", "Payment not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := payment.MarkValidated(now); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	res, err := s.residentRepo.FindByID(ctx, payment.ResidentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if res == nil {
		err := shared.NewDomainError("NOT_FOUND", "Resident not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	res.MarkPaid(payment.Period, now)
	if err := s.residentRepo.Save(ctx, res); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to update resident: %w", err)
	}

	if err := s.tokenRepo.MirrorPaymentStateForResident(ctx, res.ID,
		resident.PaymentStatePaid, res.LastPaymentDate, res.NextPaymentDate); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to update tokens: %w", err)
	}

	s.logger.Info("Payment validated",
		zap.String("payment_id", payment.ID.String()),
		zap.String("resident_id", res.ID.String()),
		zap.String("period", payment.Period.String()),
	)

	return ToPaymentDTO(payment), nil
}

// GetPayment returns one payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}
	return ToPaymentDTO(payment), nil
}

// ListPayments returns payments with optional status filtering.
func (s *PaymentService) ListPayments(ctx context.Context, status string, filter shared.Filter) ([]*PaymentDTO, int64, error) {
	var (
		payments []billing.Payment
		err      error
	)

	if status != "" {
		st := billing.PaymentStatus(status)
		if !st.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown payment status")
		}
		payments, err = s.paymentRepo.FindByStatus(ctx, st, filter)
	} else {
		payments, err = s.paymentRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToPaymentDTOs(payments), total, nil
}

// ListResidentPayments returns the payment history of one resident.
func (s *PaymentService) ListResidentPayments(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]*PaymentDTO, error) {
	res, err := s.residentRepo.FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Resident not found")
	}

	payments, err := s.paymentRepo.FindByResident(ctx, residentID, filter)
	if err != nil {
		return nil, err
	}

	return ToPaymentDTOs(payments), nil
}

func (s *PaymentService) resolvePeriod(month, year int, now time.Time) (billing.Period, error) {
	if month == 0 && year == 0 {
		return billing.CurrentPeriod(now), nil
	}
	if month == 0 || year == 0 {
		return billing.Period{}, shared.NewDomainError("INVALID_PERIOD", "Month and year must be provided together")
	}
	return billing.NewPeriod(month, year)
}
