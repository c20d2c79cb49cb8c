package billing

import (
	"context"
	"testing"
	"time"

	"github.com/comunidad/backend/internal/domain/billing"
	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestResident(t *testing.T, now time.Time) *resident.Resident {
	t.Helper()
	res, err := resident.NewResident("Maria", "Perez", "V-12345678", "A-101", "+584141234567", "Calle 1", now)
	require.NoError(t, err)
	return res
}

func newPaymentService(paymentRepo *MockPaymentRepository, residentRepo *MockResidentRepository, tokenRepo *MockTokenRepository, now time.Time) *PaymentService {
	svc := NewPaymentService(paymentRepo, residentRepo, tokenRepo, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestPaymentService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to current period and marks resident paid", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		res := newTestResident(t, now.AddDate(0, -2, 0))
		residentRepo.On("FindByID", mock.Anything, res.ID).Return(res, nil)
		paymentRepo.On("FindByResidentAndPeriod", mock.Anything, res.ID, billing.Period{Month: 3, Year: 2024}).Return(nil, nil)
		paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)
		residentRepo.On("Save", mock.Anything, res).Return(nil)

		dto, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			ResidentID: res.ID,
			Amount:     decimal.NewFromInt(25),
		})

		require.NoError(t, err)
		assert.Equal(t, 3, dto.Month)
		assert.Equal(t, 2024, dto.Year)
		assert.Equal(t, "completed", dto.Status)
		assert.Equal(t, time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC), dto.DueDate)
		require.NotNil(t, dto.PaymentDate)
		assert.Equal(t, now, *dto.PaymentDate)

		// Paying the current cycle moves the resident to paid with the
		// next due date at the end of the following cycle.
		assert.Equal(t, resident.PaymentStatePaid, res.PaymentState)
		require.NotNil(t, res.NextPaymentDate)
		assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), *res.NextPaymentDate)

		// Tokens are only touched on validation.
		tokenRepo.AssertNotCalled(t, "MirrorPaymentStateForResident", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("payment for a past period does not change the resident", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		res := newTestResident(t, now.AddDate(0, -2, 0))
		residentRepo.On("FindByID", mock.Anything, res.ID).Return(res, nil)
		paymentRepo.On("FindByResidentAndPeriod", mock.Anything, res.ID, billing.Period{Month: 1, Year: 2024}).Return(nil, nil)
		paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

		dto, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			ResidentID: res.ID,
			Amount:     decimal.NewFromInt(25),
			Month:      1,
			Year:       2024,
		})

		require.NoError(t, err)
		assert.Equal(t, "completed", dto.Status)
		assert.Equal(t, resident.PaymentStatePending, res.PaymentState)
		residentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate period is rejected without state change", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		res := newTestResident(t, now.AddDate(0, -2, 0))
		period := billing.Period{Month: 3, Year: 2024}
		existing, err := billing.NewPayment(res.ID, valueobject.NewMoneyUSD(decimal.NewFromInt(25)), period, now.AddDate(0, 0, -1))
		require.NoError(t, err)

		residentRepo.On("FindByID", mock.Anything, res.ID).Return(res, nil)
		paymentRepo.On("FindByResidentAndPeriod", mock.Anything, res.ID, period).Return(existing, nil)

		_, err = svc.RecordPayment(ctx, RecordPaymentRequest{
			ResidentID: res.ID,
			Amount:     decimal.NewFromInt(25),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_PERIOD", domainErr.Code)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		residentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		res := newTestResident(t, now)
		residentRepo.On("FindByID", mock.Anything, res.ID).Return(res, nil)
		paymentRepo.On("FindByResidentAndPeriod", mock.Anything, res.ID, mock.Anything).Return(nil, nil)

		_, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			ResidentID: res.ID,
			Amount:     decimal.Zero,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})

	t.Run("unknown resident", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		id := uuid.New()
		residentRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			ResidentID: id,
			Amount:     decimal.NewFromInt(25),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects month without year", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		_, err := svc.RecordPayment(ctx, RecordPaymentRequest{
			ResidentID: uuid.New(),
			Amount:     decimal.NewFromInt(25),
			Month:      3,
		})

		require.Error(t, err)
	})
}

func TestPaymentService_ValidatePayment(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)

	t.Run("cascades paid state to resident and all tokens", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		res := newTestResident(t, now.AddDate(0, -1, 0))
		period := billing.Period{Month: 3, Year: 2024}
		payment, err := billing.NewPayment(res.ID, valueobject.NewMoneyUSD(decimal.NewFromInt(25)), period, now.AddDate(0, 0, -2))
		require.NoError(t, err)

		paymentRepo.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
		paymentRepo.On("Save", mock.Anything, payment).Return(nil)
		residentRepo.On("FindByID", mock.Anything, res.ID).Return(res, nil)
		residentRepo.On("Save", mock.Anything, res).Return(nil)
		tokenRepo.On("MirrorPaymentStateForResident", mock.Anything, res.ID,
			resident.PaymentStatePaid, mock.Anything, mock.Anything).Return(nil)

		dto, err := svc.ValidatePayment(ctx, payment.ID)

		require.NoError(t, err)
		assert.Equal(t, "paid", dto.Status)
		require.NotNil(t, dto.PaymentDate)
		assert.Equal(t, now, *dto.PaymentDate)

		assert.Equal(t, resident.PaymentStatePaid, res.PaymentState)
		require.NotNil(t, res.LastPaymentDate)
		assert.Equal(t, now, *res.LastPaymentDate)
		require.NotNil(t, res.NextPaymentDate)
		assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), *res.NextPaymentDate)

		tokenRepo.AssertExpectations(t)
	})

	t.Run("already validated payment is rejected", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		res := newTestResident(t, now)
		payment, err := billing.NewPayment(res.ID, valueobject.NewMoneyUSD(decimal.NewFromInt(25)), billing.Period{Month: 3, Year: 2024}, now)
		require.NoError(t, err)
		require.NoError(t, payment.MarkValidated(now))

		paymentRepo.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)

		_, err = svc.ValidatePayment(ctx, payment.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		residentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown payment", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		residentRepo := new(MockResidentRepository)
		tokenRepo := new(MockTokenRepository)
		svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

		id := uuid.New()
		paymentRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.ValidatePayment(ctx, id)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestPaymentService_ListPayments(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)

	paymentRepo := new(MockPaymentRepository)
	residentRepo := new(MockResidentRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newPaymentService(paymentRepo, residentRepo, tokenRepo, now)

	t.Run("rejects unknown status", func(t *testing.T) {
		_, _, err := svc.ListPayments(ctx, "bogus", shared.DefaultFilter())
		require.Error(t, err)
	})

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		payment, err := billing.NewPayment(uuid.New(), valueobject.NewMoneyUSD(decimal.NewFromInt(25)), billing.Period{Month: 3, Year: 2024}, now)
		require.NoError(t, err)

		paymentRepo.On("FindByStatus", mock.Anything, billing.PaymentStatusCompleted, filter).Return([]billing.Payment{*payment}, nil)
		paymentRepo.On("Count", mock.Anything, filter).Return(int64(1), nil)

		dtos, total, err := svc.ListPayments(ctx, "completed", filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, dtos, 1)
		assert.Equal(t, "completed", dtos[0].Status)
	})
}
