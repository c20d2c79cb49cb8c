package billing

import (
	"context"
	"time"

	"github.com/comunidad/backend/internal/domain/billing"
	"github.com/comunidad/backend/internal/domain/notification"
	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository is a mock implementation of billing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByResidentAndPeriod(ctx context.Context, residentID uuid.UUID, period billing.Period) (*billing.Payment, error) {
	args := m.Called(ctx, residentID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByResident(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]billing.Payment, error) {
	args := m.Called(ctx, residentID, filter)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByStatus(ctx context.Context, status billing.PaymentStatus, filter shared.Filter) ([]billing.Payment, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockResidentRepository is a mock implementation of resident.Repository
type MockResidentRepository struct {
	mock.Mock
}

func (m *MockResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*resident.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByCedula(ctx context.Context, cedula string) (*resident.Resident, error) {
	args := m.Called(ctx, cedula)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]resident.Resident, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByPaymentState(ctx context.Context, state resident.PaymentState, filter shared.Filter) ([]resident.Resident, error) {
	args := m.Called(ctx, state, filter)
	return args.Get(0).([]resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindPendingDueBefore(ctx context.Context, cutoff time.Time) ([]resident.Resident, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindPendingDueBetween(ctx context.Context, from, to time.Time) ([]resident.Resident, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) Save(ctx context.Context, r *resident.Resident) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResidentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenRepository is a mock implementation of resident.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*resident.Token, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Token), args.Error(1)
}

func (m *MockTokenRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]resident.Token, error) {
	args := m.Called(ctx, residentID)
	return args.Get(0).([]resident.Token), args.Error(1)
}

func (m *MockTokenRepository) Save(ctx context.Context, t *resident.Token) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTokenRepository) MirrorPaymentStateForResident(ctx context.Context, residentID uuid.UUID, state resident.PaymentState, lastPayment, nextPayment *time.Time) error {
	args := m.Called(ctx, residentID, state, lastPayment, nextPayment)
	return args.Error(0)
}

func (m *MockTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Append(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]notification.Notification, error) {
	args := m.Called(ctx, residentID)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

// MockSender is a mock implementation of notification.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendReminder(ctx context.Context, to notification.Recipient) (string, error) {
	args := m.Called(ctx, to)
	return args.String(0), args.Error(1)
}

func (m *MockSender) SendOverdueNotice(ctx context.Context, to notification.Recipient) (string, error) {
	args := m.Called(ctx, to)
	return args.String(0), args.Error(1)
}
