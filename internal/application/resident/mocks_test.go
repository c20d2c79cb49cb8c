package resident

import (
	"context"
	"time"

	domainresident "github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockResidentRepository is a testify mock of the resident repository
type MockResidentRepository struct {
	mock.Mock
}

func (m *MockResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainresident.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainresident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByCedula(ctx context.Context, cedula string) (*domainresident.Resident, error) {
	args := m.Called(ctx, cedula)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainresident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domainresident.Resident, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainresident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByPaymentState(ctx context.Context, state domainresident.PaymentState, filter shared.Filter) ([]domainresident.Resident, error) {
	args := m.Called(ctx, state, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainresident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindPendingDueBefore(ctx context.Context, cutoff time.Time) ([]domainresident.Resident, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainresident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindPendingDueBetween(ctx context.Context, from, to time.Time) ([]domainresident.Resident, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainresident.Resident), args.Error(1)
}

func (m *MockResidentRepository) Save(ctx context.Context, r *domainresident.Resident) error {
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

// MockTokenRepository is a testify mock of the token repository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainresident.Token, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainresident.Token), args.Error(1)
}

func (m *MockTokenRepository) FindByResident(ctx context.Context, residentID uuid.UUID) ([]domainresident.Token, error) {
	args := m.Called(ctx, residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainresident.Token), args.Error(1)
}

func (m *MockTokenRepository) Save(ctx context.Context, t *domainresident.Token) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTokenRepository) MirrorPaymentStateForResident(ctx context.Context, residentID uuid.UUID, state domainresident.PaymentState, lastPayment, nextPayment *time.Time) error {
	args := m.Called(ctx, residentID, state, lastPayment, nextPayment)
	return args.Error(0)
}

func (m *MockTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
