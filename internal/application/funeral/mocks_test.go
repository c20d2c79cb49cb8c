package funeral

import (
	"context"

	domainfuneral "github.com/comunidad/backend/internal/domain/funeral"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockClientRepository is a testify mock of the client repository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainfuneral.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainfuneral.Client), args.Error(1)
}

func (m *MockClientRepository) FindByCedula(ctx context.Context, cedula string) (*domainfuneral.Client, error) {
	args := m.Called(ctx, cedula)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainfuneral.Client), args.Error(1)
}

func (m *MockClientRepository) FindByPlan(ctx context.Context, planID uuid.UUID, filter shared.Filter) ([]domainfuneral.Client, error) {
	args := m.Called(ctx, planID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainfuneral.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domainfuneral.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainfuneral.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, c *domainfuneral.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlanRepository is a testify mock of the plan repository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainfuneral.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainfuneral.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domainfuneral.Plan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainfuneral.Plan), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, p *domainfuneral.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCasketRepository is a testify mock of the casket repository
type MockCasketRepository struct {
	mock.Mock
}

func (m *MockCasketRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainfuneral.Casket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainfuneral.Casket), args.Error(1)
}

func (m *MockCasketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domainfuneral.Casket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainfuneral.Casket), args.Error(1)
}

func (m *MockCasketRepository) Save(ctx context.Context, c *domainfuneral.Casket) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCasketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
